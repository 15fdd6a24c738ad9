package config

import (
	"os"
	"testing"

	"github.com/mattclark/SHARE/pkg/constants"
)

// TestLoad verifies basic config loading.
func TestLoad(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config == nil {
		t.Fatal("Load() returned nil config")
	}

	// Verify defaults are set
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.MaxNameLength != constants.MaxNameLength {
		t.Errorf("MaxNameLength = %d, want %d", config.MaxNameLength, constants.MaxNameLength)
	}
	if config.MaxAgentRelations != constants.MaxAgentRelations {
		t.Errorf("MaxAgentRelations = %d, want %d", config.MaxAgentRelations, constants.MaxAgentRelations)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	// Save original env
	oldVerbose := os.Getenv("SHARE_VERBOSE")
	oldOutput := os.Getenv("SHARE_OUTPUT")
	oldSource := os.Getenv("SHARE_SOURCE")
	defer func() {
		os.Setenv("SHARE_VERBOSE", oldVerbose)
		os.Setenv("SHARE_OUTPUT", oldOutput)
		os.Setenv("SHARE_SOURCE", oldSource)
	}()

	// Set test environment variables
	os.Setenv("SHARE_VERBOSE", "true")
	os.Setenv("SHARE_OUTPUT", "json")
	os.Setenv("SHARE_SOURCE", "org.osf")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("SHARE_VERBOSE environment variable not loaded")
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
	if config.Source != "org.osf" {
		t.Errorf("Source = %s, want org.osf", config.Source)
	}
}

// TestConfig_DatabaseURL verifies both database variable spellings.
func TestConfig_DatabaseURL(t *testing.T) {
	tests := []struct {
		name       string
		prefixed   string
		unprefixed string
		want       string
	}{
		{
			name:     "prefixed only",
			prefixed: "postgres://share@localhost/share",
			want:     "postgres://share@localhost/share",
		},
		{
			name:       "unprefixed only",
			unprefixed: "postgres://plain@localhost/share",
			want:       "postgres://plain@localhost/share",
		},
		{
			name:       "prefixed wins",
			prefixed:   "postgres://share@localhost/share",
			unprefixed: "postgres://plain@localhost/share",
			want:       "postgres://share@localhost/share",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore env
			oldPrefixed := os.Getenv("SHARE_DATABASE_URL")
			oldPlain := os.Getenv("DATABASE_URL")
			defer func() {
				os.Setenv("SHARE_DATABASE_URL", oldPrefixed)
				os.Setenv("DATABASE_URL", oldPlain)
			}()

			os.Unsetenv("SHARE_DATABASE_URL")
			os.Unsetenv("DATABASE_URL")
			if tt.prefixed != "" {
				os.Setenv("SHARE_DATABASE_URL", tt.prefixed)
			}
			if tt.unprefixed != "" {
				os.Setenv("DATABASE_URL", tt.unprefixed)
			}

			config, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			if config.DatabaseURL != tt.want {
				t.Errorf("DatabaseURL = %s, want %s", config.DatabaseURL, tt.want)
			}
		})
	}
}

// TestConfig_MatchingLimits verifies integer limit parsing.
func TestConfig_MatchingLimits(t *testing.T) {
	// Save original env
	oldName := os.Getenv("SHARE_MAX_NAME_LENGTH")
	oldRelations := os.Getenv("SHARE_MAX_AGENT_RELATIONS")
	defer func() {
		os.Setenv("SHARE_MAX_NAME_LENGTH", oldName)
		os.Setenv("SHARE_MAX_AGENT_RELATIONS", oldRelations)
	}()

	os.Setenv("SHARE_MAX_NAME_LENGTH", "120")
	os.Setenv("SHARE_MAX_AGENT_RELATIONS", "450")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config.MaxNameLength != 120 {
		t.Errorf("MaxNameLength = %d, want 120", config.MaxNameLength)
	}
	if config.MaxAgentRelations != 450 {
		t.Errorf("MaxAgentRelations = %d, want 450", config.MaxAgentRelations)
	}
}

// TestConfig_BooleanFlags verifies boolean flag parsing.
func TestConfig_BooleanFlags(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		check    func(*Config) bool
		want     bool
	}{
		{
			name:     "Quiet",
			envVar:   "SHARE_QUIET",
			envValue: "true",
			check:    func(c *Config) bool { return c.Quiet },
			want:     true,
		},
		{
			name:     "NoColor",
			envVar:   "SHARE_NO_COLOR",
			envValue: "1",
			check:    func(c *Config) bool { return c.NoColor },
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore env
			old := os.Getenv(tt.envVar)
			defer os.Setenv(tt.envVar, old)

			os.Setenv(tt.envVar, tt.envValue)

			config, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			got := tt.check(config)
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// TestConfig_LoggingOptions verifies logging configuration.
func TestConfig_LoggingOptions(t *testing.T) {
	// Save original env
	oldLevel := os.Getenv("LOG_LEVEL")
	oldFormat := os.Getenv("LOG_FORMAT")
	oldOutput := os.Getenv("LOG_OUTPUT")
	defer func() {
		os.Setenv("LOG_LEVEL", oldLevel)
		os.Setenv("LOG_FORMAT", oldFormat)
		os.Setenv("LOG_OUTPUT", oldOutput)
	}()

	// Set test values
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("LOG_OUTPUT", "stdout")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
	if config.LogOutput != "stdout" {
		t.Errorf("LogOutput = %s, want stdout", config.LogOutput)
	}
}

// TestUpdateFromFlags verifies flag values take precedence.
func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Output: "table", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "json", "debug")
	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}

	// Empty strings keep the previous values
	config.UpdateFromFlags(false, true, false, "", "")
	if config.Output != "json" {
		t.Errorf("Output = %s, want json after empty flag", config.Output)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug after empty flag", config.LogLevel)
	}
}
