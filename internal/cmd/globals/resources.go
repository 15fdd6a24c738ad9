package globals

import "github.com/spf13/cobra"

// ResourceFlags holds flags for narrowing result listings.
type ResourceFlags struct {
	Type   string
	Search string
	Limit  int
}

// ParseResources extracts resource flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	typeName := mustGetString(cmd, "type")
	search := mustGetString(cmd, "search")
	limit := mustGetInt(cmd, "limit")

	return &ResourceFlags{
		Type:   typeName,
		Search: search,
		Limit:  limit,
	}
}

// AddResourceFlags adds result-narrowing flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "",
		"Filter by concrete type or subtype")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term to filter results")

	return flags
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
