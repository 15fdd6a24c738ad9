package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultLoads(t *testing.T) {
	s := Default()
	if len(s.Types) == 0 {
		t.Fatal("embedded schema has no types")
	}

	work, ok := s.Lookup("creativework")
	if !ok {
		t.Fatal("CreativeWork missing")
	}
	if work.Table != "share_creativework" {
		t.Errorf("table = %q", work.Table)
	}
	if work.TypeColumn != "type" {
		t.Errorf("type column = %q", work.TypeColumn)
	}
}

func TestConcrete(t *testing.T) {
	s := Default()
	tests := []struct {
		tag  string
		want string
		ok   bool
	}{
		{"preprint", "CreativeWork", true},
		{"Person", "Agent", true},
		{"creator", "AgentWorkRelation", true},
		{"agentworkrelation", "AgentWorkRelation", true},
		{"workidentifier", "WorkIdentifier", true},
		{"throughtags", "ThroughTags", true},
		{"IsEmployedBy", "AgentRelation", true},
		{"nonesuch", "", false},
	}
	for _, tt := range tests {
		got, ok := s.Concrete(tt.tag)
		if ok != tt.ok {
			t.Errorf("Concrete(%q) ok = %v, want %v", tt.tag, ok, tt.ok)
			continue
		}
		if ok && got.Name != tt.want {
			t.Errorf("Concrete(%q) = %s, want %s", tt.tag, got.Name, tt.want)
		}
	}
}

func TestAllowedSubtypeTags(t *testing.T) {
	s := Default()

	got, ok := s.AllowedSubtypeTags("Contributor")
	if !ok {
		t.Fatal("Contributor should have tags")
	}
	want := []string{
		"share.contributor",
		"share.creator",
		"share.principalinvestigator",
		"share.principalinvestigatorcontact",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Contributor tags mismatch (-want +got):\n%s", diff)
	}

	// A leaf admits only itself.
	got, _ = s.AllowedSubtypeTags("creator")
	if diff := cmp.Diff([]string{"share.creator"}, got); diff != "" {
		t.Errorf("Creator tags mismatch (-want +got):\n%s", diff)
	}

	// The concrete type admits every subtype.
	got, _ = s.AllowedSubtypeTags("AgentWorkRelation")
	if len(got) != 8 {
		t.Errorf("AgentWorkRelation admits %d tags, want 8: %v", len(got), got)
	}

	got, _ = s.AllowedSubtypeTags("Publication")
	if len(got) != 11 || got[0] != "share.publication" {
		t.Errorf("Publication subtree = %v", got)
	}

	if _, ok := s.AllowedSubtypeTags("WorkIdentifier"); ok {
		t.Error("types without a discriminator have no tags")
	}
	if _, ok := s.AllowedSubtypeTags("nonesuch"); ok {
		t.Error("unknown names have no tags")
	}
}

func TestLineage(t *testing.T) {
	s := Default()

	got, ok := s.Lineage("creator")
	if !ok {
		t.Fatal("creator should have a lineage")
	}
	want := []string{"Creator", "Contributor", "AgentWorkRelation"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("creator lineage mismatch (-want +got):\n%s", diff)
	}

	got, _ = s.Lineage("Institution")
	if diff := cmp.Diff([]string{"Institution", "Organization", "Agent"}, got); diff != "" {
		t.Errorf("institution lineage mismatch (-want +got):\n%s", diff)
	}

	// A parentless subtype sits directly under its concrete type.
	got, _ = s.Lineage("person")
	if diff := cmp.Diff([]string{"Person", "Agent"}, got); diff != "" {
		t.Errorf("person lineage mismatch (-want +got):\n%s", diff)
	}

	// Concrete names are their own lineage.
	got, _ = s.Lineage("Tag")
	if diff := cmp.Diff([]string{"Tag"}, got); diff != "" {
		t.Errorf("tag lineage mismatch (-want +got):\n%s", diff)
	}

	if _, ok := s.Lineage("nonesuch"); ok {
		t.Error("unknown names have no lineage")
	}
}

func TestSubtypeTag(t *testing.T) {
	if got := SubtypeTag("Preprint"); got != "share.preprint" {
		t.Errorf("SubtypeTag = %q", got)
	}
}

func TestDefaultsFilled(t *testing.T) {
	s := Default()

	awr, _ := s.Lookup("AgentWorkRelation")
	agent, ok := awr.Relation("agent")
	if !ok || agent.Column != "agent_id" {
		t.Errorf("agent FK column = %q", agent.Column)
	}

	work, _ := s.Lookup("CreativeWork")
	title, ok := work.Attribute("TITLE")
	if !ok || title.Column != "title" {
		t.Errorf("title column = %q (ok=%v)", title.Column, ok)
	}
	if title.Type != String {
		t.Errorf("title type = %q", title.Type)
	}

	order, _ := awr.Attribute("order_cited")
	if order.Type != Integer {
		t.Errorf("order_cited type = %q", order.Type)
	}
}

func TestSchemaIsClosedAndSymmetric(t *testing.T) {
	s := Default()
	for _, typ := range s.Types {
		for _, r := range typ.Relations {
			target, ok := s.Lookup(r.Target)
			if !ok {
				t.Errorf("%s.%s targets unknown type %q", typ.Name, r.Name, r.Target)
				continue
			}
			if r.Kind == ManyToMany {
				if _, ok := s.Lookup(r.Through); !ok {
					t.Errorf("%s.%s through type %q missing", typ.Name, r.Name, r.Through)
				}
				continue
			}
			back, ok := target.Relation(r.Inverse)
			if !ok {
				t.Errorf("%s.%s inverse %q missing on %s", typ.Name, r.Name, r.Inverse, target.Name)
				continue
			}
			if !strings.EqualFold(back.Inverse, r.Name) {
				t.Errorf("%s.%s and %s.%s disagree", typ.Name, r.Name, target.Name, back.Name)
			}
		}
	}
}

func TestParseRejectsBrokenSchemas(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"not yaml",
			`{{{`,
		},
		{
			"missing table",
			`types: [{name: Thing}]`,
		},
		{
			"subtypes without type column",
			`types: [{name: Thing, table: t, subtypes: [{name: Sub}]}]`,
		},
		{
			"unknown relation target",
			`types: [{name: Thing, table: t, relations: [{name: other, kind: many_to_one, target: Missing}]}]`,
		},
		{
			"unknown relation kind",
			`types: [{name: Thing, table: t, relations: [{name: other, kind: sideways, target: Thing}]}]`,
		},
		{
			"bad attribute type",
			`types: [{name: Thing, table: t, attributes: [{name: a, type: blob}]}]`,
		},
		{
			"unknown subtype parent",
			`types: [{name: Thing, table: t, type_column: type, subtypes: [{name: Sub, parent: Missing}]}]`,
		},
		{
			"one-sided inverse",
			`types:
  - name: A
    table: a
    relations: [{name: bs, kind: one_to_many, target: B, inverse: a}]
  - name: B
    table: b`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("Parse should fail")
			}
		})
	}
}
