package table

import (
	"strconv"

	"github.com/mattclark/SHARE/pkg/schema"
)

// SchemaTypesToTableData converts the concrete type listing to table format.
func SchemaTypesToTableData(types []*schema.Type) Data {
	headers := []string{"Type", "Table", "Subtypes", "Attributes", "Relations"}

	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{
			t.Name,
			t.Table,
			strconv.Itoa(len(t.Subtypes)),
			strconv.Itoa(len(t.Attributes)),
			strconv.Itoa(len(t.Relations)),
		})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight,
		},
	}
}

// TypeAttributesToTableData converts one type's declared attributes to table
// format.
func TypeAttributesToTableData(t *schema.Type) Data {
	headers := []string{"Attribute", "Column", "Type", "Format"}

	rows := make([][]string, 0, len(t.Attributes))
	for _, a := range t.Attributes {
		format := a.Format
		if format == "" {
			format = "-"
		}
		rows = append(rows, []string{a.Name, a.Column, string(a.Type), format})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// TypeRelationsToTableData converts one type's declared relations to table
// format. Column is only set for many-to-one, Through only for many-to-many.
func TypeRelationsToTableData(t *schema.Type) Data {
	headers := []string{"Relation", "Kind", "Target", "Column", "Inverse", "Through"}

	rows := make([][]string, 0, len(t.Relations))
	for _, r := range t.Relations {
		rows = append(rows, []string{
			r.Name,
			string(r.Kind),
			r.Target,
			orDash(r.Column),
			orDash(r.Inverse),
			orDash(r.Through),
		})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// TypeSubtypesToTableData converts one type's subtype lineage to table
// format.
func TypeSubtypesToTableData(t *schema.Type) Data {
	headers := []string{"Subtype", "Parent", "Tag"}

	rows := make([][]string, 0, len(t.Subtypes))
	for _, s := range t.Subtypes {
		rows = append(rows, []string{
			s.Name,
			orDash(s.Parent),
			schema.SubtypeTag(s.Name),
		})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
