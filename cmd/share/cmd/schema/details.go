package schema

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattclark/SHARE/internal/cmd/output"
	"github.com/mattclark/SHARE/internal/cmd/table"
	pkgschema "github.com/mattclark/SHARE/pkg/schema"
)

// printTypeDetails prints one type's full definition using table format.
func printTypeDetails(typ *pkgschema.Type) {
	formatter := output.NewFormatter(output.FormatTable)

	fmt.Printf("Type: %s\n\n", typ.Name)

	printOverview(typ, formatter)
	printAttributes(typ, formatter)
	printRelations(typ, formatter)
	printSubtypes(typ, formatter)
}

func printOverview(typ *pkgschema.Type, formatter output.Formatter) {
	rows := [][]string{
		{"Name", typ.Name},
		{"Table", typ.Table},
	}
	if typ.TypeColumn != "" {
		rows = append(rows, []string{"Type Column", typ.TypeColumn})
	}
	rows = append(rows,
		[]string{"Attributes", strconv.Itoa(len(typ.Attributes))},
		[]string{"Relations", strconv.Itoa(len(typ.Relations))},
		[]string{"Subtypes", strconv.Itoa(len(typ.Subtypes))},
	)

	overview := table.Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}

	fmt.Println("Overview:")
	_ = formatter.Format(os.Stdout, overview)
	fmt.Println()
}

func printAttributes(typ *pkgschema.Type, formatter output.Formatter) {
	if len(typ.Attributes) == 0 {
		return
	}

	fmt.Println("Attributes:")
	_ = formatter.Format(os.Stdout, table.TypeAttributesToTableData(typ))
	fmt.Println()
}

func printRelations(typ *pkgschema.Type, formatter output.Formatter) {
	if len(typ.Relations) == 0 {
		return
	}

	fmt.Println("Relations:")
	_ = formatter.Format(os.Stdout, table.TypeRelationsToTableData(typ))
	fmt.Println()
}

func printSubtypes(typ *pkgschema.Type, formatter output.Formatter) {
	if len(typ.Subtypes) == 0 {
		return
	}

	fmt.Println("Subtypes:")
	_ = formatter.Format(os.Stdout, table.TypeSubtypesToTableData(typ))
	fmt.Println()
}
