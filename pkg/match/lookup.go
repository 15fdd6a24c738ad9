package match

import (
	"fmt"
	"strings"

	"github.com/mattclark/SHARE/pkg/errors"
)

// Column names one joined column of a lookup and the Postgres type its
// bound values carry. The cast appears on the first VALUES row only; the
// planner infers the rest.
type Column struct {
	Name string
	Cast string // defaults to text
}

// Row is one node's contribution to a batched lookup: its id plus one value
// per column.
type Row struct {
	NodeID string
	Values []any
}

// LookupQuery is a built, fully-parameterized lookup ready for execution.
// The result set carries the originating node id as its first column,
// followed by the full target row.
type LookupQuery struct {
	TypeName string
	SQL      string
	Args     []any
}

// Lookup builds one batched query matching many nodes against a target
// table in a single round trip: the nodes' values form a VALUES row set
// inner-joined against the table on every column. The constrained variant
// adds a subtype-discriminator predicate; everything is bound, nothing is
// spliced.
type Lookup struct {
	typeName   string
	table      string
	columns    []Column
	typeColumn string
	tags       []string
}

// NewLookup starts a lookup against one target type's table.
func NewLookup(typeName, table string, columns ...Column) *Lookup {
	return &Lookup{typeName: typeName, table: table, columns: columns}
}

// Constrained restricts matched rows to the given subtype tags. With no
// tags it is a no-op.
func (l *Lookup) Constrained(typeColumn string, tags []string) *Lookup {
	l.typeColumn = typeColumn
	l.tags = tags
	return l
}

const lookupTemplate = `WITH nodes(node_id, %s) AS (
    VALUES %s
)
SELECT nodes.node_id, %s.*
FROM nodes
INNER JOIN %s ON (%s)`

// Build renders the query for the given rows. Every row must carry one
// value per column.
func (l *Lookup) Build(rows []Row) (LookupQuery, error) {
	if len(rows) == 0 {
		return LookupQuery{}, &errors.ValidationError{Field: "rows", Message: "lookup needs at least one row"}
	}

	args := make([]any, 0, len(rows)*(len(l.columns)+1)+1)
	values := make([]string, 0, len(rows))
	n := 1

	for i, row := range rows {
		if len(row.Values) != len(l.columns) {
			return LookupQuery{}, &errors.ValidationError{
				Field:   "rows",
				Message: fmt.Sprintf("row for node %s has %d values, want %d", row.NodeID, len(row.Values), len(l.columns)),
			}
		}
		placeholders := make([]string, 0, len(l.columns)+1)
		placeholders = append(placeholders, l.placeholder(&n, i, "text"))
		args = append(args, row.NodeID)
		for c, v := range row.Values {
			placeholders = append(placeholders, l.placeholder(&n, i, cast(l.columns[c])))
			args = append(args, v)
		}
		values = append(values, "("+strings.Join(placeholders, ", ")+")")
	}

	conditions := make([]string, 0, len(l.columns)+1)
	names := make([]string, 0, len(l.columns))
	for _, col := range l.columns {
		names = append(names, col.Name)
		conditions = append(conditions, fmt.Sprintf("nodes.%s = %s.%s", col.Name, l.table, col.Name))
	}
	if l.typeColumn != "" && len(l.tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("%s.%s = ANY($%d::text[])", l.table, l.typeColumn, n))
		args = append(args, l.tags)
	}

	sql := fmt.Sprintf(lookupTemplate,
		strings.Join(names, ", "),
		strings.Join(values, ", "),
		l.table,
		l.table,
		strings.Join(conditions, " AND "),
	)
	return LookupQuery{TypeName: l.typeName, SQL: sql, Args: args}, nil
}

// placeholder emits $n, advancing the counter, with a cast on the first row.
func (l *Lookup) placeholder(n *int, rowIndex int, castType string) string {
	p := fmt.Sprintf("$%d", *n)
	*n++
	if rowIndex == 0 {
		p += "::" + castType
	}
	return p
}

func cast(c Column) string {
	if c.Cast == "" {
		return "text"
	}
	return c.Cast
}
