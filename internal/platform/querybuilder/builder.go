package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the bind placeholder style.
type Dialect int

const (
	// Postgres binds as $1, $2, ...
	Postgres Dialect = iota
	// SQLite binds as ?.
	SQLite
)

func (d Dialect) placeholder(i int) string {
	if d == SQLite {
		return "?"
	}
	return "$" + strconv.Itoa(i)
}

// writer accumulates SQL text and bind arguments.
type writer struct {
	buf     strings.Builder
	args    []any
	dialect Dialect
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.buf.WriteString(w.dialect.placeholder(len(w.args)))
}

// expr writes sql binding one argument per '?'. Extra '?' are kept as is.
func (w *writer) expr(sql string, args []any) {
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(sql[i])
	}
}

// Query is a statement that can be nested in another one.
type Query interface {
	appendTo(w *writer) error
}

func build(q Query, d Dialect) (string, []any, error) {
	w := &writer{dialect: d}
	if err := q.appendTo(w); err != nil {
		return "", nil, err
	}
	return w.buf.String(), w.args, nil
}

type SelectBuilder struct {
	dialect  Dialect
	distinct bool
	columns  []string
	table    string
	from     Query
	alias    string
	where    []Condition
	groupBy  []string
	orderBy  []string
	limit    int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) Dialect(d Dialect) *SelectBuilder {
	b.dialect = d
	return b
}

func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.distinct = true
	return b
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// FromQuery selects from a derived table.
func (b *SelectBuilder) FromQuery(q Query, alias string) *SelectBuilder {
	b.from = q
	b.alias = alias
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	for _, c := range conditions {
		if c != nil {
			b.where = append(b.where, c)
		}
	}
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	return build(b, b.dialect)
}

func (b *SelectBuilder) appendTo(w *writer) error {
	if len(b.columns) == 0 {
		return fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" && b.from == nil {
		return fmt.Errorf("select table is required")
	}

	w.buf.WriteString("SELECT ")
	if b.distinct {
		w.buf.WriteString("DISTINCT ")
	}
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	if b.from != nil {
		w.buf.WriteString("(")
		if err := b.from.appendTo(w); err != nil {
			return err
		}
		w.buf.WriteString(")")
		if b.alias != "" {
			w.buf.WriteString(" AS ")
			w.buf.WriteString(b.alias)
		}
	} else {
		w.buf.WriteString(b.table)
	}

	if err := appendWhereClause(w, b.where); err != nil {
		return err
	}
	appendListClause(w, " GROUP BY ", b.groupBy)
	appendListClause(w, " ORDER BY ", b.orderBy)
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(b.limit))
	}
	return nil
}

// UnionBuilder joins selects with UNION, which also removes duplicate rows.
type UnionBuilder struct {
	dialect Dialect
	parts   []Query
}

func Union(parts ...Query) *UnionBuilder {
	return &UnionBuilder{parts: append([]Query(nil), parts...)}
}

func (b *UnionBuilder) Dialect(d Dialect) *UnionBuilder {
	b.dialect = d
	return b
}

func (b *UnionBuilder) ToSQL() (string, []any, error) {
	return build(b, b.dialect)
}

func (b *UnionBuilder) appendTo(w *writer) error {
	if len(b.parts) == 0 {
		return fmt.Errorf("union parts are required")
	}
	for i, p := range b.parts {
		if i > 0 {
			w.buf.WriteString(" UNION ")
		}
		if err := p.appendTo(w); err != nil {
			return err
		}
	}
	return nil
}

type InsertBuilder struct {
	dialect Dialect
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Dialect(d Dialect) *InsertBuilder {
	b.dialect = d
	return b
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row. Call it once per row for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	return build(b, b.dialect)
}

func (b *InsertBuilder) appendTo(w *writer) error {
	if strings.TrimSpace(b.table) == "" {
		return fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return fmt.Errorf("insert values are required")
	}

	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteString(")")
	}

	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(b.suffix)
	}
	return nil
}

func appendWhereClause(w *writer, conditions []Condition) error {
	if len(conditions) == 0 {
		return nil
	}
	w.buf.WriteString(" WHERE ")
	return joinConditions(w, conditions, " AND ")
}

func joinConditions(w *writer, conditions []Condition, sep string) error {
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(sep)
		}
		if err := c.appendSQL(w); err != nil {
			return err
		}
	}
	return nil
}

func appendListClause(w *writer, keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.buf.WriteString(keyword)
	w.buf.WriteString(strings.Join(parts, ", "))
}
