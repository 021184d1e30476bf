package querybuilder

// Condition is one predicate of a WHERE clause.
type Condition interface {
	appendSQL(w *writer) error
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) appendSQL(w *writer) error {
	w.buf.WriteString(c.column)
	w.buf.WriteString(c.op)
	w.bind(c.value)
	return nil
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: " = ", value: value}
}

func Gt(column string, value any) Condition {
	return compareCondition{column: column, op: " > ", value: value}
}

func Lt(column string, value any) Condition {
	return compareCondition{column: column, op: " < ", value: value}
}

// Match is the SQLite full text search operator.
func Match(column string, value any) Condition {
	return compareCondition{column: column, op: " MATCH ", value: value}
}

type inCondition struct {
	column string
	values []any
}

// In renders "column IN (...)". An empty list matches nothing.
func In[T any](column string, values []T) Condition {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return inCondition{column: column, values: out}
}

func (c inCondition) appendSQL(w *writer) error {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return nil
	}

	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
	return nil
}

type inQueryCondition struct {
	column string
	query  Query
}

// InQuery renders "column IN (subquery)".
func InQuery(column string, q Query) Condition {
	return inQueryCondition{column: column, query: q}
}

func (c inQueryCondition) appendSQL(w *writer) error {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	if err := c.query.appendTo(w); err != nil {
		return err
	}
	w.buf.WriteString(")")
	return nil
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) appendSQL(w *writer) error {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IS NULL")
	return nil
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is raw SQL with '?' marking each bound argument.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(w *writer) error {
	w.expr(c.expr, c.args)
	return nil
}

type orCondition struct {
	conditions []Condition
}

// Or groups conditions in parentheses joined by OR.
func Or(conditions ...Condition) Condition {
	return orCondition{conditions: conditions}
}

func (c orCondition) appendSQL(w *writer) error {
	if len(c.conditions) == 0 {
		w.buf.WriteString("1=0")
		return nil
	}
	w.buf.WriteString("(")
	if err := joinConditions(w, c.conditions, " OR "); err != nil {
		return err
	}
	w.buf.WriteString(")")
	return nil
}
