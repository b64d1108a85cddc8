package database

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles WHERE and SET clauses with numbered placeholders.
// Assignments and conditions share one argument sequence, so add
// assignments before conditions when building an UPDATE.
type QueryBuilder struct {
	assignments []string
	conditions  []string
	args        []any
	argCount    int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		assignments: []string{},
		conditions:  []string{},
		args:        []any{},
		argCount:    1,
	}
}

func (qb *QueryBuilder) placeholder(value any) string {
	p := fmt.Sprintf("$%d", qb.argCount)
	qb.args = append(qb.args, value)
	qb.argCount++
	return p
}

func (qb *QueryBuilder) AddCondition(column string, value any) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = %s", column, qb.placeholder(value)))
}

// AddRaw adds a condition whose %s verbs are replaced, in order, by
// placeholders bound to values.
func (qb *QueryBuilder) AddRaw(format string, values ...any) {
	placeholders := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = qb.placeholder(v)
	}
	qb.conditions = append(qb.conditions, fmt.Sprintf(format, placeholders...))
}

func (qb *QueryBuilder) AddAssignment(column string, value any) {
	qb.assignments = append(qb.assignments, fmt.Sprintf("%s = %s", column, qb.placeholder(value)))
}

// AddAssignmentExpr sets column to a literal SQL expression such as NOW().
func (qb *QueryBuilder) AddAssignmentExpr(column, expr string) {
	qb.assignments = append(qb.assignments, fmt.Sprintf("%s = %s", column, expr))
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) SetClause() string {
	if len(qb.assignments) == 0 {
		return ""
	}
	return "SET " + strings.Join(qb.assignments, ", ")
}

// LimitClause returns "LIMIT $n" bound to limit, or "" when limit <= 0.
func (qb *QueryBuilder) LimitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return "LIMIT " + qb.placeholder(limit)
}

func (qb *QueryBuilder) Args() []any {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}
