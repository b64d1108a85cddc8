package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_AddCondition(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("type", "client")

	assert.Equal(t, "WHERE type = $1", qb.WhereClause())
	assert.Equal(t, []any{"client"}, qb.Args())
	assert.Equal(t, 2, qb.NextArgNum())
}

func TestQueryBuilder_MultipleConditions(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("type", "client")
	qb.AddCondition("status", "published")
	qb.AddCondition("is_private", false)

	assert.Equal(t, "WHERE type = $1 AND status = $2 AND is_private = $3", qb.WhereClause())
	assert.Equal(t, []any{"client", "published", false}, qb.Args())
	assert.Equal(t, 4, qb.NextArgNum())
}

func TestQueryBuilder_AddRaw(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("status", "published")
	qb.AddRaw("(type <> %s OR is_private = %s)", "individual", false)

	assert.Equal(t, "WHERE status = $1 AND (type <> $2 OR is_private = $3)", qb.WhereClause())
	assert.Equal(t, []any{"published", "individual", false}, qb.Args())
}

func TestQueryBuilder_Update(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddAssignment("title", "New")
	qb.AddAssignment("priority", 3)
	qb.AddAssignmentExpr("updated_at", "NOW()")
	qb.AddCondition("id", "abc")

	assert.Equal(t, "SET title = $1, priority = $2, updated_at = NOW()", qb.SetClause())
	assert.Equal(t, "WHERE id = $3", qb.WhereClause())
	assert.Equal(t, []any{"New", 3, "abc"}, qb.Args())
}

func TestQueryBuilder_LimitClause(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected string
		args     int
	}{
		{name: "positive", limit: 2, expected: "LIMIT $1", args: 1},
		{name: "zero means none", limit: 0, expected: "", args: 0},
		{name: "negative means none", limit: -1, expected: "", args: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder()
			assert.Equal(t, tt.expected, qb.LimitClause(tt.limit))
			assert.Len(t, qb.Args(), tt.args)
		})
	}
}

func TestQueryBuilder_Empty(t *testing.T) {
	qb := NewQueryBuilder()

	assert.Equal(t, "", qb.WhereClause())
	assert.Equal(t, "", qb.SetClause())
	assert.Empty(t, qb.Args())
}
