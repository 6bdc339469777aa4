package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("materials").
		Select("material_id", "title", "category_id").
		Build()

	assert.Equal(t, "SELECT material_id, title, category_id FROM materials", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("materials").Build()

	assert.Equal(t, "SELECT * FROM materials", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("materials").
		Select("material_id", "title").
		Where(Eq("category_id", "cat-1")).
		Where(Eq("status", "APPROVED")).
		Build()

	assert.Equal(t, "SELECT material_id, title FROM materials WHERE category_id = @p0 AND status = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "cat-1",
		"p1": "APPROVED",
	}, stmt.Params)
}

func TestBuilder_WhereNilIsIgnored(t *testing.T) {
	stmt := From("materials").
		Select("material_id").
		Where(nil).
		Build()

	assert.Equal(t, "SELECT material_id FROM materials", stmt.SQL)
}

func TestBuilder_Join(t *testing.T) {
	stmt := From("materials m").
		Select("m.material_id", "c.name").
		Join("categories c", "c.category_id = m.category_id").
		Where(Eq("m.status", "APPROVED")).
		Build()

	assert.Equal(t,
		"SELECT m.material_id, c.name FROM materials m JOIN categories c ON c.category_id = m.category_id WHERE m.status = @p0",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "APPROVED"}, stmt.Params)
}

func TestBuilder_OrderBy(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*Builder) *Builder
		expected string
	}{
		{
			name:     "asc",
			build:    func(b *Builder) *Builder { return b.OrderBy("created_at", Asc) },
			expected: "SELECT material_id FROM materials ORDER BY created_at ASC",
		},
		{
			name:     "desc",
			build:    func(b *Builder) *Builder { return b.OrderBy("created_at", Desc) },
			expected: "SELECT material_id FROM materials ORDER BY created_at DESC",
		},
		{
			name: "with tiebreaker",
			build: func(b *Builder) *Builder {
				return b.OrderBy("view_count", Desc).ThenBy("material_id", Asc)
			},
			expected: "SELECT material_id FROM materials ORDER BY view_count DESC, material_id ASC",
		},
		{
			name: "order by replaces previous order",
			build: func(b *Builder) *Builder {
				return b.OrderBy("view_count", Desc).ThenBy("material_id", Asc).OrderBy("title", Asc)
			},
			expected: "SELECT material_id FROM materials ORDER BY title ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := tt.build(From("materials").Select("material_id")).Build()
			assert.Equal(t, tt.expected, stmt.SQL)
			assert.Empty(t, stmt.Params)
		})
	}
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("materials").
		Select("material_id", "title").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT material_id, title FROM materials LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_ZeroOffsetIsOmitted(t *testing.T) {
	stmt := From("materials").Select("material_id").Limit(12).Offset(0).Build()

	assert.Equal(t, "SELECT material_id FROM materials LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"limit": int64(12)}, stmt.Params)
}

func TestBuilder_CompleteQuery(t *testing.T) {
	stmt := From("materials").
		Select("material_id", "title", "status").
		Where(Eq("status", "APPROVED")).
		Where(AnyOf(ContainsFold("title", "Oak"), ContainsFold("description", "Oak"))).
		Where(Eq("category_id", "cat-1")).
		OrderBy("created_at", Desc).
		ThenBy("material_id", Asc).
		Limit(12).
		Offset(24).
		Build()

	expectedSQL := "SELECT material_id, title, status FROM materials " +
		"WHERE status = @p0 AND (STRPOS(LOWER(title), @p1) > 0 OR STRPOS(LOWER(description), @p2) > 0) AND category_id = @p3 " +
		"ORDER BY created_at DESC, material_id ASC LIMIT @limit OFFSET @offset"
	assert.Equal(t, expectedSQL, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "APPROVED",
		"p1":     "oak",
		"p2":     "oak",
		"p3":     "cat-1",
		"limit":  int64(12),
		"offset": int64(24),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("materials m").
		Select("m.material_id", "m.title").
		Join("users u", "u.user_id = m.owner_id").
		Where(Eq("m.status", "APPROVED")).
		OrderBy("m.created_at", Desc).
		Limit(50).
		Offset(100)

	mainStmt := builder.Build()
	assert.Contains(t, mainStmt.SQL, "LIMIT @limit")
	assert.Contains(t, mainStmt.SQL, "OFFSET @offset")

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM materials m JOIN users u ON u.user_id = m.owner_id WHERE m.status = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "APPROVED"}, countStmt.Params)

	// Original builder is unchanged
	assert.Equal(t, mainStmt.SQL, builder.Build().SQL)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("materials").Select("material_id")

	stmt1 := base.Where(Eq("status", "APPROVED")).Build()
	stmt2 := base.Where(Eq("category_id", "cat-1")).Build()

	assert.Contains(t, stmt1.SQL, "status = @p0")
	assert.NotContains(t, stmt1.SQL, "category_id")

	assert.Contains(t, stmt2.SQL, "category_id = @p0")
	assert.NotContains(t, stmt2.SQL, "status")
}

func TestCondition_Eq(t *testing.T) {
	sql, params := Eq("category_id", "cat-1").SQL(5)

	assert.Equal(t, "category_id = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "cat-1"}, params)
}

func TestCondition_ContainsFoldLowercasesValue(t *testing.T) {
	sql, params := ContainsFold("title", "  Walnut SHELF").SQL(0)

	assert.Equal(t, "STRPOS(LOWER(title), @p0) > 0", sql)
	assert.Equal(t, map[string]interface{}{"p0": "  walnut shelf"}, params)
}

func TestCondition_AnyOf(t *testing.T) {
	sql, params := AnyOf(Eq("a", 1), Eq("b", 2)).SQL(3)

	assert.Equal(t, "(a = @p3 OR b = @p4)", sql)
	assert.Equal(t, map[string]interface{}{"p3": 1, "p4": 2}, params)

	sql, params = AnyOf().SQL(0)
	assert.Equal(t, "FALSE", sql)
	assert.Empty(t, params)
}

func TestCondition_InSelect(t *testing.T) {
	stmt := From("materials m").
		Select("m.material_id").
		Where(Eq("m.status", "APPROVED")).
		Where(InSelect("m.material_id", "favorites", "material_id", Eq("user_id", "u-1"))).
		Build()

	assert.Equal(t,
		"SELECT m.material_id FROM materials m WHERE m.status = @p0 AND m.material_id IN (SELECT material_id FROM favorites WHERE user_id = @p1)",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "APPROVED", "p1": "u-1"}, stmt.Params)
}

func TestCondition_NullChecks(t *testing.T) {
	sql, params := IsNull("reject_reason").SQL(0)
	assert.Equal(t, "reject_reason IS NULL", sql)
	assert.Empty(t, params)

	sql, params = IsNotNull("reject_reason").SQL(0)
	assert.Equal(t, "reject_reason IS NOT NULL", sql)
	assert.Empty(t, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("materials").
		Select("material_id", "title").
		Where(Eq("status", "APPROVED")).
		String()

	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "materials")
}
