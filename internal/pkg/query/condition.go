package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// compareCondition implements a binary comparison (field <op> value).
type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "APPROVED") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// containsFoldCondition implements a case-insensitive substring match.
type containsFoldCondition struct {
	field string
	value string
}

// ContainsFold creates a case-insensitive substring condition.
// Example: ContainsFold("title", "Oak") generates "STRPOS(LOWER(title), @p0) > 0"
// with @p0 bound to "oak".
func ContainsFold(field, value string) Condition {
	return &containsFoldCondition{field: field, value: strings.ToLower(value)}
}

// SQL generates the SQL fragment for the substring match.
func (c *containsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("STRPOS(LOWER(%s), @%s) > 0", c.field, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// anyOfCondition groups conditions with OR.
type anyOfCondition struct {
	conditions []Condition
}

// AnyOf combines conditions with OR logic inside parentheses.
// Example: AnyOf(Eq("a", 1), Eq("b", 2)) generates "(a = @p0 OR b = @p1)"
func AnyOf(conditions ...Condition) Condition {
	return &anyOfCondition{conditions: conditions}
}

// SQL generates the SQL fragment for the OR group.
func (c *anyOfCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	if len(c.conditions) == 0 {
		return "FALSE", map[string]interface{}{}
	}
	fragment, params := conjunction(c.conditions, " OR ", paramIndex)
	return "(" + fragment + ")", params
}

// inSelectCondition implements "field IN (SELECT column FROM table WHERE ...)".
type inSelectCondition struct {
	field  string
	table  string
	column string
	where  Condition
}

// InSelect creates a semi-join condition against another table.
// Example: InSelect("m.material_id", "favorites", "material_id", Eq("user_id", "u1"))
// generates "m.material_id IN (SELECT material_id FROM favorites WHERE user_id = @p0)"
func InSelect(field, table, column string, where Condition) Condition {
	return &inSelectCondition{field: field, table: table, column: column, where: where}
}

// SQL generates the SQL fragment for the semi-join.
func (c *inSelectCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sub := fmt.Sprintf("SELECT %s FROM %s", c.column, c.table)
	params := map[string]interface{}{}
	if c.where != nil {
		fragment, whereParams := c.where.SQL(paramIndex)
		sub += " WHERE " + fragment
		params = whereParams
	}
	return fmt.Sprintf("%s IN (%s)", c.field, sub), params
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("reject_reason") generates "reject_reason IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
