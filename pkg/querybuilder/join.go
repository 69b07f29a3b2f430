package querybuilder

import (
	"fmt"
)

// NewJoin builds a join clause. The condition is a raw SQL boolean
// expression; it is screened against the injection deny-list but not
// re-parsed.
func NewJoin(joinType JoinType, table TableReference, condition string) (JoinClause, error) {
	switch joinType {
	case JoinInner, JoinLeft, JoinRight, JoinFull:
	default:
		return JoinClause{}, newError(ErrInvalidJoin, "unknown join type %q", joinType)
	}

	if err := ValidateTable(table.Table); err != nil {
		return JoinClause{}, err
	}
	if table.Schema != "" {
		if err := ValidateSchema(table.Schema); err != nil {
			return JoinClause{}, err
		}
	}
	if table.Alias != "" && !IsValidIdentifier(table.Alias) {
		return JoinClause{}, newError(ErrInvalidJoin, "invalid join alias %q", table.Alias)
	}

	if err := ValidateJoinCondition(condition); err != nil {
		return JoinClause{}, err
	}

	return JoinClause{
		Type:      joinType,
		Table:     table,
		Condition: condition,
	}, nil
}

// JoinByForeignKey joins the related table on its guid primary key, the
// convention every builder table follows.
func JoinByForeignKey(joinType JoinType, from TableReference, to TableReference, foreignKey string) (JoinClause, error) {
	if err := ValidateColumn(foreignKey); err != nil {
		return JoinClause{}, err
	}

	condition := fmt.Sprintf("%s.guid = %s.%s", referenceName(to), referenceName(from), foreignKey)

	return NewJoin(joinType, to, condition)
}

// ValidateJoinCondition applies the identifier validator's deny-list to a
// raw join condition.
func ValidateJoinCondition(condition string) error {
	if !IsSafeCondition(condition) {
		return newError(ErrSqlInjectionRisk, "join condition %q contains forbidden SQL", condition)
	}

	return nil
}

func referenceName(table TableReference) string {
	if table.Alias != "" {
		return table.Alias
	}

	return table.Table
}
