package querybuilder

import (
	"fmt"
	"strings"
)

// IsValidInterval reports whether the interval is one of the supported
// DATE_TRUNC bucket sizes.
func IsValidInterval(interval TimeInterval) bool {
	switch interval {
	case IntervalMinute, IntervalHour, IntervalDay, IntervalWeek,
		IntervalMonth, IntervalQuarter, IntervalYear:
		return true
	default:
		return false
	}
}

// TimeBucketExpression renders a DATE_TRUNC call rounding the column down to
// the interval boundary.
func TimeBucketExpression(column string, interval TimeInterval) (string, error) {
	if !IsValidInterval(interval) {
		return "", newError(ErrInvalidTimeInterval, "unknown time bucket interval %q", interval)
	}

	if err := ValidateColumn(column); err != nil {
		return "", err
	}

	return fmt.Sprintf("DATE_TRUNC('%s', %s)", interval, column), nil
}

// NewGroupBy builds a plain GROUP BY clause over the given columns.
func NewGroupBy(columns ...string) (*GroupByClause, error) {
	expressions := make([]string, 0, len(columns))

	for _, column := range columns {
		if err := ValidateColumn(column); err != nil {
			return nil, err
		}
		expressions = append(expressions, column)
	}

	return &GroupByClause{Expressions: expressions}, nil
}

// GroupByTimeBucket groups rows by a DATE_TRUNC bucket over the column.
func GroupByTimeBucket(column string, interval TimeInterval) (*GroupByClause, error) {
	expression, err := TimeBucketExpression(column, interval)
	if err != nil {
		return nil, err
	}

	return &GroupByClause{Expressions: []string{expression}}, nil
}

// GroupByRollup ...
func GroupByRollup(columns ...string) (*GroupByClause, error) {
	clause, err := NewGroupBy(columns...)
	if err != nil {
		return nil, err
	}

	clause.Rollup = true

	return clause, nil
}

// GroupByCube ...
func GroupByCube(columns ...string) (*GroupByClause, error) {
	clause, err := NewGroupBy(columns...)
	if err != nil {
		return nil, err
	}

	clause.Cube = true

	return clause, nil
}

// MergeGroupBy combines two clauses, de-duplicating expressions while
// preserving first-seen order. Merging a ROLLUP clause with a CUBE clause is
// a configuration error.
func MergeGroupBy(left, right *GroupByClause) (*GroupByClause, error) {
	if left == nil {
		return right, nil
	}
	if right == nil {
		return left, nil
	}

	rollup := left.Rollup || right.Rollup
	cube := left.Cube || right.Cube
	if rollup && cube {
		return nil, newError(ErrInvalidConfiguration, "ROLLUP and CUBE are mutually exclusive")
	}

	seen := make(map[string]bool, len(left.Expressions)+len(right.Expressions))
	expressions := make([]string, 0, len(left.Expressions)+len(right.Expressions))
	for _, expr := range append(append([]string{}, left.Expressions...), right.Expressions...) {
		if seen[expr] {
			continue
		}
		seen[expr] = true
		expressions = append(expressions, expr)
	}

	return &GroupByClause{
		Expressions: expressions,
		Rollup:      rollup,
		Cube:        cube,
	}, nil
}

func (g *GroupByClause) render() []string {
	if len(g.Expressions) == 0 {
		return nil
	}

	if g.Rollup {
		return []string{fmt.Sprintf("ROLLUP(%s)", strings.Join(g.Expressions, ", "))}
	}
	if g.Cube {
		return []string{fmt.Sprintf("CUBE(%s)", strings.Join(g.Expressions, ", "))}
	}

	return g.Expressions
}
