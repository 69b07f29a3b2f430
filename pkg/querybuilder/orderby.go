package querybuilder

import (
	"fmt"
)

// OrderBy builds a plain ordering expression over a validated column.
func OrderBy(column string, direction Direction) (OrderByExpression, error) {
	if err := ValidateColumn(column); err != nil {
		return OrderByExpression{}, err
	}

	return OrderByExpression{
		Expression: column,
		Direction:  normalizeDirection(direction),
	}, nil
}

// OrderByNulls is OrderBy with an explicit NULLS FIRST/LAST placement.
func OrderByNulls(column string, direction Direction, nullsFirst bool) (OrderByExpression, error) {
	expr, err := OrderBy(column, direction)
	if err != nil {
		return OrderByExpression{}, err
	}

	expr.NullsFirst = &nullsFirst

	return expr, nil
}

// OrderByAggregation orders by an aggregation result, using the same
// expression text the select builder emits so Postgres matches them up.
func OrderByAggregation(column string, aggregation AggregationType, direction Direction) (OrderByExpression, error) {
	selectExpr, err := WithAggregation(column, aggregation, "")
	if err != nil {
		return OrderByExpression{}, err
	}

	return OrderByExpression{
		Expression: selectExpr.Expression,
		Direction:  normalizeDirection(direction),
	}, nil
}

// OrderByTimeBucket orders by a DATE_TRUNC bucket boundary.
func OrderByTimeBucket(column string, interval TimeInterval, direction Direction) (OrderByExpression, error) {
	expression, err := TimeBucketExpression(column, interval)
	if err != nil {
		return OrderByExpression{}, err
	}

	return OrderByExpression{
		Expression: expression,
		Direction:  normalizeDirection(direction),
	}, nil
}

// MergeOrderBy concatenates ordering lists, de-duplicating by expression
// text while preserving first-seen order.
func MergeOrderBy(lists ...[]OrderByExpression) []OrderByExpression {
	var merged []OrderByExpression
	seen := make(map[string]bool)

	for _, list := range lists {
		for _, expr := range list {
			if seen[expr.Expression] {
				continue
			}
			seen[expr.Expression] = true
			merged = append(merged, expr)
		}
	}

	return merged
}

func normalizeDirection(direction Direction) Direction {
	if direction == DirectionDesc {
		return DirectionDesc
	}

	return DirectionAsc
}

func (o OrderByExpression) render() string {
	rendered := fmt.Sprintf("%s %s", o.Expression, o.Direction)

	if o.NullsFirst != nil {
		if *o.NullsFirst {
			rendered += " NULLS FIRST"
		} else {
			rendered += " NULLS LAST"
		}
	}

	return rendered
}
