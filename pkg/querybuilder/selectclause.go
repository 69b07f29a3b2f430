package querybuilder

import (
	"fmt"
	"strings"
)

// NewSelect builds a plain select clause from bare column references.
func NewSelect(columns ...string) (SelectClause, error) {
	clause := make(SelectClause, 0, len(columns))

	for _, column := range columns {
		if column != "*" {
			if err := ValidateColumn(column); err != nil {
				return nil, err
			}
		}

		clause = append(clause, SelectExpression{Expression: column})
	}

	return clause, nil
}

// WithAggregation builds an aggregation select expression. SUM/AVG/MIN/MAX
// over "*" is not valid SQL, so any non-COUNT aggregation of the wildcard
// falls back to COUNT(*). Every aggregate is cast to NUMERIC so drivers can
// not hand string typed results to numeric consumers.
func WithAggregation(column string, aggregation AggregationType, alias string) (SelectExpression, error) {
	aggregation = AggregationType(strings.ToUpper(string(aggregation)))

	switch aggregation {
	case AggCount, AggSum, AggAvg, AggMin, AggMax:
	default:
		return SelectExpression{}, newError(ErrInvalidAggregation, "unknown aggregation type %q", aggregation)
	}

	if column == "*" {
		aggregation = AggCount
	} else if err := ValidateColumn(column); err != nil {
		return SelectExpression{}, err
	}

	if alias == "" {
		alias = defaultAggregationAlias(column, aggregation)
	}
	if !IsValidIdentifier(alias) {
		return SelectExpression{}, newError(ErrInvalidColumn, "invalid aggregation alias %q", alias)
	}

	return SelectExpression{
		Expression: aggregationExpression(column, aggregation),
		Alias:      alias,
		Aggregated: true,
	}, nil
}

func aggregationExpression(column string, aggregation AggregationType) string {
	return fmt.Sprintf("%s(%s)::NUMERIC", aggregation, column)
}

func defaultAggregationAlias(column string, aggregation AggregationType) string {
	name := strings.ToLower(string(aggregation))
	if column == "*" {
		return name + "_all"
	}

	// strip the alias qualifier from "a.amount"
	if idx := strings.LastIndex(column, "."); idx >= 0 {
		column = column[idx+1:]
	}

	return name + "_" + column
}

// SelectTimeBucket adds a DATE_TRUNC bucket expression to the select list,
// so time series widgets can plot against the bucket boundary.
func SelectTimeBucket(column string, interval TimeInterval, alias string) (SelectExpression, error) {
	expression, err := TimeBucketExpression(column, interval)
	if err != nil {
		return SelectExpression{}, err
	}

	if alias == "" {
		alias = "bucket"
	}
	if !IsValidIdentifier(alias) {
		return SelectExpression{}, newError(ErrInvalidColumn, "invalid bucket alias %q", alias)
	}

	return SelectExpression{
		Expression: expression,
		Alias:      alias,
	}, nil
}

func (s SelectClause) render() []string {
	rendered := make([]string, 0, len(s))

	for _, expr := range s {
		if expr.Alias != "" {
			rendered = append(rendered, fmt.Sprintf("%s AS %s", expr.Expression, expr.Alias))
			continue
		}
		rendered = append(rendered, expr.Expression)
	}

	return rendered
}
