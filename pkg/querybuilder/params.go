package querybuilder

import (
	"strings"

	"ucode/ucode_go_report_builder_service/models"
)

// FromParams maps a declarative report query onto the fluent builder. The
// returned builder is ready to Build; configuration problems surface there
// or here, whichever comes first.
func FromParams(params models.ReportQuery, translator *Translator, opts ...Option) (QueryBuilder, error) {
	opts = append([]Option{WithTranslator(translator)}, opts...)
	builder := New(tableRefFromModel(params.Table), opts...)

	clause := SelectClause{}
	if len(params.Columns) > 0 {
		selected, err := NewSelect(params.Columns...)
		if err != nil {
			return QueryBuilder{}, err
		}
		clause = selected
	}

	for _, agg := range params.Aggregations {
		expr, err := WithAggregation(agg.Column, AggregationType(agg.Type), agg.Alias)
		if err != nil {
			return QueryBuilder{}, err
		}
		clause = append(clause, expr)
	}

	groupBy, bucketExpr, err := groupByFromSpec(params.GroupBy)
	if err != nil {
		return QueryBuilder{}, err
	}
	if bucketExpr != nil {
		// the bucket boundary leads the select list so chart consumers get
		// it as the first column
		clause = append(SelectClause{*bucketExpr}, clause...)
	}

	if len(clause) > 0 {
		builder = builder.Select(clause)
	}
	if groupBy != nil {
		builder = builder.GroupBy(groupBy)
	}

	combineWith := CombineOperator(strings.ToUpper(params.CombineWith))
	if len(params.Filters) > 0 {
		builder = builder.WhereFilters(filtersFromModel(params.Filters), combineWith)
	}
	if len(params.Having) > 0 {
		builder = builder.HavingFilters(filtersFromModel(params.Having), combineWith)
	}

	for _, spec := range params.Joins {
		join, err := NewJoin(JoinType(strings.ToUpper(spec.Type)), tableRefFromModel(spec.Table), spec.Condition)
		if err != nil {
			return QueryBuilder{}, err
		}
		builder = builder.Join(join)
	}

	if len(params.OrderBy) > 0 {
		orderings := make([]OrderByExpression, 0, len(params.OrderBy))
		for _, spec := range params.OrderBy {
			ordering, err := orderByFromSpec(spec)
			if err != nil {
				return QueryBuilder{}, err
			}
			orderings = append(orderings, ordering)
		}
		builder = builder.OrderBy(MergeOrderBy(orderings)...)
	}

	if params.Limit > 0 {
		builder = builder.Limit(params.Limit, params.Offset)
	}

	return builder, nil
}

func groupByFromSpec(spec *models.GroupBySpec) (*GroupByClause, *SelectExpression, error) {
	if spec == nil {
		return nil, nil, nil
	}
	if spec.Rollup && spec.Cube {
		return nil, nil, newError(ErrInvalidConfiguration, "ROLLUP and CUBE are mutually exclusive")
	}

	var (
		clause *GroupByClause
		err    error
	)

	switch {
	case spec.Rollup:
		clause, err = GroupByRollup(spec.Columns...)
	case spec.Cube:
		clause, err = GroupByCube(spec.Columns...)
	case len(spec.Columns) > 0:
		clause, err = NewGroupBy(spec.Columns...)
	}
	if err != nil {
		return nil, nil, err
	}

	if spec.TimeBucket == nil {
		return clause, nil, nil
	}

	bucket, err := GroupByTimeBucket(spec.TimeBucket.Column, TimeInterval(spec.TimeBucket.Interval))
	if err != nil {
		return nil, nil, err
	}

	selectExpr, err := SelectTimeBucket(spec.TimeBucket.Column, TimeInterval(spec.TimeBucket.Interval), "")
	if err != nil {
		return nil, nil, err
	}

	merged, err := MergeGroupBy(bucket, clause)
	if err != nil {
		return nil, nil, err
	}

	return merged, &selectExpr, nil
}

func orderByFromSpec(spec models.OrderBySpec) (OrderByExpression, error) {
	direction := Direction(strings.ToUpper(spec.Direction))

	if spec.NullsFirst != nil {
		return OrderByNulls(spec.Expression, direction, *spec.NullsFirst)
	}

	return OrderBy(spec.Expression, direction)
}

func filtersFromModel(filters []models.Filter) []FilterCondition {
	out := make([]FilterCondition, 0, len(filters))
	for _, f := range filters {
		out = append(out, FilterCondition{
			Column:   f.Column,
			Operator: Operator(f.Operator),
			Value:    f.Value,
		})
	}

	return out
}
