package querybuilder

import (
	"github.com/Masterminds/squirrel"
)

// Operator tags accepted from filter widgets. The set is closed; anything
// else falls back to equality (see Translator.buildCondition).
type Operator string

const (
	OpEq    Operator = "eq"
	OpNotEq Operator = "notEq"
	OpGt    Operator = "gt"
	OpGte   Operator = "gte"
	OpLt    Operator = "lt"
	OpLte   Operator = "lte"

	OpContains     Operator = "contains"
	OpContainsText Operator = "containsText"
	OpStartsWith   Operator = "startsWith"
	OpEndsWith     Operator = "endsWith"

	OpIn    Operator = "in"
	OpNotIn Operator = "notIn"

	OpIsNull  Operator = "isNull"
	OpNotNull Operator = "notNull"

	OpBetween    Operator = "between"
	OpNotBetween Operator = "notBetween"

	OpBefore     Operator = "before"
	OpAfter      Operator = "after"
	OpBeforeOrOn Operator = "beforeOrOn"
	OpAfterOrOn  Operator = "afterOrOn"
	OpDuring     Operator = "during"

	OpHasKey     Operator = "hasKey"
	OpKeyEquals  Operator = "keyEquals"
	OpPathExists Operator = "pathExists"
)

type AggregationType string

const (
	AggCount AggregationType = "COUNT"
	AggSum   AggregationType = "SUM"
	AggAvg   AggregationType = "AVG"
	AggMin   AggregationType = "MIN"
	AggMax   AggregationType = "MAX"
)

type TimeInterval string

const (
	IntervalMinute  TimeInterval = "minute"
	IntervalHour    TimeInterval = "hour"
	IntervalDay     TimeInterval = "day"
	IntervalWeek    TimeInterval = "week"
	IntervalMonth   TimeInterval = "month"
	IntervalQuarter TimeInterval = "quarter"
	IntervalYear    TimeInterval = "year"
)

type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
)

type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

type CombineOperator string

const (
	CombineAnd CombineOperator = "AND"
	CombineOr  CombineOperator = "OR"
)

type QueryType string

const (
	QueryTypeSelect     QueryType = "SELECT"
	QueryTypeAggregate  QueryType = "AGGREGATE"
	QueryTypeTimeSeries QueryType = "TIME_SERIES"
)

// TableReference identifies one relation. Schema falls back to the
// builder's default schema when empty.
type TableReference struct {
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Alias  string `json:"alias,omitempty"`
}

// FilterCondition is one (column, operator, value) tuple as produced by a
// filter widget. Value may be a scalar, a slice or nil depending on the
// operator.
type FilterCondition struct {
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// SelectExpression is either a bare column reference or a fully formed
// aggregation expression. Expression text is never raw user input.
type SelectExpression struct {
	Expression string `json:"expression"`
	Alias      string `json:"alias,omitempty"`
	Aggregated bool   `json:"aggregated,omitempty"`
}

type SelectClause []SelectExpression

// WhereClause is a flat list of already built boolean expressions joined by
// a single combinator. Nested boolean trees are not supported.
type WhereClause struct {
	Conditions  []squirrel.Sqlizer
	CombineWith CombineOperator
}

func (w *WhereClause) sqlizer() squirrel.Sqlizer {
	if w.CombineWith == CombineOr {
		return squirrel.Or(w.Conditions)
	}

	return squirrel.And(w.Conditions)
}

type GroupByClause struct {
	Expressions []string `json:"expressions"`
	Rollup      bool     `json:"rollup,omitempty"`
	Cube        bool     `json:"cube,omitempty"`
}

type JoinClause struct {
	Type      JoinType       `json:"type"`
	Table     TableReference `json:"table"`
	Condition string         `json:"condition"`
}

type OrderByExpression struct {
	Expression string    `json:"expression"`
	Direction  Direction `json:"direction"`
	NullsFirst *bool     `json:"nulls_first,omitempty"`
}

type LimitClause struct {
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset,omitempty"`
}

// ParameterizedStatement is a SQL template with positional placeholders and
// the ordered values bound to them. Literal values never appear in SQL.
type ParameterizedStatement struct {
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
}

// QueryMetadata is the derived classification of an assembled query; it is
// computed at Build time, never caller supplied.
type QueryMetadata struct {
	QueryType      QueryType `json:"query_type"`
	HasAggregation bool      `json:"has_aggregation"`
	IsTimeSeries   bool      `json:"is_time_series"`
}

type QueryResult struct {
	Statement ParameterizedStatement `json:"statement"`
	Metadata  QueryMetadata          `json:"metadata"`
}
