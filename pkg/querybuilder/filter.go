package querybuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/spf13/cast"

	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/pkg/daterange"
	"ucode/ucode_go_report_builder_service/pkg/logger"
)

var dateLayouts = []string{
	config.DatabaseTimeLayout,
	config.TimestampLayout,
	config.DateOnlyLayout,
}

var dateOperators = map[Operator]bool{
	OpBefore:     true,
	OpAfter:      true,
	OpBeforeOrOn: true,
	OpAfterOrOn:  true,
	OpDuring:     true,
}

// Translator converts flat (column, operator, value) filter tuples into
// parameterized boolean expressions.
type Translator struct {
	resolver daterange.Resolver
	log      logger.LoggerI
}

func NewTranslator(resolver daterange.Resolver, log logger.LoggerI) *Translator {
	return &Translator{
		resolver: resolver,
		log:      log,
	}
}

// FromFilters builds a WhereClause from the given filters. A nil clause with
// a nil error means "no WHERE clause"; callers must treat that as a valid
// outcome.
func (t *Translator) FromFilters(filters []FilterCondition, combineWith CombineOperator) (*WhereClause, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	if combineWith != CombineOr {
		combineWith = CombineAnd
	}

	conditions := make([]squirrel.Sqlizer, 0, len(filters))
	for _, filter := range filters {
		cond, err := t.buildCondition(filter)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}

	return &WhereClause{
		Conditions:  conditions,
		CombineWith: combineWith,
	}, nil
}

func (t *Translator) buildCondition(filter FilterCondition) (squirrel.Sqlizer, error) {
	if err := ValidateColumn(filter.Column); err != nil {
		return nil, err
	}

	if token, ok := filter.Value.(string); ok && daterange.IsRelativeToken(token) {
		return t.relativeDateCondition(filter.Column, filter.Operator, token)
	}

	if dateOperators[filter.Operator] {
		if value, ok := asDateValue(filter.Value); ok {
			return t.dateCondition(filter.Column, filter.Operator, value)
		}
	}

	return t.scalarCondition(filter)
}

// relativeDateCondition resolves the token to a concrete window. Directional
// operators pick exactly one boundary: gt compares against the window end,
// gte against the start, lt against the start, lte against the end. This
// gives "at least X days have fully elapsed" semantics; do not invert it.
func (t *Translator) relativeDateCondition(column string, op Operator, token string) (squirrel.Sqlizer, error) {
	rng, err := t.resolver.Resolve(token)
	if err != nil {
		return nil, wrapError(ErrInvalidWhere, err, "resolve relative date token")
	}

	switch op {
	case OpEq, OpDuring, OpBetween:
		return squirrel.Expr(column+" BETWEEN ? AND ?", rng.Start, rng.End), nil
	case OpNotEq, OpNotBetween:
		return squirrel.Expr(column+" NOT BETWEEN ? AND ?", rng.Start, rng.End), nil
	case OpGt, OpAfter:
		return squirrel.Expr(column+" > ?", rng.End), nil
	case OpGte, OpAfterOrOn:
		return squirrel.Expr(column+" >= ?", rng.Start), nil
	case OpLt, OpBefore:
		return squirrel.Expr(column+" < ?", rng.Start), nil
	case OpLte, OpBeforeOrOn:
		return squirrel.Expr(column+" <= ?", rng.End), nil
	default:
		t.log.Warn("unsupported operator for relative date token, using BETWEEN",
			logger.String("column", column),
			logger.String("operator", string(op)))
		return squirrel.Expr(column+" BETWEEN ? AND ?", rng.Start, rng.End), nil
	}
}

// dateCondition is the single code path for absolute date comparisons so
// date semantics are defined once.
func (t *Translator) dateCondition(column string, op Operator, value time.Time) (squirrel.Sqlizer, error) {
	switch op {
	case OpBefore:
		return squirrel.Expr(column+" < ?", value), nil
	case OpAfter:
		return squirrel.Expr(column+" > ?", value), nil
	case OpBeforeOrOn:
		return squirrel.Expr(column+" <= ?", value), nil
	case OpAfterOrOn:
		return squirrel.Expr(column+" >= ?", value), nil
	case OpDuring:
		// a bare date means the whole day
		end := value.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return squirrel.Expr(column+" BETWEEN ? AND ?", value, end), nil
	default:
		return squirrel.Expr(column+" = ?", value), nil
	}
}

func (t *Translator) scalarCondition(filter FilterCondition) (squirrel.Sqlizer, error) {
	column, op, value := filter.Column, filter.Operator, filter.Value

	switch op {
	case OpEq:
		return squirrel.Expr(column+" = ?", value), nil
	case OpNotEq:
		return squirrel.Expr(column+" != ?", value), nil
	case OpGt, OpAfter:
		return squirrel.Expr(column+" > ?", value), nil
	case OpGte, OpAfterOrOn:
		return squirrel.Expr(column+" >= ?", value), nil
	case OpLt, OpBefore:
		return squirrel.Expr(column+" < ?", value), nil
	case OpLte, OpBeforeOrOn:
		return squirrel.Expr(column+" <= ?", value), nil

	case OpContains:
		return squirrel.Expr(column+" ILIKE ?", "%"+cast.ToString(value)+"%"), nil
	case OpContainsText:
		// JSON aware variant: cast to text before matching
		return squirrel.Expr(column+"::TEXT ILIKE ?", "%"+cast.ToString(value)+"%"), nil
	case OpStartsWith:
		return squirrel.Expr(column+" ILIKE ?", cast.ToString(value)+"%"), nil
	case OpEndsWith:
		return squirrel.Expr(column+" ILIKE ?", "%"+cast.ToString(value)), nil

	case OpIn:
		values := toValueSlice(value)
		if len(values) == 0 {
			// an empty list matches nothing; never emit "IN ()"
			return squirrel.Expr("FALSE"), nil
		}
		return squirrel.Eq{column: values}, nil
	case OpNotIn:
		values := toValueSlice(value)
		if len(values) == 0 {
			return squirrel.Expr("TRUE"), nil
		}
		return squirrel.NotEq{column: values}, nil

	case OpIsNull:
		return squirrel.Expr(column + " IS NULL"), nil
	case OpNotNull:
		return squirrel.Expr(column + " IS NOT NULL"), nil

	case OpBetween, OpNotBetween:
		return t.rangeCondition(column, op, value)

	case OpDuring:
		return squirrel.Expr(column+" BETWEEN ? AND ?", value, value), nil

	case OpHasKey:
		return squirrel.Expr(column+" ?? ?", cast.ToString(value)), nil
	case OpKeyEquals:
		pair := toValueSlice(value)
		if len(pair) != 2 {
			return nil, newError(ErrInvalidWhere, "keyEquals on %q expects a [key, value] pair", column)
		}
		return squirrel.Expr(column+" ->> ? = ?", cast.ToString(pair[0]), pair[1]), nil
	case OpPathExists:
		path := toStringParts(value)
		if len(path) == 0 {
			return nil, newError(ErrInvalidWhere, "pathExists on %q expects a non-empty path", column)
		}
		return squirrel.Expr(column+" #> ? IS NOT NULL", pq.Array(path)), nil

	default:
		t.log.Warn("unknown filter operator, falling back to equality",
			logger.String("column", column),
			logger.String("operator", string(op)))
		return squirrel.Expr(column+" = ?", value), nil
	}
}

// rangeCondition splits the value into exactly two bounds: either a two
// element slice or a comma joined string. A missing bound degrades to a
// constant TRUE instead of emitting malformed SQL.
func (t *Translator) rangeCondition(column string, op Operator, value any) (squirrel.Sqlizer, error) {
	parts := toValueSlice(value)
	if len(parts) == 0 {
		if s, ok := value.(string); ok {
			for _, part := range strings.SplitN(s, ",", 2) {
				parts = append(parts, strings.TrimSpace(part))
			}
		}
	}

	if len(parts) < 2 {
		t.log.Warn("range filter is missing a bound, skipping condition",
			logger.String("column", column),
			logger.String("operator", string(op)))
		return squirrel.Expr("TRUE"), nil
	}

	if op == OpNotBetween {
		return squirrel.Expr(column+" NOT BETWEEN ? AND ?", parts[0], parts[1]), nil
	}

	return squirrel.Expr(column+" BETWEEN ? AND ?", parts[0], parts[1]), nil
}

func asDateValue(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, true
			}
		}
	}

	return time.Time{}, false
}

func toValueSlice(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out
	default:
		return nil
	}
}

func toStringParts(value any) []string {
	if s, ok := value.(string); ok {
		var parts []string
		for _, part := range strings.Split(s, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return parts
	}

	values := toValueSlice(value)
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}

	return parts
}
