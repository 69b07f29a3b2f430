package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ucode/ucode_go_report_builder_service/models"
)

func TestFromParamsPlainSelect(t *testing.T) {
	builder, err := FromParams(models.ReportQuery{
		Table:   models.TableRef{Table: "orders"},
		Columns: []string{"id", "status"},
		Limit:   50,
		Offset:  100,
	}, newTestTranslator())
	assert.NoError(t, err)

	result, err := builder.Build()
	assert.NoError(t, err)
	assert.Equal(t, `SELECT id, status FROM "public"."orders" LIMIT 50 OFFSET 100`, result.Statement.SQL)
	assert.Equal(t, QueryTypeSelect, result.Metadata.QueryType)
}

func TestFromParamsAggregateWithHaving(t *testing.T) {
	builder, err := FromParams(models.ReportQuery{
		Table: models.TableRef{Table: "orders", Alias: "o"},
		Aggregations: []models.Aggregation{
			{Column: "o.amount", Type: "sum"},
		},
		GroupBy: &models.GroupBySpec{Columns: []string{"o.status"}},
		Filters: []models.Filter{
			{Column: "o.status", Operator: "notEq", Value: "draft"},
		},
		Having: []models.Filter{
			{Column: "sum_amount", Operator: "gt", Value: 1000},
		},
		OrderBy: []models.OrderBySpec{
			{Expression: "o.status", Direction: "desc"},
		},
	}, newTestTranslator())
	assert.NoError(t, err)

	result, err := builder.Build()
	assert.NoError(t, err)
	assert.Equal(t,
		`SELECT SUM(o.amount)::NUMERIC AS sum_amount `+
			`FROM "public"."orders" AS o `+
			`WHERE (o.status != $1) `+
			`GROUP BY o.status `+
			`HAVING (sum_amount > $2) `+
			`ORDER BY o.status DESC`,
		result.Statement.SQL)
	assert.Equal(t, []any{"draft", 1000}, result.Statement.Args)
	assert.Equal(t, QueryTypeAggregate, result.Metadata.QueryType)
}

func TestFromParamsTimeSeries(t *testing.T) {
	builder, err := FromParams(models.ReportQuery{
		Table: models.TableRef{Table: "orders"},
		Aggregations: []models.Aggregation{
			{Column: "*", Type: "COUNT"},
		},
		GroupBy: &models.GroupBySpec{
			TimeBucket: &models.TimeBucket{Column: "created_at", Interval: "day"},
		},
		Filters: []models.Filter{
			{Column: "created_at", Operator: "eq", Value: "@last30Days"},
		},
	}, newTestTranslator())
	assert.NoError(t, err)

	result, err := builder.Build()
	assert.NoError(t, err)

	// the bucket boundary leads the select list
	assert.Equal(t,
		`SELECT DATE_TRUNC('day', created_at) AS bucket, COUNT(*)::NUMERIC AS count_all `+
			`FROM "public"."orders" `+
			`WHERE (created_at BETWEEN $1 AND $2) `+
			`GROUP BY DATE_TRUNC('day', created_at)`,
		result.Statement.SQL)
	assert.Len(t, result.Statement.Args, 2)
	assert.Equal(t, QueryTypeTimeSeries, result.Metadata.QueryType)
}

func TestFromParamsTimeBucketWithGroupColumns(t *testing.T) {
	builder, err := FromParams(models.ReportQuery{
		Table: models.TableRef{Table: "orders"},
		GroupBy: &models.GroupBySpec{
			Columns:    []string{"status"},
			TimeBucket: &models.TimeBucket{Column: "created_at", Interval: "month"},
		},
	}, newTestTranslator())
	assert.NoError(t, err)

	result, err := builder.Build()
	assert.NoError(t, err)
	assert.Contains(t, result.Statement.SQL, `GROUP BY DATE_TRUNC('month', created_at), status`)
}

func TestFromParamsJoins(t *testing.T) {
	builder, err := FromParams(models.ReportQuery{
		Table:   models.TableRef{Table: "orders", Alias: "o"},
		Columns: []string{"o.id", "c.name"},
		Joins: []models.JoinSpec{
			{Type: "left", Table: models.TableRef{Table: "customers", Alias: "c"}, Condition: "c.guid = o.customer_id"},
		},
	}, newTestTranslator())
	assert.NoError(t, err)

	result, err := builder.Build()
	assert.NoError(t, err)
	assert.Contains(t, result.Statement.SQL, `LEFT JOIN "public"."customers" AS c ON c.guid = o.customer_id`)
}

func TestFromParamsRollupCubeConflict(t *testing.T) {
	_, err := FromParams(models.ReportQuery{
		Table:   models.TableRef{Table: "orders"},
		GroupBy: &models.GroupBySpec{Columns: []string{"status"}, Rollup: true, Cube: true},
	}, newTestTranslator())
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidConfiguration, KindOf(err))
}

func TestFromParamsOrderByNulls(t *testing.T) {
	nullsFirst := false

	builder, err := FromParams(models.ReportQuery{
		Table: models.TableRef{Table: "orders"},
		OrderBy: []models.OrderBySpec{
			{Expression: "updated_at", Direction: "DESC", NullsFirst: &nullsFirst},
		},
	}, newTestTranslator())
	assert.NoError(t, err)

	result, err := builder.Build()
	assert.NoError(t, err)
	assert.Contains(t, result.Statement.SQL, "ORDER BY updated_at DESC NULLS LAST")
}

func TestFromParamsBadAggregation(t *testing.T) {
	_, err := FromParams(models.ReportQuery{
		Table:        models.TableRef{Table: "orders"},
		Aggregations: []models.Aggregation{{Column: "amount", Type: "MEDIAN"}},
	}, newTestTranslator())
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidAggregation, KindOf(err))
}
