package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ucode/ucode_go_report_builder_service/models"
)

func TestBuildQuery(t *testing.T) {
	resp, err := strg.Report().BuildQuery(context.Background(), &models.RunReportRequest{
		ProjectId: projectId,
		Query: models.ReportQuery{
			Table:   models.TableRef{Table: "saved_query"},
			Columns: []string{"id", "name"},
			Filters: []models.Filter{
				{Column: "widget_type", Operator: "eq", Value: "TABLE"},
			},
			Limit: 5,
		},
	})
	assert.NoError(t, err)
	assert.Contains(t, resp.SQL, `FROM "public"."saved_query"`)
	assert.Contains(t, resp.SQL, "widget_type = $1")
	assert.Equal(t, []any{"TABLE"}, resp.Args)
	assert.Equal(t, "SELECT", resp.Metadata.QueryType)
}

func TestBuildQueryRejectsInvalidConfiguration(t *testing.T) {
	_, err := strg.Report().BuildQuery(context.Background(), &models.RunReportRequest{
		ProjectId: projectId,
		Query: models.ReportQuery{
			Table: models.TableRef{Table: "saved_query; DROP TABLE saved_query"},
		},
	})
	assert.Error(t, err)
}

func TestRunReport(t *testing.T) {
	saved := createSavedQuery(t)

	resp, err := strg.Report().Run(context.Background(), &models.RunReportRequest{
		ProjectId: projectId,
		Query: models.ReportQuery{
			Table:   models.TableRef{Table: "saved_query"},
			Columns: []string{"id", "name", "widget_type"},
			Filters: []models.Filter{
				{Column: "project_id", Operator: "eq", Value: saved.ProjectId},
			},
		},
	})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, resp.Count, 1)
	assert.Equal(t, []string{"id", "name", "widget_type"}, resp.Columns)
	assert.Equal(t, saved.Id, resp.Rows[0]["id"])
}

func TestRunReportAggregate(t *testing.T) {
	saved := createSavedQuery(t)

	resp, err := strg.Report().Run(context.Background(), &models.RunReportRequest{
		ProjectId: projectId,
		Query: models.ReportQuery{
			Table: models.TableRef{Table: "saved_query"},
			Aggregations: []models.Aggregation{
				{Column: "*", Type: "COUNT"},
			},
			Filters: []models.Filter{
				{Column: "project_id", Operator: "eq", Value: saved.ProjectId},
			},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "AGGREGATE", resp.Metadata.QueryType)
	assert.True(t, resp.Metadata.HasAggregation)
}

func TestRunReportTimeSeries(t *testing.T) {
	saved := createSavedQuery(t)

	resp, err := strg.Report().Run(context.Background(), &models.RunReportRequest{
		ProjectId: projectId,
		Query: models.ReportQuery{
			Table: models.TableRef{Table: "saved_query"},
			Aggregations: []models.Aggregation{
				{Column: "*", Type: "COUNT"},
			},
			GroupBy: &models.GroupBySpec{
				TimeBucket: &models.TimeBucket{Column: "created_at", Interval: "day"},
			},
			Filters: []models.Filter{
				{Column: "project_id", Operator: "eq", Value: saved.ProjectId},
			},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "TIME_SERIES", resp.Metadata.QueryType)
	assert.True(t, resp.Metadata.IsTimeSeries)
	assert.NotEmpty(t, resp.Rows)
}

func TestRunReportUnknownProject(t *testing.T) {
	_, err := strg.Report().Run(context.Background(), &models.RunReportRequest{
		ProjectId: CreateRandomId(t),
		Query: models.ReportQuery{
			Table: models.TableRef{Table: "saved_query"},
		},
	})
	assert.Error(t, err)
}
