package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"

	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/helper"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/pkg/querybuilder"
	"ucode/ucode_go_report_builder_service/storage"
)

type reportRepo struct {
	store *Store
	cfg   config.Config
	log   logger.LoggerI

	validator  *querybuilder.QueryValidator
	translator *querybuilder.Translator
}

func NewReportRepo(store *Store, cfg config.Config, log logger.LoggerI, validator *querybuilder.QueryValidator, translator *querybuilder.Translator) storage.ReportRepoI {
	return &reportRepo{
		store:      store,
		cfg:        cfg,
		log:        log,
		validator:  validator,
		translator: translator,
	}
}

// BuildQuery assembles the statement without executing it, for callers that
// want to inspect or cache the SQL.
func (r *reportRepo) BuildQuery(ctx context.Context, req *models.RunReportRequest) (*models.BuildQueryResponse, error) {
	dbSpan, _ := opentracing.StartSpanFromContext(ctx, "report.BuildQuery")
	defer dbSpan.Finish()

	result, err := r.build(req.Query)
	if err != nil {
		return nil, err
	}

	return &models.BuildQueryResponse{
		SQL:      result.Statement.SQL,
		Args:     result.Statement.Args,
		Metadata: metaFromResult(result.Metadata),
	}, nil
}

// Run builds the statement, executes it against the project's database and
// returns normalized rows.
func (r *reportRepo) Run(ctx context.Context, req *models.RunReportRequest) (*models.RunReportResponse, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "report.Run")
	defer dbSpan.Finish()

	result, err := r.build(req.Query)
	if err != nil {
		return nil, err
	}

	conn, err := r.store.conn(req.ProjectId)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	rows, err := conn.Query(ctx, result.Statement.SQL, result.Statement.Args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "Run: query execution")
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescriptions))
	for i, fd := range fieldDescriptions {
		columns[i] = string(fd.Name)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, helper.HandleDatabaseError(err, r.log, "Run: get values")
		}

		results = append(results, helper.NormalizeRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "Run: rows error")
	}

	r.recordHistory(ctx, req.ProjectId, result, len(results), time.Since(started))

	return &models.RunReportResponse{
		Columns:  columns,
		Rows:     results,
		Count:    len(results),
		Metadata: metaFromResult(result.Metadata),
	}, nil
}

func (r *reportRepo) build(query models.ReportQuery) (querybuilder.QueryResult, error) {
	if res := r.validator.ValidateQuery(query); !res.Valid {
		return querybuilder.QueryResult{}, helper.HandleBuildError(res.Err())
	}

	builder, err := querybuilder.FromParams(query, r.translator,
		querybuilder.WithDefaultSchema(r.cfg.DefaultSchema))
	if err != nil {
		return querybuilder.QueryResult{}, helper.HandleBuildError(err)
	}

	result, err := builder.Build()
	if err != nil {
		return querybuilder.QueryResult{}, helper.HandleBuildError(err)
	}

	return result, nil
}

// recordHistory keeps an execution log in the service's own database for
// reporting and cache invalidation. Failures are logged, never propagated.
func (r *reportRepo) recordHistory(ctx context.Context, projectId string, result querybuilder.QueryResult, rowCount int, duration time.Duration) {
	var project any
	if projectId != "" {
		project = projectId
	}

	query, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Insert("query_history").
		Columns("id", "project_id", "statement", "query_type", "duration_ms", "row_count").
		Values(
			uuid.NewString(),
			project,
			result.Statement.SQL,
			string(result.Metadata.QueryType),
			duration.Milliseconds(),
			rowCount,
		).
		ToSql()
	if err != nil {
		r.log.Warn("recordHistory: build insert", logger.Error(err))
		return
	}

	if _, err := r.store.db.Exec(ctx, query, args...); err != nil {
		r.log.Warn("recordHistory: insert", logger.Error(err))
	}
}

func metaFromResult(meta querybuilder.QueryMetadata) models.QueryMeta {
	return models.QueryMeta{
		QueryType:      string(meta.QueryType),
		HasAggregation: meta.HasAggregation,
		IsTimeSeries:   meta.IsTimeSeries,
	}
}
