package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/helper"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	psqlpool "ucode/ucode_go_report_builder_service/pool"
	"ucode/ucode_go_report_builder_service/storage"
)

type savedQueryRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewSavedQueryRepo(db *psqlpool.Pool, log logger.LoggerI) storage.SavedQueryRepoI {
	return &savedQueryRepo{
		db:  db,
		log: log,
	}
}

func (s *savedQueryRepo) Create(ctx context.Context, req *models.SavedQuery) (*models.SavedQuery, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "saved_query.Create")
	defer dbSpan.Finish()

	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.WidgetType != "" && !models.IsValidWidgetType(req.WidgetType) {
		return nil, errors.Errorf("unknown widget type %q", req.WidgetType)
	}

	var definition pgtype.JSONB
	if err := definition.Set(req.Definition); err != nil {
		return nil, errors.Wrap(err, "encode query definition")
	}

	req.Id = uuid.NewString()

	query, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Insert("saved_query").
		Columns("id", "project_id", "name", "description", "widget_type", "definition").
		Values(req.Id, req.ProjectId, req.Name, req.Description, req.WidgetType, definition).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert")
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "Create: insert saved query")
	}

	return s.GetByID(ctx, &models.SavedQueryPrimaryKey{Id: req.Id, ProjectId: req.ProjectId})
}

func (s *savedQueryRepo) GetByID(ctx context.Context, req *models.SavedQueryPrimaryKey) (*models.SavedQuery, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "saved_query.GetByID")
	defer dbSpan.Finish()

	base := savedQuerySelect().Where(squirrel.Eq{"id": req.Id})
	if req.ProjectId != "" {
		base = base.Where(squirrel.Eq{"project_id": req.ProjectId})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	row := s.db.QueryRow(ctx, query, args...)

	resp, err := scanSavedQuery(row.Scan)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "GetByID: scan saved query")
	}

	return resp, nil
}

func (s *savedQueryRepo) GetAll(ctx context.Context, req *models.GetAllSavedQueriesRequest) (*models.GetAllSavedQueriesResponse, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "saved_query.GetAll")
	defer dbSpan.Finish()

	filters := squirrel.And{}
	if req.ProjectId != "" {
		filters = append(filters, squirrel.Eq{"project_id": req.ProjectId})
	}
	if req.Search != "" {
		filters = append(filters, squirrel.Expr("name ILIKE ?", "%"+req.Search+"%"))
	}

	base := savedQuerySelect()
	if len(filters) > 0 {
		base = base.Where(filters)
	}

	base = base.OrderBy("created_at DESC")

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}
	base = base.Limit(limit)
	if req.Offset > 0 {
		base = base.Offset(req.Offset)
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "GetAll: query saved queries")
	}
	defer rows.Close()

	resp := &models.GetAllSavedQueriesResponse{
		SavedQueries: make([]models.SavedQuery, 0),
	}

	for rows.Next() {
		item, err := scanSavedQuery(rows.Scan)
		if err != nil {
			return nil, helper.HandleDatabaseError(err, s.log, "GetAll: scan saved query")
		}
		resp.SavedQueries = append(resp.SavedQueries, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "GetAll: rows error")
	}

	count := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("COUNT(*)").
		From("saved_query").
		Where("deleted_at IS NULL")
	if len(filters) > 0 {
		count = count.Where(filters)
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build count")
	}

	if err := s.db.QueryRow(ctx, countQuery, countArgs...).Scan(&resp.Count); err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "GetAll: count saved queries")
	}

	return resp, nil
}

func (s *savedQueryRepo) Update(ctx context.Context, req *models.SavedQuery) (*models.SavedQuery, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "saved_query.Update")
	defer dbSpan.Finish()

	if req.WidgetType != "" && !models.IsValidWidgetType(req.WidgetType) {
		return nil, errors.Errorf("unknown widget type %q", req.WidgetType)
	}

	var definition pgtype.JSONB
	if err := definition.Set(req.Definition); err != nil {
		return nil, errors.Wrap(err, "encode query definition")
	}

	update := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Update("saved_query").
		SetMap(map[string]any{
			"name":        req.Name,
			"description": req.Description,
			"widget_type": req.WidgetType,
			"definition":  definition,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": req.Id}).
		Where("deleted_at IS NULL")
	if req.ProjectId != "" {
		update = update.Where(squirrel.Eq{"project_id": req.ProjectId})
	}

	query, args, err := update.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update")
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "Update: update saved query")
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.New("saved query not found")
	}

	return s.GetByID(ctx, &models.SavedQueryPrimaryKey{Id: req.Id, ProjectId: req.ProjectId})
}

func (s *savedQueryRepo) Delete(ctx context.Context, req *models.SavedQueryPrimaryKey) error {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "saved_query.Delete")
	defer dbSpan.Finish()

	del := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Update("saved_query").
		Set("deleted_at", time.Now()).
		Where(squirrel.Eq{"id": req.Id}).
		Where("deleted_at IS NULL")
	if req.ProjectId != "" {
		del = del.Where(squirrel.Eq{"project_id": req.ProjectId})
	}

	query, args, err := del.ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete")
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return helper.HandleDatabaseError(err, s.log, "Delete: delete saved query")
	}
	if tag.RowsAffected() == 0 {
		return errors.New("saved query not found")
	}

	return nil
}

func savedQuerySelect() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("id", "project_id", "name", "description", "widget_type", "definition", "created_at", "updated_at").
		From("saved_query").
		Where("deleted_at IS NULL")
}

func scanSavedQuery(scan func(dest ...any) error) (*models.SavedQuery, error) {
	var (
		item       models.SavedQuery
		definition pgtype.JSONB
	)

	err := scan(
		&item.Id,
		&item.ProjectId,
		&item.Name,
		&item.Description,
		&item.WidgetType,
		&definition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(definition.Bytes) > 0 {
		if err := json.Unmarshal(definition.Bytes, &item.Definition); err != nil {
			return nil, errors.Wrap(err, "decode query definition")
		}
	}

	return &item, nil
}
