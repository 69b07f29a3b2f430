package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	psqlpool "ucode/ucode_go_report_builder_service/pool"
	"ucode/ucode_go_report_builder_service/storage"
)

type projectRepo struct {
	log logger.LoggerI
}

func NewProjectRepo(log logger.LoggerI) storage.ProjectRepoI {
	return &projectRepo{log: log}
}

// Register connects the project's database and keeps the pool in the shared
// registry so report runs can reach it by project id.
func (p *projectRepo) Register(ctx context.Context, req *models.RegisterProjectRequest) error {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "project.Register")
	defer dbSpan.Finish()

	if req.ProjectId == "" {
		return errors.New("project_id is required")
	}
	if req.DatabaseURL == "" {
		return errors.New("database_url is required")
	}

	poolConfig, err := pgxpool.ParseConfig(req.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "parse project database url")
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return errors.Wrap(err, "connect project database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return errors.Wrap(err, "ping project database")
	}

	psqlpool.Add(req.ProjectId, &psqlpool.Pool{Db: pool})

	p.log.Info("project database registered", logger.String("project_id", req.ProjectId))

	return nil
}

func (p *projectRepo) Deregister(ctx context.Context, req *models.DeregisterProjectRequest) error {
	dbSpan, _ := opentracing.StartSpanFromContext(ctx, "project.Deregister")
	defer dbSpan.Finish()

	if req.ProjectId == "" {
		return errors.New("project_id is required")
	}

	psqlpool.Remove(req.ProjectId)

	p.log.Info("project database deregistered", logger.String("project_id", req.ProjectId))

	return nil
}
