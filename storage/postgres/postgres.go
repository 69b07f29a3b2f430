package postgres

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/pkg/daterange"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/pkg/querybuilder"
	psqlpool "ucode/ucode_go_report_builder_service/pool"
	"ucode/ucode_go_report_builder_service/storage"
)

type Store struct {
	db  *psqlpool.Pool
	cfg config.Config
	log logger.LoggerI

	validator  *querybuilder.QueryValidator
	translator *querybuilder.Translator

	project    storage.ProjectRepoI
	report     storage.ReportRepoI
	savedQuery storage.SavedQueryRepoI
	export     storage.ExportRepoI
}

func NewPostgres(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	dbURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDatabase,
	)

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(dbURL); err != nil {
		return nil, err
	}

	conn := &psqlpool.Pool{Db: pool}

	return &Store{
		db:  conn,
		cfg: cfg,
		log: log,
		validator: querybuilder.NewQueryValidator(querybuilder.ValidatorConfig{
			AllowedSchemas: cfg.AllowedSchemas,
			AllowedTables:  cfg.AllowedTables,
			MaxJoins:       cfg.MaxJoins,
		}),
		translator: querybuilder.NewTranslator(daterange.NewResolver(nil), log),
	}, nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func (s *Store) CloseDB() {
	s.db.Db.Close()
}

// conn resolves the pool to run against: the project's registered database
// or the service's own when no project is named.
func (s *Store) conn(projectId string) (*psqlpool.Pool, error) {
	if projectId == "" {
		return s.db, nil
	}

	return psqlpool.Get(projectId)
}

func (s *Store) Project() storage.ProjectRepoI {
	if s.project == nil {
		s.project = NewProjectRepo(s.log)
	}

	return s.project
}

func (s *Store) Report() storage.ReportRepoI {
	if s.report == nil {
		s.report = NewReportRepo(s, s.cfg, s.log, s.validator, s.translator)
	}

	return s.report
}

func (s *Store) SavedQuery() storage.SavedQueryRepoI {
	if s.savedQuery == nil {
		s.savedQuery = NewSavedQueryRepo(s.db, s.log)
	}

	return s.savedQuery
}

func (s *Store) Export() storage.ExportRepoI {
	if s.export == nil {
		s.export = NewExportRepo(s.Report().(*reportRepo), s.cfg, s.log)
	}

	return s.export
}
