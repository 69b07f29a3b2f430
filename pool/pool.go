package psqlpool

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"ucode/ucode_go_report_builder_service/config"
)

var (
	mu       sync.RWMutex
	psqlPool = make(map[string]*Pool) // postgres connections by project_id
)

// Pool wraps a pgx pool with tracing spans around every statement.
type Pool struct {
	Db *pgxpool.Pool
}

func (b *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.QueryRow")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)
	dbSpan.SetTag("args", args)

	return b.Db.QueryRow(ctx, sql, args...)
}

func (b *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Query")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)
	dbSpan.SetTag("args", args)

	return b.Db.Query(ctx, sql, args...)
}

func (b *Pool) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Exec")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)
	dbSpan.SetTag("args", arguments)

	return b.Db.Exec(ctx, sql, arguments...)
}

func (b *Pool) Begin(ctx context.Context) (pgx.Tx, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Begin")
	defer dbSpan.Finish()

	tx, err := b.Db.Begin(ctx)
	if err != nil {
		dbSpan.SetTag("error", true)
		dbSpan.LogKV("error.message", err.Error())
		return nil, err
	}

	return tx, nil
}

// Add registers a project connection; an existing registration wins.
func Add(projectId string, conn *Pool) {
	if projectId == "" || conn == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := psqlPool[projectId]; ok {
		return
	}

	psqlPool[projectId] = conn
}

// Get ...
func Get(projectId string) (*Pool, error) {
	mu.RLock()
	defer mu.RUnlock()

	conn, ok := psqlPool[projectId]
	if !ok {
		return nil, errors.Errorf("%s: %q", config.ErrPoolNotFound, projectId)
	}

	return conn, nil
}

// Remove closes and forgets a project connection.
func Remove(projectId string) {
	mu.Lock()
	defer mu.Unlock()

	conn, ok := psqlPool[projectId]
	if !ok {
		return
	}

	conn.Db.Close()
	delete(psqlPool, projectId)
}

// Override replaces a registered connection, closing the old one.
func Override(projectId string, conn *Pool) {
	if projectId == "" || conn == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if old, ok := psqlPool[projectId]; ok {
		old.Db.Close()
	}

	psqlPool[projectId] = conn
}
