package helper

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/pkg/querybuilder"
)

// HandleDatabaseError maps postgres failures onto grpc status codes so the
// transport edge can translate them uniformly.
func HandleDatabaseError(err error, log logger.LoggerI, message string) error {
	if err == nil {
		return nil
	}

	if err == pgx.ErrNoRows {
		return status.Error(codes.NotFound, "not found")
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		log.Error(message+": "+err.Error(), logger.String("column", pgErr.ColumnName))

		switch pgErr.Code {
		case "23505":
			// Unique violation
			return status.Error(codes.AlreadyExists, err.Error())
		case "23503":
			// Foreign key violation
			return status.Error(codes.FailedPrecondition, fmt.Sprintf("foreign key violation: %v", pgErr.Message))
		case "23502":
			// Not null violation
			return status.Error(codes.InvalidArgument, fmt.Sprintf("not null violation: %v", pgErr.Message))
		case "08006":
			// Connection failure
			return status.Error(codes.Unavailable, fmt.Sprintf("connection failure: %v", pgErr.Message))
		case "3D000":
			// Database not found
			return status.Error(codes.NotFound, fmt.Sprintf("database not found: %v", pgErr.Message))
		case "42P01":
			// Undefined table
			return status.Error(codes.NotFound, fmt.Sprintf("undefined table: %v", pgErr.Message))
		case "42703":
			// Undefined column
			return status.Error(codes.InvalidArgument, fmt.Sprintf("undefined column: %v", pgErr.Message))
		case "42601":
			// Syntax error: a bug in the query builder, not in caller input
			return status.Error(codes.Internal, fmt.Sprintf("statement syntax error: %v", pgErr.Message))
		case "40P01":
			// Deadlock detected
			return status.Error(codes.Aborted, fmt.Sprintf("deadlock detected: %v", pgErr.Message))
		case "57014":
			// Statement cancelled (timeout)
			return status.Error(codes.DeadlineExceeded, "statement cancelled")
		case "22003":
			// Numeric value out of range
			return status.Error(codes.OutOfRange, fmt.Sprintf("numeric value out of range: %v", pgErr.Message))
		default:
			return status.Error(codes.Internal, fmt.Sprintf("postgres error: %v", pgErr.Message))
		}
	}

	return status.Error(codes.Internal, fmt.Sprintf("unknown error: %v", err))
}

// HandleBuildError maps query builder failures onto grpc status codes.
func HandleBuildError(err error) error {
	if err == nil {
		return nil
	}

	switch querybuilder.KindOf(err) {
	case "":
		return status.Error(codes.Internal, err.Error())
	case querybuilder.ErrUnauthorizedSchema, querybuilder.ErrUnauthorizedTable:
		return status.Error(codes.PermissionDenied, err.Error())
	case querybuilder.ErrSqlInjectionRisk:
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Error(codes.InvalidArgument, err.Error())
	}
}
