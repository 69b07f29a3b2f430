package querybuilder

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind is the closed set of failure classes raised by the validator and
// the orchestrator.
type ErrorKind string

const (
	ErrInvalidConfiguration ErrorKind = "INVALID_CONFIGURATION"
	ErrMissingRequiredField ErrorKind = "MISSING_REQUIRED_FIELD"
	ErrInvalidAggregation   ErrorKind = "INVALID_AGGREGATION"
	ErrInvalidJoin          ErrorKind = "INVALID_JOIN"
	ErrInvalidWhere         ErrorKind = "INVALID_WHERE"
	ErrInvalidTimeInterval  ErrorKind = "INVALID_TIME_INTERVAL"
	ErrSqlInjectionRisk     ErrorKind = "SQL_INJECTION_RISK"
	ErrValidationFailed     ErrorKind = "VALIDATION_FAILED"
	ErrInvalidColumn        ErrorKind = "INVALID_COLUMN"
	ErrInvalidSchema        ErrorKind = "INVALID_SCHEMA"
	ErrInvalidTable         ErrorKind = "INVALID_TABLE"
	ErrInvalidWidgetType    ErrorKind = "INVALID_WIDGET_TYPE"
	ErrUnauthorizedSchema   ErrorKind = "UNAUTHORIZED_SCHEMA"
	ErrUnauthorizedTable    ErrorKind = "UNAUTHORIZED_TABLE"
)

// QueryError carries an ErrorKind alongside the message. ValidationFailed
// errors additionally carry the collected sub-errors.
type QueryError struct {
	Kind ErrorKind
	Sub  []error

	msg   string
	cause error
}

func (e *QueryError) Error() string {
	if len(e.Sub) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}

	parts := make([]string, 0, len(e.Sub))
	for _, sub := range e.Sub {
		parts = append(parts, sub.Error())
	}

	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *QueryError) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, format string, args ...any) *QueryError {
	return &QueryError{
		Kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}

func wrapError(kind ErrorKind, err error, msg string) *QueryError {
	return &QueryError{
		Kind:  kind,
		msg:   msg,
		cause: errors.Wrap(err, msg),
	}
}

func newValidationFailed(subs []error) *QueryError {
	return &QueryError{
		Kind: ErrValidationFailed,
		Sub:  subs,
		msg:  "query configuration is invalid",
	}
}

// KindOf extracts the ErrorKind from an error chain; empty when the error
// did not originate here.
func KindOf(err error) ErrorKind {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind
	}

	return ""
}
