package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field ...
type Field = zapcore.Field

var (
	String   = zap.String
	Bool     = zap.Bool
	Int      = zap.Int
	Int32    = zap.Int32
	Int64    = zap.Int64
	Float64  = zap.Float64
	Any      = zap.Any
	Duration = zap.Duration
)

// Error wraps an error into a log field.
func Error(err error) Field {
	return zap.Error(err)
}
