package config

import (
	"time"
)

const (
	DatabaseTimeLayout string = time.RFC3339
	DateOnlyLayout     string = "2006-01-02"
	TimestampLayout    string = "2006-01-02 15:04:05"

	ErrNoRows       string = "no rows in result set"
	ErrEnvNodFound  string = "No .env file found"
	ErrPoolNotFound string = "connection pool is not registered for this project"

	// Relative date token prefix ("@last7Days", "@thisMonth", ...)
	RelativeDatePrefix string = "@"
)

var (
	// WIDGET_TYPES lists dashboard widget kinds a saved query may be bound to.
	WIDGET_TYPES = map[string]bool{
		"TABLE":      true,
		"BAR":        true,
		"LINE":       true,
		"AREA":       true,
		"PIE":        true,
		"STAT":       true,
		"TIMESERIES": true,
	}
)
