package helper

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"ucode/ucode_go_report_builder_service/config"
)

// NormalizeRow pairs column names with driver values, rewriting driver
// specific representations into JSON friendly ones.
func NormalizeRow(columns []string, values []any) map[string]any {
	row := make(map[string]any, len(columns))

	for i, column := range columns {
		row[column] = NormalizeValue(values[i])
	}

	return row
}

// NormalizeValue ...
func NormalizeValue(value any) any {
	switch v := value.(type) {
	case [16]uint8: // uuid
		return uuid.UUID(v).String()
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case time.Time:
		return v.Format(config.DatabaseTimeLayout)
	default:
		return value
	}
}
