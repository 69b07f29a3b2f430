package querybuilder

import (
	"regexp"
	"strings"

	"ucode/ucode_go_report_builder_service/models"
)

// Postgres truncates identifiers at 63 bytes; anything longer is invalid
// here rather than silently shortened.
const maxIdentifierLength = 63

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)
	sanitizePattern   = regexp.MustCompile(`[^A-Za-z0-9_]`)
	unionPattern      = regexp.MustCompile(`(?i)\bUNION\b[\s\S]*\bSELECT\b`)
)

// Substrings that disqualify a raw condition fragment. This is a heuristic
// blacklist, not a SQL parser; see IsSafeCondition.
var denyListMarkers = []string{
	"; DROP",
	"; DELETE",
	"; UPDATE",
	"; INSERT",
	"; ALTER",
	"; CREATE",
	"; EXEC",
	"--",
	"/*",
	"*/",
}

// IsValidIdentifier reports whether name is usable as a schema, table or
// column identifier without quoting tricks.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// SanitizeIdentifier strips everything outside [A-Za-z0-9_], prefixes "_"
// when the result does not start with a letter or underscore and truncates
// to the identifier length limit. It never fails; use the Validate*
// functions when a violation must be fatal.
func SanitizeIdentifier(name string) string {
	cleaned := sanitizePattern.ReplaceAllString(name, "")

	if cleaned == "" || (!isIdentifierStart(cleaned[0])) {
		cleaned = "_" + cleaned
	}

	if len(cleaned) > maxIdentifierLength {
		cleaned = cleaned[:maxIdentifierLength]
	}

	return cleaned
}

func isIdentifierStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ValidateSchema ...
func ValidateSchema(name string) error {
	if !IsValidIdentifier(name) {
		return newError(ErrInvalidSchema, "invalid schema name %q", name)
	}

	return nil
}

// ValidateTable ...
func ValidateTable(name string) error {
	if !IsValidIdentifier(name) {
		return newError(ErrInvalidTable, "invalid table name %q", name)
	}

	return nil
}

// ValidateColumn accepts a bare column name or an alias qualified reference
// such as "a.created_at".
func ValidateColumn(name string) error {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return newError(ErrInvalidColumn, "invalid column name %q", name)
	}

	for _, part := range parts {
		if !IsValidIdentifier(part) {
			return newError(ErrInvalidColumn, "invalid column name %q", name)
		}
	}

	return nil
}

// IsSafeCondition screens caller supplied raw SQL fragments (JOIN
// conditions and the like) that cannot be parameterized. It rejects known
// injection markers only; it does not parse SQL.
func IsSafeCondition(condition string) bool {
	if strings.TrimSpace(condition) == "" {
		return false
	}

	upper := strings.ToUpper(condition)
	for _, marker := range denyListMarkers {
		if strings.Contains(upper, marker) {
			return false
		}
	}

	return !unionPattern.MatchString(condition)
}

// ValidatorConfig carries the optional allow-lists applied on top of plain
// identifier validation.
type ValidatorConfig struct {
	AllowedSchemas []string
	AllowedTables  []string
	MaxJoins       int
}

type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Errors []error `json:"errors,omitempty"`
}

// Err folds the collected violations into a single ValidationFailed error,
// nil when the configuration passed.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}

	return newValidationFailed(r.Errors)
}

type QueryValidator struct {
	allowedSchemas map[string]bool
	allowedTables  map[string]bool
	maxJoins       int
}

func NewQueryValidator(cfg ValidatorConfig) *QueryValidator {
	v := &QueryValidator{
		maxJoins: cfg.MaxJoins,
	}

	if len(cfg.AllowedSchemas) > 0 {
		v.allowedSchemas = make(map[string]bool, len(cfg.AllowedSchemas))
		for _, s := range cfg.AllowedSchemas {
			v.allowedSchemas[s] = true
		}
	}
	if len(cfg.AllowedTables) > 0 {
		v.allowedTables = make(map[string]bool, len(cfg.AllowedTables))
		for _, t := range cfg.AllowedTables {
			v.allowedTables[t] = true
		}
	}

	return v
}

// ValidateQuery collects every violation in the declarative query
// configuration instead of stopping at the first one, so batch problems can
// be reported together.
func (v *QueryValidator) ValidateQuery(params models.ReportQuery) ValidationResult {
	var errs []error

	if params.Table.Table == "" {
		errs = append(errs, newError(ErrMissingRequiredField, "table is required"))
	} else {
		errs = append(errs, v.checkTable(tableRefFromModel(params.Table))...)
	}

	if len(params.Joins) > v.maxJoins && v.maxJoins > 0 {
		errs = append(errs, newError(ErrInvalidJoin, "query uses %d joins, at most %d allowed", len(params.Joins), v.maxJoins))
	}

	for _, join := range params.Joins {
		switch JoinType(join.Type) {
		case JoinInner, JoinLeft, JoinRight, JoinFull:
		default:
			errs = append(errs, newError(ErrInvalidJoin, "unknown join type %q", join.Type))
		}

		errs = append(errs, v.checkTable(tableRefFromModel(join.Table))...)

		if !IsSafeCondition(join.Condition) {
			errs = append(errs, newError(ErrSqlInjectionRisk, "join condition %q contains forbidden SQL", join.Condition))
		}
	}

	for _, agg := range params.Aggregations {
		switch AggregationType(strings.ToUpper(agg.Type)) {
		case AggCount, AggSum, AggAvg, AggMin, AggMax:
		default:
			errs = append(errs, newError(ErrInvalidAggregation, "unknown aggregation type %q", agg.Type))
		}
	}

	if params.GroupBy != nil {
		if params.GroupBy.Rollup && params.GroupBy.Cube {
			errs = append(errs, newError(ErrInvalidConfiguration, "ROLLUP and CUBE are mutually exclusive"))
		}
		if tb := params.GroupBy.TimeBucket; tb != nil {
			if !IsValidInterval(TimeInterval(tb.Interval)) {
				errs = append(errs, newError(ErrInvalidTimeInterval, "unknown time bucket interval %q", tb.Interval))
			}
		}
	}

	if params.WidgetType != "" && !models.IsValidWidgetType(params.WidgetType) {
		errs = append(errs, newError(ErrInvalidWidgetType, "unknown widget type %q", params.WidgetType))
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func (v *QueryValidator) checkTable(ref TableReference) []error {
	var errs []error

	if ref.Schema != "" {
		if err := ValidateSchema(ref.Schema); err != nil {
			errs = append(errs, err)
		} else if v.allowedSchemas != nil && !v.allowedSchemas[ref.Schema] {
			errs = append(errs, newError(ErrUnauthorizedSchema, "schema %q is not allowed", ref.Schema))
		}
	}

	if err := ValidateTable(ref.Table); err != nil {
		errs = append(errs, err)
	} else if v.allowedTables != nil && !v.allowedTables[ref.Table] {
		errs = append(errs, newError(ErrUnauthorizedTable, "table %q is not allowed", ref.Table))
	}

	return errs
}

func tableRefFromModel(ref models.TableRef) TableReference {
	return TableReference{
		Schema: ref.Schema,
		Table:  ref.Table,
		Alias:  ref.Alias,
	}
}
