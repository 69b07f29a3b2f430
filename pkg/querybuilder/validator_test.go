package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ucode/ucode_go_report_builder_service/models"
)

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"orders", "order_items", "_private", "Col9", "a"}
	for _, name := range valid {
		assert.True(t, IsValidIdentifier(name), name)
	}

	invalid := []string{"", "9lives", "name-with-dash", "a.b", "users; DROP TABLE x", "\"quoted\"", "таблица"}
	for _, name := range invalid {
		assert.False(t, IsValidIdentifier(name), name)
	}
}

func TestIsValidIdentifierLength(t *testing.T) {
	long := make([]byte, maxIdentifierLength)
	for i := range long {
		long[i] = 'a'
	}

	assert.True(t, IsValidIdentifier(string(long)))
	assert.False(t, IsValidIdentifier(string(long)+"a"))
}

func TestSanitizeIdentifier(t *testing.T) {
	assert.Equal(t, "orderitems", SanitizeIdentifier("order-items"))
	assert.Equal(t, "_9lives", SanitizeIdentifier("9lives"))
	assert.Equal(t, "_", SanitizeIdentifier("!!!"))
	assert.Equal(t, "usersDROPTABLEx", SanitizeIdentifier("users; DROP TABLE x"))

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'b'
	}
	assert.Len(t, SanitizeIdentifier(string(long)), maxIdentifierLength)
}

func TestValidateColumn(t *testing.T) {
	assert.NoError(t, ValidateColumn("created_at"))
	assert.NoError(t, ValidateColumn("o.created_at"))

	err := ValidateColumn("a.b.c")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidColumn, KindOf(err))

	err = ValidateColumn("amount; DROP TABLE orders")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidColumn, KindOf(err))
}

func TestIsSafeCondition(t *testing.T) {
	assert.True(t, IsSafeCondition("o.customer_id = c.guid"))
	assert.True(t, IsSafeCondition("a.id = b.a_id AND b.deleted_at IS NULL"))

	unsafe := []string{
		"",
		"   ",
		"1=1; DROP TABLE users",
		"id = 1 -- comment",
		"id = 1 /* sneak */",
		"id IN (SELECT id FROM x) UNION SELECT password FROM accounts",
	}
	for _, condition := range unsafe {
		assert.False(t, IsSafeCondition(condition), condition)
	}
}

func TestValidateQueryCollectsAllErrors(t *testing.T) {
	v := NewQueryValidator(ValidatorConfig{MaxJoins: 1})

	result := v.ValidateQuery(models.ReportQuery{
		Table: models.TableRef{},
		Joins: []models.JoinSpec{
			{Type: "SIDEWAYS", Table: models.TableRef{Table: "customers"}, Condition: "1=1; DROP TABLE x"},
			{Type: "LEFT", Table: models.TableRef{Table: "payments"}, Condition: "p.order_id = o.guid"},
		},
		Aggregations: []models.Aggregation{{Column: "amount", Type: "MEDIAN"}},
		GroupBy:      &models.GroupBySpec{Rollup: true, Cube: true, TimeBucket: &models.TimeBucket{Column: "created_at", Interval: "fortnight"}},
		WidgetType:   "GAUGE",
	})

	assert.False(t, result.Valid)
	// missing table, join limit, join type, join condition, aggregation,
	// rollup+cube, interval and widget type must all be reported at once
	assert.Len(t, result.Errors, 8)

	err := result.Err()
	assert.Error(t, err)
	assert.Equal(t, ErrValidationFailed, KindOf(err))
}

func TestValidateQueryAllowLists(t *testing.T) {
	v := NewQueryValidator(ValidatorConfig{
		AllowedSchemas: []string{"analytics"},
		AllowedTables:  []string{"orders"},
		MaxJoins:       5,
	})

	ok := v.ValidateQuery(models.ReportQuery{
		Table: models.TableRef{Schema: "analytics", Table: "orders"},
	})
	assert.True(t, ok.Valid)
	assert.NoError(t, ok.Err())

	denied := v.ValidateQuery(models.ReportQuery{
		Table: models.TableRef{Schema: "pg_catalog", Table: "pg_tables"},
	})
	assert.False(t, denied.Valid)
	assert.Len(t, denied.Errors, 2)
	assert.Equal(t, ErrUnauthorizedSchema, KindOf(denied.Errors[0]))
	assert.Equal(t, ErrUnauthorizedTable, KindOf(denied.Errors[1]))
}

func TestValidateQueryPrimaryTable(t *testing.T) {
	v := NewQueryValidator(ValidatorConfig{MaxJoins: 5})

	result := v.ValidateQuery(models.ReportQuery{
		Table: models.TableRef{Schema: "bad schema", Table: "orders; DROP TABLE x", Alias: "o"},
	})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, ErrInvalidSchema, KindOf(result.Errors[0]))
	assert.Equal(t, ErrInvalidTable, KindOf(result.Errors[1]))
}

func TestValidateQueryNoAllowListsMeansAnyIdentifier(t *testing.T) {
	v := NewQueryValidator(ValidatorConfig{MaxJoins: 5})

	result := v.ValidateQuery(models.ReportQuery{
		Table: models.TableRef{Schema: "custom", Table: "anything"},
	})
	assert.True(t, result.Valid)
}
