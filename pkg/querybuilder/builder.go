package querybuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

const DefaultSchema = "public"

// QueryBuilder is an immutable fluent builder. Every mutator returns a new
// value and never touches the receiver, so concurrent callers may branch
// from a shared base without locks. Build is the only terminal operation
// and may be called any number of times.
type QueryBuilder struct {
	table         TableReference
	defaultSchema string
	translator    *Translator

	selects SelectClause
	joins   []JoinClause
	where   *WhereClause
	groupBy *GroupByClause
	having  *WhereClause
	orderBy []OrderByExpression
	limit   *LimitClause

	err error
}

type Option func(*QueryBuilder)

// WithDefaultSchema overrides the schema applied to unqualified table
// references.
func WithDefaultSchema(schema string) Option {
	return func(b *QueryBuilder) {
		b.defaultSchema = schema
	}
}

// WithTranslator supplies the filter translator used by WhereFilters and
// HavingFilters.
func WithTranslator(translator *Translator) Option {
	return func(b *QueryBuilder) {
		b.translator = translator
	}
}

// New starts a builder over the given table.
func New(table TableReference, opts ...Option) QueryBuilder {
	b := QueryBuilder{
		table:         table,
		defaultSchema: DefaultSchema,
	}

	for _, opt := range opts {
		opt(&b)
	}

	return b
}

// Select replaces the select list.
func (b QueryBuilder) Select(clause SelectClause) QueryBuilder {
	b.selects = append(SelectClause{}, clause...)
	return b
}

// SelectColumns is Select over bare column names.
func (b QueryBuilder) SelectColumns(columns ...string) QueryBuilder {
	clause, err := NewSelect(columns...)
	if err != nil {
		return b.withErr(err)
	}

	return b.Select(clause)
}

// AddSelect appends expressions to the select list.
func (b QueryBuilder) AddSelect(exprs ...SelectExpression) QueryBuilder {
	b.selects = append(append(SelectClause{}, b.selects...), exprs...)
	return b
}

// Where replaces the WHERE clause.
func (b QueryBuilder) Where(clause *WhereClause) QueryBuilder {
	b.where = clause
	return b
}

// WhereFilters translates the filter tuples and installs them as the WHERE
// clause. An empty filter list leaves the query without a WHERE clause.
func (b QueryBuilder) WhereFilters(filters []FilterCondition, combineWith CombineOperator) QueryBuilder {
	if b.translator == nil {
		return b.withErr(newError(ErrInvalidConfiguration, "builder has no filter translator"))
	}

	clause, err := b.translator.FromFilters(filters, combineWith)
	if err != nil {
		return b.withErr(err)
	}

	b.where = clause

	return b
}

// GroupBy replaces the GROUP BY clause.
func (b QueryBuilder) GroupBy(clause *GroupByClause) QueryBuilder {
	if clause != nil && clause.Rollup && clause.Cube {
		return b.withErr(newError(ErrInvalidConfiguration, "ROLLUP and CUBE are mutually exclusive"))
	}

	b.groupBy = clause

	return b
}

// Having replaces the HAVING clause.
func (b QueryBuilder) Having(clause *WhereClause) QueryBuilder {
	b.having = clause
	return b
}

// HavingFilters translates filter tuples into the HAVING clause.
func (b QueryBuilder) HavingFilters(filters []FilterCondition, combineWith CombineOperator) QueryBuilder {
	if b.translator == nil {
		return b.withErr(newError(ErrInvalidConfiguration, "builder has no filter translator"))
	}

	clause, err := b.translator.FromFilters(filters, combineWith)
	if err != nil {
		return b.withErr(err)
	}

	b.having = clause

	return b
}

// OrderBy replaces the ordering list.
func (b QueryBuilder) OrderBy(exprs ...OrderByExpression) QueryBuilder {
	b.orderBy = append([]OrderByExpression{}, exprs...)
	return b
}

// Limit installs LIMIT/OFFSET. A zero offset is omitted from the emitted
// statement entirely.
func (b QueryBuilder) Limit(limit, offset uint64) QueryBuilder {
	b.limit = &LimitClause{Limit: limit, Offset: offset}
	return b
}

// Join appends one join.
func (b QueryBuilder) Join(clause JoinClause) QueryBuilder {
	b.joins = append(append([]JoinClause{}, b.joins...), clause)
	return b
}

// Joins appends several joins.
func (b QueryBuilder) Joins(clauses []JoinClause) QueryBuilder {
	b.joins = append(append([]JoinClause{}, b.joins...), clauses...)
	return b
}

func (b QueryBuilder) withErr(err error) QueryBuilder {
	if b.err == nil {
		b.err = err
	}

	return b
}

// Build assembles the statement in fixed clause order (SELECT, FROM,
// JOINs, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT) regardless of the order
// mutators were called in, and classifies the result. Absent clauses are
// omitted entirely.
func (b QueryBuilder) Build() (QueryResult, error) {
	if b.err != nil {
		return QueryResult{}, b.err
	}

	if b.table.Table == "" {
		return QueryResult{}, newError(ErrMissingRequiredField, "table is required")
	}

	from, err := b.qualifyTable(b.table)
	if err != nil {
		return QueryResult{}, err
	}

	selects := b.selects.render()
	if len(selects) == 0 {
		selects = []string{"*"}
	}

	query := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(selects...).
		From(from)

	for _, join := range b.joins {
		target, err := b.qualifyTable(join.Table)
		if err != nil {
			return QueryResult{}, err
		}
		if err := ValidateJoinCondition(join.Condition); err != nil {
			return QueryResult{}, err
		}

		joined := target + " ON " + join.Condition
		switch join.Type {
		case JoinLeft:
			query = query.LeftJoin(joined)
		case JoinRight:
			query = query.RightJoin(joined)
		case JoinFull:
			query = query.JoinClause("FULL JOIN " + joined)
		default:
			query = query.InnerJoin(joined)
		}
	}

	if b.where != nil && len(b.where.Conditions) > 0 {
		query = query.Where(b.where.sqlizer())
	}

	var groupExprs []string
	if b.groupBy != nil {
		groupExprs = b.groupBy.render()
		if len(groupExprs) > 0 {
			query = query.GroupBy(groupExprs...)
		}
	}

	if b.having != nil && len(b.having.Conditions) > 0 {
		query = query.Having(b.having.sqlizer())
	}

	if len(b.orderBy) > 0 {
		rendered := make([]string, 0, len(b.orderBy))
		for _, expr := range b.orderBy {
			rendered = append(rendered, expr.render())
		}
		query = query.OrderBy(rendered...)
	}

	if b.limit != nil && b.limit.Limit > 0 {
		query = query.Limit(b.limit.Limit)
		if b.limit.Offset > 0 {
			query = query.Offset(b.limit.Offset)
		}
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return QueryResult{}, wrapError(ErrInvalidConfiguration, err, "assemble statement")
	}

	return QueryResult{
		Statement: ParameterizedStatement{SQL: sql, Args: args},
		Metadata:  classifyQuery(selects, groupExprs),
	}, nil
}

// qualifyTable applies the default schema to unqualified references; an
// ambiguous unqualified table never reaches the statement.
func (b QueryBuilder) qualifyTable(table TableReference) (string, error) {
	schema := table.Schema
	if schema == "" {
		schema = b.defaultSchema
		if schema == "" {
			schema = DefaultSchema
		}
	}

	if err := ValidateSchema(schema); err != nil {
		return "", err
	}
	if err := ValidateTable(table.Table); err != nil {
		return "", err
	}

	qualified := fmt.Sprintf("%q.%q", schema, table.Table)
	if table.Alias != "" {
		if !IsValidIdentifier(table.Alias) {
			return "", newError(ErrInvalidTable, "invalid table alias %q", table.Alias)
		}
		qualified += " AS " + table.Alias
	}

	return qualified, nil
}
