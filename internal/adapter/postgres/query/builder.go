// Package query assembles the filtered listing statements shared by every
// catalog repository. The data statement and the count statement are derived
// from the same predicate list, so a page and its total always agree.
package query

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
)

// psql is the statement builder with PostgreSQL positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Psql returns the shared PostgreSQL statement builder.
func Psql() sq.StatementBuilderType { return psql }

// Builder accumulates AND-ed predicates over one table. Column names must come
// from repository declarations, never from request input.
type Builder struct {
	table   string
	columns []string
	preds   []sq.Sqlizer
	orderBy []string
}

// New starts a builder selecting columns from table.
func New(table string, columns ...string) *Builder {
	return &Builder{table: table, columns: columns}
}

// Search adds one predicate matching term as a case-insensitive substring of
// any of cols. A blank term or an empty column list adds nothing.
func (b *Builder) Search(term string, cols ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return b
	}
	pattern := "%" + EscapeLike(term) + "%"
	or := make(sq.Or, 0, len(cols))
	for _, c := range cols {
		or = append(or, sq.ILike{c: pattern})
	}
	b.preds = append(b.preds, or)
	return b
}

// Eq adds an equality predicate. Empty strings and nil values add nothing.
func (b *Builder) Eq(col string, v any) *Builder {
	switch x := v.(type) {
	case nil:
		return b
	case string:
		if x == "" {
			return b
		}
	}
	b.preds = append(b.preds, sq.Eq{col: v})
	return b
}

// In adds a membership predicate. An empty list matches nothing.
func In[T any](b *Builder, col string, values []T) *Builder {
	b.preds = append(b.preds, sq.Eq{col: values})
	return b
}

// Contains adds a case-insensitive substring predicate on col.
func (b *Builder) Contains(col, v string) *Builder {
	if v == "" {
		return b
	}
	b.preds = append(b.preds, sq.ILike{col: "%" + EscapeLike(v) + "%"})
	return b
}

// Flag restricts a 0/1 flag column. A nil value adds nothing.
func (b *Builder) Flag(col string, v *bool) *Builder {
	if v == nil {
		return b
	}
	b.preds = append(b.preds, sq.Eq{col: codec.Flag(*v)})
	return b
}

// From keeps rows whose col is at or after t.
func (b *Builder) From(col string, t *time.Time) *Builder {
	if t == nil {
		return b
	}
	b.preds = append(b.preds, sq.GtOrEq{col: *t})
	return b
}

// To keeps rows whose col is at or before t.
func (b *Builder) To(col string, t *time.Time) *Builder {
	if t == nil {
		return b
	}
	b.preds = append(b.preds, sq.LtOrEq{col: *t})
	return b
}

// OrderBy sets the ordering of the data statement.
func (b *Builder) OrderBy(exprs ...string) *Builder {
	b.orderBy = exprs
	return b
}

// Statement is a rendered SQL string with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Statements is the pair produced by Build.
type Statements struct {
	Data  Statement
	Count Statement
}

// Select renders the filtered, ordered statement without pagination.
func (b *Builder) Select() (Statement, error) {
	return render(b.where(psql.Select(b.columns...).From(b.table)).OrderBy(b.orderBy...))
}

// Build renders the paginated data statement and the matching count statement.
func (b *Builder) Build(p Page) (Statements, error) {
	data, err := render(b.where(psql.Select(b.columns...).From(b.table)).
		OrderBy(b.orderBy...).
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset())))
	if err != nil {
		return Statements{}, err
	}

	count, err := render(b.where(psql.Select("COUNT(*)").From(b.table)))
	if err != nil {
		return Statements{}, err
	}

	return Statements{Data: data, Count: count}, nil
}

// where applies the accumulated predicates. Both statements go through here.
func (b *Builder) where(sb sq.SelectBuilder) sq.SelectBuilder {
	for _, p := range b.preds {
		sb = sb.Where(p)
	}
	return sb
}

func render(sb sq.SelectBuilder) (Statement, error) {
	sql, args, err := sb.ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("build query: %w", err)
	}
	return Statement{SQL: sql, Args: args}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
