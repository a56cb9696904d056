// Package crud is the generic data-access engine behind every catalog
// repository: filtered pagination, lookups, guarded inserts and partial
// updates, flag toggles and deletes.
package crud

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/query"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Column names shared by every catalog table.
const (
	ColID        = "id"
	ColCreatedAt = "data_criacao"
	ColUpdatedAt = "data_modificacao"
)

// Schema declares a catalog table.
type Schema struct {
	Table string
	// Columns is the select list; it must match the db tags of the row type.
	Columns []string
	// Scope is the uniqueness scope checked before inserts and updates.
	Scope []string
	// FlagColumn is the active flag, empty when the table has none.
	FlagColumn string
	OrderBy    []string
}

// Option configures a Table.
type Option func(*options)

type options struct {
	paging query.Paging
}

// WithPaging overrides the default page size bounds.
func WithPaging(p query.Paging) Option {
	return func(o *options) { o.paging = p }
}

// Table runs the generic operations for row type R decoded into entity E.
type Table[R any, E domain.Record] struct {
	db     postgres.DB
	tx     *postgres.TxManager
	schema Schema
	decode func(R) (E, error)
	paging query.Paging
}

// NewTable creates a Table. decode converts a scanned row into the entity.
func NewTable[R any, E domain.Record](db postgres.DB, schema Schema, decode func(R) (E, error), opts ...Option) *Table[R, E] {
	o := options{paging: query.DefaultPaging}
	for _, opt := range opts {
		opt(&o)
	}
	return &Table[R, E]{
		db:     db,
		tx:     postgres.NewTxManager(db),
		schema: schema,
		decode: decode,
		paging: o.paging,
	}
}

// Schema returns the table declaration.
func (t *Table[R, E]) Schema() Schema { return t.schema }

// Query starts a builder over the table's columns and default ordering.
func (t *Table[R, E]) Query() *query.Builder {
	return query.New(t.schema.Table, t.schema.Columns...).OrderBy(t.schema.OrderBy...)
}

// ActiveFilter restricts b to the active flag when the table has one.
func (t *Table[R, E]) ActiveFilter(b *query.Builder, active *bool) *query.Builder {
	if t.schema.FlagColumn == "" {
		return b
	}
	return b.Flag(t.schema.FlagColumn, active)
}

// List returns one page of rows matching b together with the total match count.
func (t *Table[R, E]) List(ctx context.Context, b *query.Builder, page, limit int) (domain.Page[E], error) {
	p := t.paging.Normalize(page, limit)

	st, err := b.Build(p)
	if err != nil {
		return domain.Page[E]{}, err
	}

	q := postgres.QuerierFromCtx(ctx, t.db)

	var (
		rows  []R
		total int
	)
	fetch := func(ctx context.Context) error {
		if err := pgxscan.Select(ctx, q, &rows, st.Data.SQL, st.Data.Args...); err != nil {
			return postgres.MapError(err, t.schema.Table, 0)
		}
		return nil
	}
	count := func(ctx context.Context) error {
		if err := q.QueryRow(ctx, st.Count.SQL, st.Count.Args...).Scan(&total); err != nil {
			return postgres.MapError(err, t.schema.Table, 0)
		}
		return nil
	}

	if err := postgres.RunAll(ctx, fetch, count); err != nil {
		return domain.Page[E]{}, err
	}

	items, err := t.decodeAll(rows)
	if err != nil {
		return domain.Page[E]{}, err
	}
	return domain.NewPage(items, p.Page, p.Limit, total), nil
}

// FindMany returns every row matching b in the builder's order.
func (t *Table[R, E]) FindMany(ctx context.Context, b *query.Builder) ([]E, error) {
	st, err := b.Select()
	if err != nil {
		return nil, err
	}

	var rows []R
	q := postgres.QuerierFromCtx(ctx, t.db)
	if err := pgxscan.Select(ctx, q, &rows, st.SQL, st.Args...); err != nil {
		return nil, postgres.MapError(err, t.schema.Table, 0)
	}
	return t.decodeAll(rows)
}

// FindOne returns the first row matching b, or ErrNotFound.
func (t *Table[R, E]) FindOne(ctx context.Context, b *query.Builder) (E, error) {
	var zero E
	items, err := t.FindMany(ctx, b)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fmt.Errorf("%s: %w", t.schema.Table, domain.ErrNotFound)
	}
	return items[0], nil
}

// Get returns the row with the given id, or ErrNotFound.
func (t *Table[R, E]) Get(ctx context.Context, id int64) (E, error) {
	var zero E

	sql, args, err := query.Psql().
		Select(t.schema.Columns...).
		From(t.schema.Table).
		Where(sq.Eq{ColID: id}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("build query: %w", err)
	}

	var row R
	q := postgres.QuerierFromCtx(ctx, t.db)
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return zero, postgres.MapError(err, t.schema.Table, id)
	}
	return t.decode(row)
}

// Insert checks the uniqueness scope, inserts vals and returns the stored row.
func (t *Table[R, E]) Insert(ctx context.Context, vals Values) (E, error) {
	var created E

	err := t.tx.RunInTx(ctx, func(ctx context.Context) error {
		key := make(map[string]any, len(t.schema.Scope))
		for _, col := range t.schema.Scope {
			v, _ := vals.Get(col)
			key[col] = v
		}
		if err := t.checkUnique(ctx, key, 0); err != nil {
			return err
		}

		sql, args, err := query.Psql().
			Insert(t.schema.Table).
			Columns(append(vals.Columns(), ColUpdatedAt)...).
			Values(append(slices.Clone(vals.vals), sq.Expr("now()"))...).
			Suffix("RETURNING " + ColID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		var id int64
		q := postgres.QuerierFromCtx(ctx, t.db)
		if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			return postgres.MapError(err, t.schema.Table, 0)
		}

		created, err = t.Get(ctx, id)
		return err
	})
	return created, err
}

// Update merges vals over the stored row: columns absent from vals keep their
// stored value. It returns the row before and after the change. An empty vals
// only refreshes data_modificacao.
func (t *Table[R, E]) Update(ctx context.Context, id int64, vals Values) (before, after E, err error) {
	err = t.tx.RunInTx(ctx, func(ctx context.Context) error {
		stored, err := t.lockScope(ctx, id)
		if err != nil {
			return err
		}

		before, err = t.Get(ctx, id)
		if err != nil {
			return err
		}

		key := maps.Clone(stored)
		for _, col := range t.schema.Scope {
			if v, ok := vals.Get(col); ok {
				key[col] = v
			}
		}
		if err := t.checkUnique(ctx, key, id); err != nil {
			return err
		}

		ub := query.Psql().Update(t.schema.Table)
		for i, col := range vals.cols {
			ub = ub.Set(col, vals.vals[i])
		}
		sql, args, err := ub.
			Set(ColUpdatedAt, sq.Expr("now()")).
			Where(sq.Eq{ColID: id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		q := postgres.QuerierFromCtx(ctx, t.db)
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, t.schema.Table, id)
		}

		after, err = t.Get(ctx, id)
		return err
	})
	return before, after, err
}

// SetFlag sets the active flag and returns its previous value with the
// updated row. Setting a flag to its current value still refreshes
// data_modificacao.
func (t *Table[R, E]) SetFlag(ctx context.Context, id int64, on bool) (was bool, after E, err error) {
	if t.schema.FlagColumn == "" {
		return false, after, fmt.Errorf("%s has no active flag", t.schema.Table)
	}

	err = t.tx.RunInTx(ctx, func(ctx context.Context) error {
		sql, args, err := query.Psql().
			Select(t.schema.FlagColumn).
			From(t.schema.Table).
			Where(sq.Eq{ColID: id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		var current int16
		q := postgres.QuerierFromCtx(ctx, t.db)
		if err := q.QueryRow(ctx, sql, args...).Scan(&current); err != nil {
			return postgres.MapError(err, t.schema.Table, id)
		}
		was = codec.Bool(current)

		sql, args, err = query.Psql().
			Update(t.schema.Table).
			Set(t.schema.FlagColumn, codec.Flag(on)).
			Set(ColUpdatedAt, sq.Expr("now()")).
			Where(sq.Eq{ColID: id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, t.schema.Table, id)
		}

		after, err = t.Get(ctx, id)
		return err
	})
	return was, after, err
}

// Delete removes the row permanently and returns it as it was.
func (t *Table[R, E]) Delete(ctx context.Context, id int64) (E, error) {
	var removed E

	err := t.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = t.Get(ctx, id)
		if err != nil {
			return err
		}

		sql, args, err := query.Psql().
			Delete(t.schema.Table).
			Where(sq.Eq{ColID: id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}

		q := postgres.QuerierFromCtx(ctx, t.db)
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return postgres.MapError(err, t.schema.Table, id)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s %d: %w", t.schema.Table, id, domain.ErrNotFound)
		}
		return nil
	})
	return removed, err
}

// lockScope locks the row and returns its stored scope values.
func (t *Table[R, E]) lockScope(ctx context.Context, id int64) (map[string]any, error) {
	cols := t.schema.Scope
	if len(cols) == 0 {
		cols = []string{ColID}
	}

	sql, args, err := query.Psql().
		Select(cols...).
		From(t.schema.Table).
		Where(sq.Eq{ColID: id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	dest := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	q := postgres.QuerierFromCtx(ctx, t.db)
	if err := q.QueryRow(ctx, sql, args...).Scan(ptrs...); err != nil {
		return nil, postgres.MapError(err, t.schema.Table, id)
	}

	stored := make(map[string]any, len(t.schema.Scope))
	for i, col := range t.schema.Scope {
		stored[col] = dest[i]
	}
	return stored, nil
}

// checkUnique fails with a ConflictError when another row already holds key.
// excludeID skips the row being updated; zero checks all rows.
func (t *Table[R, E]) checkUnique(ctx context.Context, key map[string]any, excludeID int64) error {
	if len(t.schema.Scope) == 0 {
		return nil
	}

	sb := query.Psql().
		Select(ColID).
		From(t.schema.Table).
		Where(sq.Eq(key))
	if excludeID != 0 {
		sb = sb.Where(sq.NotEq{ColID: excludeID})
	}
	sql, args, err := sb.Limit(1).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var existing int64
	q := postgres.QuerierFromCtx(ctx, t.db)
	err = q.QueryRow(ctx, sql, args...).Scan(&existing)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return postgres.MapError(err, t.schema.Table, excludeID)
	default:
		return &domain.ConflictError{Table: t.schema.Table, Key: key}
	}
}

func (t *Table[R, E]) decodeAll(rows []R) ([]E, error) {
	items := make([]E, 0, len(rows))
	for _, r := range rows {
		e, err := t.decode(r)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}
