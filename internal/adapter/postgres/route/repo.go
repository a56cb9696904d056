// Package route implements the production route repository using PostgreSQL.
package route

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "rotas"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "descricao", "sequencia_centros", "centro_prod", "etapas",
		"ativa", "data_criacao", "data_modificacao",
	},
	Scope:      []string{"nome"},
	FlagColumn: "ativa",
	OrderBy:    []string{"nome ASC", "id ASC"},
}

type row struct {
	ID               int64     `db:"id"`
	Nome             string    `db:"nome"`
	Descricao        *string   `db:"descricao"`
	SequenciaCentros string    `db:"sequencia_centros"`
	CentroProd       *string   `db:"centro_prod"`
	Etapas           *string   `db:"etapas"`
	Ativa            int16     `db:"ativa"`
	DataCriacao      time.Time `db:"data_criacao"`
	DataModificacao  time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.Route, error) {
	steps, err := codec.DecodeArray[any]("etapas", r.Etapas)
	if err != nil {
		return domain.Route{}, err
	}
	return domain.Route{
		ID:               r.ID,
		Name:             r.Nome,
		Description:      r.Descricao,
		CenterSequence:   r.SequenciaCentros,
		ProductionCenter: r.CentroProd,
		Steps:            steps,
		Active:           codec.Bool(r.Ativa),
		CreatedAt:        r.DataCriacao,
		UpdatedAt:        r.DataModificacao,
	}, nil
}

// Repo provides route persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.Route]
}

// New creates a new route repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// FlagColumn returns the active flag column.
func (r *Repo) FlagColumn() string { return schema.FlagColumn }

// List returns a page of routes. Supported filters: centro_prod.
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Route], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao").
		Eq("centro_prod", q.Filters["centro_prod"])
	b = r.t.ActiveFilter(b, q.Active)
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns a route by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Route, error) {
	return r.t.Get(ctx, id)
}

// SearchByDescription returns routes whose description contains term.
// It fails with ErrNotFound when nothing matches.
func (r *Repo) SearchByDescription(ctx context.Context, term string) ([]domain.Route, error) {
	items, err := r.t.FindMany(ctx, r.t.Query().Contains("descricao", term))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s descricao %q: %w", Table, term, domain.ErrNotFound)
	}
	return items, nil
}

// Create inserts a new route. The route is active unless stated otherwise.
func (r *Repo) Create(ctx context.Context, in domain.CreateRouteInput) (domain.Route, error) {
	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("descricao", in.Description)
	v.Set("sequencia_centros", in.CenterSequence)
	v.Set("centro_prod", in.ProductionCenter)
	if err := v.SetJSON("etapas", in.Steps); err != nil {
		return domain.Route{}, err
	}
	v.SetFlag("ativa", in.Active == nil || *in.Active)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the route before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.RoutePatch) (domain.Route, domain.Route, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "descricao", p.Description)
	crud.Scalar(&v, "sequencia_centros", p.CenterSequence)
	crud.Scalar(&v, "centro_prod", p.ProductionCenter)
	if err := crud.JSON(&v, "etapas", p.Steps); err != nil {
		return domain.Route{}, domain.Route{}, err
	}
	crud.Flag(&v, "ativa", p.Active)
	return r.t.Update(ctx, id, v)
}

// SetActive sets the active flag and returns its previous value.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (bool, domain.Route, error) {
	return r.t.SetFlag(ctx, id, active)
}

// Delete removes a route and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.Route, error) {
	return r.t.Delete(ctx, id)
}
