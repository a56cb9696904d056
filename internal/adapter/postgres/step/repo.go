// Package step implements the production step repository using PostgreSQL.
package step

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/query"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "etapas"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "descricao", "centros", "centros_trabalho",
		"parametros_necessarios", "ativa", "data_criacao", "data_modificacao",
	},
	Scope:      []string{"nome"},
	FlagColumn: "ativa",
	OrderBy:    []string{"nome ASC", "id ASC"},
}

type row struct {
	ID                    int64     `db:"id"`
	Nome                  string    `db:"nome"`
	Descricao             *string   `db:"descricao"`
	Centros               string    `db:"centros"`
	CentrosTrabalho       *string   `db:"centros_trabalho"`
	ParametrosNecessarios *string   `db:"parametros_necessarios"`
	Ativa                 int16     `db:"ativa"`
	DataCriacao           time.Time `db:"data_criacao"`
	DataModificacao       time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.Step, error) {
	centers, err := codec.DecodeArray[string]("centros_trabalho", r.CentrosTrabalho)
	if err != nil {
		return domain.Step{}, err
	}
	params, err := codec.DecodeArray[string]("parametros_necessarios", r.ParametrosNecessarios)
	if err != nil {
		return domain.Step{}, err
	}
	return domain.Step{
		ID:             r.ID,
		Name:           r.Nome,
		Description:    r.Descricao,
		Centers:        r.Centros,
		WorkCenters:    centers,
		RequiredParams: params,
		Active:         codec.Bool(r.Ativa),
		CreatedAt:      r.DataCriacao,
		UpdatedAt:      r.DataModificacao,
	}, nil
}

// Repo provides step persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.Step]
}

// New creates a new step repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// FlagColumn returns the active flag column.
func (r *Repo) FlagColumn() string { return schema.FlagColumn }

// List returns a page of steps. Supported filters: centro (substring of centros).
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Step], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao").
		Contains("centros", q.Filters["centro"])
	b = r.t.ActiveFilter(b, q.Active)
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns a step by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Step, error) {
	return r.t.Get(ctx, id)
}

// ListByIDs returns the steps with the given ids. It fails with ErrNotFound
// when none of them exist.
func (r *Repo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Step, error) {
	if len(ids) == 0 {
		return []domain.Step{}, nil
	}
	items, err := r.t.FindMany(ctx, query.In(r.t.Query(), "id", ids))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s %v: %w", Table, ids, domain.ErrNotFound)
	}
	return items, nil
}

// Create inserts a new step. The step is active unless stated otherwise.
func (r *Repo) Create(ctx context.Context, in domain.CreateStepInput) (domain.Step, error) {
	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("descricao", in.Description)
	v.Set("centros", in.Centers)
	if err := v.SetJSON("centros_trabalho", in.WorkCenters); err != nil {
		return domain.Step{}, err
	}
	if err := v.SetJSON("parametros_necessarios", in.RequiredParams); err != nil {
		return domain.Step{}, err
	}
	v.SetFlag("ativa", in.Active == nil || *in.Active)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the step before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.StepPatch) (domain.Step, domain.Step, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "descricao", p.Description)
	crud.Scalar(&v, "centros", p.Centers)
	if err := crud.JSON(&v, "centros_trabalho", p.WorkCenters); err != nil {
		return domain.Step{}, domain.Step{}, err
	}
	if err := crud.JSON(&v, "parametros_necessarios", p.RequiredParams); err != nil {
		return domain.Step{}, domain.Step{}, err
	}
	crud.Flag(&v, "ativa", p.Active)
	return r.t.Update(ctx, id, v)
}

// SetActive sets the active flag and returns its previous value.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (bool, domain.Step, error) {
	return r.t.SetFlag(ctx, id, active)
}

// Delete removes a step and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.Step, error) {
	return r.t.Delete(ctx, id)
}
