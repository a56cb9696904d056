// Package coefficient implements the coefficient table repository using PostgreSQL.
package coefficient

import (
	"context"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "tabelas_coeficientes"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "descricao", "parametros_condicao", "dados_coeficientes",
		"tabela_sap", "ativa", "data_criacao", "data_modificacao",
	},
	Scope:      []string{"nome"},
	FlagColumn: "ativa",
	OrderBy:    []string{"nome ASC", "id ASC"},
}

type row struct {
	ID                 int64     `db:"id"`
	Nome               string    `db:"nome"`
	Descricao          *string   `db:"descricao"`
	ParametrosCondicao *string   `db:"parametros_condicao"`
	DadosCoeficientes  *string   `db:"dados_coeficientes"`
	TabelaSAP          *string   `db:"tabela_sap"`
	Ativa              int16     `db:"ativa"`
	DataCriacao        time.Time `db:"data_criacao"`
	DataModificacao    time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.CoefficientTable, error) {
	params, err := codec.DecodeArray[any]("parametros_condicao", r.ParametrosCondicao)
	if err != nil {
		return domain.CoefficientTable{}, err
	}
	data, err := codec.DecodeArray[any]("dados_coeficientes", r.DadosCoeficientes)
	if err != nil {
		return domain.CoefficientTable{}, err
	}
	return domain.CoefficientTable{
		ID:              r.ID,
		Name:            r.Nome,
		Description:     r.Descricao,
		ConditionParams: params,
		Coefficients:    data,
		SAPTable:        r.TabelaSAP,
		Active:          codec.Bool(r.Ativa),
		CreatedAt:       r.DataCriacao,
		UpdatedAt:       r.DataModificacao,
	}, nil
}

// Repo provides coefficient table persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.CoefficientTable]
}

// New creates a new coefficient table repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// FlagColumn returns the active flag column.
func (r *Repo) FlagColumn() string { return schema.FlagColumn }

// List returns a page of coefficient tables. Supported filters: tabela_sap.
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.CoefficientTable], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao").
		Eq("tabela_sap", q.Filters["tabela_sap"])
	b = r.t.ActiveFilter(b, q.Active)
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns a coefficient table by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.CoefficientTable, error) {
	return r.t.Get(ctx, id)
}

// GetByName returns the coefficient table with the exact given name.
func (r *Repo) GetByName(ctx context.Context, name string) (domain.CoefficientTable, error) {
	return r.t.FindOne(ctx, r.t.Query().Eq("nome", name))
}

// Create inserts a new coefficient table. It is active unless stated otherwise.
func (r *Repo) Create(ctx context.Context, in domain.CreateCoefficientTableInput) (domain.CoefficientTable, error) {
	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("descricao", in.Description)
	if err := v.SetJSON("parametros_condicao", in.ConditionParams); err != nil {
		return domain.CoefficientTable{}, err
	}
	if err := v.SetJSON("dados_coeficientes", in.Coefficients); err != nil {
		return domain.CoefficientTable{}, err
	}
	v.Set("tabela_sap", in.SAPTable)
	v.SetFlag("ativa", in.Active == nil || *in.Active)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the table before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.CoefficientTablePatch) (domain.CoefficientTable, domain.CoefficientTable, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "descricao", p.Description)
	if err := crud.JSON(&v, "parametros_condicao", p.ConditionParams); err != nil {
		return domain.CoefficientTable{}, domain.CoefficientTable{}, err
	}
	if err := crud.JSON(&v, "dados_coeficientes", p.Coefficients); err != nil {
		return domain.CoefficientTable{}, domain.CoefficientTable{}, err
	}
	crud.Scalar(&v, "tabela_sap", p.SAPTable)
	crud.Flag(&v, "ativa", p.Active)
	return r.t.Update(ctx, id, v)
}

// SetActive sets the active flag and returns its previous value.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (bool, domain.CoefficientTable, error) {
	return r.t.SetFlag(ctx, id, active)
}

// Delete removes a coefficient table and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.CoefficientTable, error) {
	return r.t.Delete(ctx, id)
}
