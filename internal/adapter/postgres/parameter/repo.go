// Package parameter implements the process parameter repository using PostgreSQL.
package parameter

import (
	"context"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "parametros_processo"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "tipo", "unidade", "descricao", "opcoes", "valor_padrao",
		"obrigatorio", "imagem_base64", "data_criacao", "data_modificacao",
	},
	Scope:   []string{"nome"},
	OrderBy: []string{"nome ASC", "id ASC"},
}

type row struct {
	ID              int64     `db:"id"`
	Nome            string    `db:"nome"`
	Tipo            string    `db:"tipo"`
	Unidade         *string   `db:"unidade"`
	Descricao       *string   `db:"descricao"`
	Opcoes          *string   `db:"opcoes"`
	ValorPadrao     *string   `db:"valor_padrao"`
	Obrigatorio     int16     `db:"obrigatorio"`
	ImagemBase64    *string   `db:"imagem_base64"`
	DataCriacao     time.Time `db:"data_criacao"`
	DataModificacao time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.Parameter, error) {
	opts, err := codec.DecodeArray[any]("opcoes", r.Opcoes)
	if err != nil {
		return domain.Parameter{}, err
	}
	return domain.Parameter{
		ID:           r.ID,
		Name:         r.Nome,
		Type:         r.Tipo,
		Unit:         r.Unidade,
		Description:  r.Descricao,
		Options:      opts,
		DefaultValue: r.ValorPadrao,
		Required:     codec.Bool(r.Obrigatorio),
		ImageBase64:  r.ImagemBase64,
		CreatedAt:    r.DataCriacao,
		UpdatedAt:    r.DataModificacao,
	}, nil
}

// Repo provides process parameter persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.Parameter]
}

// New creates a new parameter repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// List returns a page of parameters. Supported filters: tipo.
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Parameter], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao").
		Eq("tipo", q.Filters["tipo"])
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns a parameter by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Parameter, error) {
	return r.t.Get(ctx, id)
}

// GetByName returns the parameter with the exact given name.
func (r *Repo) GetByName(ctx context.Context, name string) (domain.Parameter, error) {
	return r.t.FindOne(ctx, r.t.Query().Eq("nome", name))
}

// Create inserts a new parameter.
func (r *Repo) Create(ctx context.Context, in domain.CreateParameterInput) (domain.Parameter, error) {
	options := in.Options
	if options == nil {
		options = []any{}
	}

	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("tipo", in.Type)
	v.Set("unidade", in.Unit)
	v.Set("descricao", in.Description)
	if err := v.SetJSON("opcoes", options); err != nil {
		return domain.Parameter{}, err
	}
	v.Set("valor_padrao", in.DefaultValue)
	v.SetFlag("obrigatorio", in.Required)
	v.Set("imagem_base64", in.ImageBase64)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the parameter before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.ParameterPatch) (domain.Parameter, domain.Parameter, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "tipo", p.Type)
	crud.Scalar(&v, "unidade", p.Unit)
	crud.Scalar(&v, "descricao", p.Description)
	if err := crud.JSON(&v, "opcoes", p.Options); err != nil {
		return domain.Parameter{}, domain.Parameter{}, err
	}
	crud.Scalar(&v, "valor_padrao", p.DefaultValue)
	crud.Flag(&v, "obrigatorio", p.Required)
	crud.Scalar(&v, "imagem_base64", p.ImageBase64)
	return r.t.Update(ctx, id, v)
}

// Delete removes a parameter and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.Parameter, error) {
	return r.t.Delete(ctx, id)
}
