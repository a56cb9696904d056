// Package project implements the project repository using PostgreSQL.
package project

import (
	"context"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "projetos"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "descricao", "responsavel", "roteiro", "observacoes",
		"status", "data_criacao", "data_modificacao",
	},
	Scope:   []string{"nome"},
	OrderBy: []string{"data_criacao DESC", "id DESC"},
}

type row struct {
	ID              int64     `db:"id"`
	Nome            string    `db:"nome"`
	Descricao       *string   `db:"descricao"`
	Responsavel     string    `db:"responsavel"`
	Roteiro         *string   `db:"roteiro"`
	Observacoes     *string   `db:"observacoes"`
	Status          string    `db:"status"`
	DataCriacao     time.Time `db:"data_criacao"`
	DataModificacao time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.Project, error) {
	plan, err := codec.DecodeObject("roteiro", r.Roteiro)
	if err != nil {
		return domain.Project{}, err
	}
	return domain.Project{
		ID:          r.ID,
		Name:        r.Nome,
		Description: r.Descricao,
		Owner:       r.Responsavel,
		Plan:        plan,
		Notes:       r.Observacoes,
		Status:      r.Status,
		CreatedAt:   r.DataCriacao,
		UpdatedAt:   r.DataModificacao,
	}, nil
}

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.Project]
}

// New creates a new project repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// List returns a page of projects, newest first. Supported filters: status.
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Project], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao", "responsavel").
		Eq("status", q.Filters["status"])
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns a project by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Project, error) {
	return r.t.Get(ctx, id)
}

// GetByName returns the project with the exact given name.
func (r *Repo) GetByName(ctx context.Context, name string) (domain.Project, error) {
	return r.t.FindOne(ctx, r.t.Query().Eq("nome", name))
}

// ListByStatus returns every project with the given status, newest first.
func (r *Repo) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return r.t.FindMany(ctx, r.t.Query().Eq("status", status))
}

// Create inserts a new project. The plan defaults to an empty object and the
// status to Planejamento.
func (r *Repo) Create(ctx context.Context, in domain.CreateProjectInput) (domain.Project, error) {
	plan := in.Plan
	if plan == nil {
		plan = map[string]any{}
	}
	status := domain.DefaultProjectStatus
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}

	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("descricao", in.Description)
	v.Set("responsavel", in.Owner)
	if err := v.SetJSON("roteiro", plan); err != nil {
		return domain.Project{}, err
	}
	v.Set("observacoes", in.Notes)
	v.Set("status", status)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the project before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.ProjectPatch) (domain.Project, domain.Project, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "descricao", p.Description)
	crud.Scalar(&v, "responsavel", p.Owner)
	if err := crud.JSON(&v, "roteiro", p.Plan); err != nil {
		return domain.Project{}, domain.Project{}, err
	}
	crud.Scalar(&v, "observacoes", p.Notes)
	crud.Scalar(&v, "status", p.Status)
	return r.t.Update(ctx, id, v)
}

// Delete removes a project and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.Project, error) {
	return r.t.Delete(ctx, id)
}
