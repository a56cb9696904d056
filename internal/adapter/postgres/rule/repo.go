// Package rule implements the post-calculation rule repository using PostgreSQL.
package rule

import (
	"context"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "regras_pos_calculo"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "descricao", "tipo", "condicoes", "acoes", "ordem",
		"prioridade", "observacoes", "ativo", "data_criacao", "data_modificacao",
	},
	Scope:      []string{"nome"},
	FlagColumn: "ativo",
	OrderBy:    []string{"ordem ASC NULLS LAST", "nome ASC", "id ASC"},
}

type row struct {
	ID              int64     `db:"id"`
	Nome            string    `db:"nome"`
	Descricao       *string   `db:"descricao"`
	Tipo            string    `db:"tipo"`
	Condicoes       *string   `db:"condicoes"`
	Acoes           *string   `db:"acoes"`
	Ordem           *int      `db:"ordem"`
	Prioridade      int       `db:"prioridade"`
	Observacoes     *string   `db:"observacoes"`
	Ativo           int16     `db:"ativo"`
	DataCriacao     time.Time `db:"data_criacao"`
	DataModificacao time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.Rule, error) {
	conditions, err := codec.DecodeObject("condicoes", r.Condicoes)
	if err != nil {
		return domain.Rule{}, err
	}
	actions, err := codec.DecodeObject("acoes", r.Acoes)
	if err != nil {
		return domain.Rule{}, err
	}
	return domain.Rule{
		ID:          r.ID,
		Name:        r.Nome,
		Description: r.Descricao,
		Type:        r.Tipo,
		Conditions:  conditions,
		Actions:     actions,
		Order:       r.Ordem,
		Priority:    r.Prioridade,
		Notes:       r.Observacoes,
		Active:      codec.Bool(r.Ativo),
		CreatedAt:   r.DataCriacao,
		UpdatedAt:   r.DataModificacao,
	}, nil
}

// Repo provides post-calculation rule persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.Rule]
}

// New creates a new rule repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// FlagColumn returns the active flag column.
func (r *Repo) FlagColumn() string { return schema.FlagColumn }

// List returns a page of rules. Supported filters: tipo.
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Rule], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao").
		Eq("tipo", q.Filters["tipo"])
	b = r.t.ActiveFilter(b, q.Active)
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns a rule by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Rule, error) {
	return r.t.Get(ctx, id)
}

// ListByType returns every rule of the given type in evaluation order.
func (r *Repo) ListByType(ctx context.Context, ruleType string) ([]domain.Rule, error) {
	return r.t.FindMany(ctx, r.t.Query().Eq("tipo", ruleType))
}

// ListActive returns every active rule in evaluation order.
func (r *Repo) ListActive(ctx context.Context) ([]domain.Rule, error) {
	active := true
	return r.t.FindMany(ctx, r.t.Query().Flag(schema.FlagColumn, &active))
}

// Create inserts a new rule. Priority defaults to 1; the rule is active
// unless stated otherwise.
func (r *Repo) Create(ctx context.Context, in domain.CreateRuleInput) (domain.Rule, error) {
	priority := domain.DefaultRulePriority
	if in.Priority != nil {
		priority = *in.Priority
	}

	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("descricao", in.Description)
	v.Set("tipo", in.Type)
	if err := v.SetJSON("condicoes", in.Conditions); err != nil {
		return domain.Rule{}, err
	}
	if err := v.SetJSON("acoes", in.Actions); err != nil {
		return domain.Rule{}, err
	}
	v.Set("ordem", in.Order)
	v.Set("prioridade", priority)
	v.Set("observacoes", in.Notes)
	v.SetFlag("ativo", in.Active == nil || *in.Active)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the rule before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.RulePatch) (domain.Rule, domain.Rule, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "descricao", p.Description)
	crud.Scalar(&v, "tipo", p.Type)
	if err := crud.JSON(&v, "condicoes", p.Conditions); err != nil {
		return domain.Rule{}, domain.Rule{}, err
	}
	if err := crud.JSON(&v, "acoes", p.Actions); err != nil {
		return domain.Rule{}, domain.Rule{}, err
	}
	crud.Scalar(&v, "ordem", p.Order)
	crud.Scalar(&v, "prioridade", p.Priority)
	crud.Scalar(&v, "observacoes", p.Notes)
	crud.Flag(&v, "ativo", p.Active)
	return r.t.Update(ctx, id, v)
}

// SetActive sets the active flag and returns its previous value.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (bool, domain.Rule, error) {
	return r.t.SetFlag(ctx, id, active)
}

// Delete removes a rule and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.Rule, error) {
	return r.t.Delete(ctx, id)
}
