package domain

import "time"

// DefaultRulePriority is assigned when a rule is created without a priority.
const DefaultRulePriority = 1

// Rule is a post-calculation rule. Conditions and actions are stored verbatim
// and never evaluated here.
type Rule struct {
	ID          int64          `json:"id"`
	Name        string         `json:"nome"`
	Description *string        `json:"descricao"`
	Type        string         `json:"tipo"`
	Conditions  map[string]any `json:"condicoes"`
	Actions     map[string]any `json:"acoes"`
	Order       *int           `json:"ordem"`
	Priority    int            `json:"prioridade"`
	Notes       *string        `json:"observacoes"`
	Active      bool           `json:"ativo"`
	CreatedAt   time.Time      `json:"data_criacao"`
	UpdatedAt   time.Time      `json:"data_modificacao"`
}

func (r Rule) RecordID() int64 { return r.ID }

// CreateRuleInput holds the fields accepted when creating a rule.
type CreateRuleInput struct {
	Name        string         `json:"nome"`
	Description *string        `json:"descricao"`
	Type        string         `json:"tipo"`
	Conditions  map[string]any `json:"condicoes"`
	Actions     map[string]any `json:"acoes"`
	Order       *int           `json:"ordem"`
	Priority    *int           `json:"prioridade"`
	Notes       *string        `json:"observacoes"`
	Active      *bool          `json:"ativo"`
}

// Validate checks all fields and collects all errors.
func (i CreateRuleInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	errs.required("tipo", i.Type)
	requiredMap(&errs, "condicoes", i.Conditions)
	requiredMap(&errs, "acoes", i.Actions)
	return errs.err()
}

// RulePatch is a partial update; omitted fields keep their stored value.
type RulePatch struct {
	Name        Optional[string]         `json:"nome"`
	Description Optional[string]         `json:"descricao"`
	Type        Optional[string]         `json:"tipo"`
	Conditions  Optional[map[string]any] `json:"condicoes"`
	Actions     Optional[map[string]any] `json:"acoes"`
	Order       Optional[int]            `json:"ordem"`
	Priority    Optional[int]            `json:"prioridade"`
	Notes       Optional[string]         `json:"observacoes"`
	Active      Optional[bool]           `json:"ativo"`
}

// Validate checks all fields and collects all errors.
func (p RulePatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	errs.notNullText("tipo", p.Type)
	notNull(&errs, "condicoes", p.Conditions)
	notNull(&errs, "acoes", p.Actions)
	notNull(&errs, "prioridade", p.Priority)
	notNull(&errs, "ativo", p.Active)
	return errs.err()
}
