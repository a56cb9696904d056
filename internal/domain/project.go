package domain

import "time"

// DefaultProjectStatus is assigned when a project is created without a status.
const DefaultProjectStatus = "Planejamento"

// Project groups the routes planned for a product.
type Project struct {
	ID          int64          `json:"id"`
	Name        string         `json:"nome"`
	Description *string        `json:"descricao"`
	Owner       string         `json:"responsavel"`
	Plan        map[string]any `json:"roteiro"`
	Notes       *string        `json:"observacoes"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"data_criacao"`
	UpdatedAt   time.Time      `json:"data_modificacao"`
}

func (p Project) RecordID() int64 { return p.ID }

// CreateProjectInput holds the fields accepted when creating a project.
type CreateProjectInput struct {
	Name        string         `json:"nome"`
	Description *string        `json:"descricao"`
	Owner       string         `json:"responsavel"`
	Plan        map[string]any `json:"roteiro"`
	Notes       *string        `json:"observacoes"`
	Status      *string        `json:"status"`
}

// Validate checks all fields and collects all errors.
func (i CreateProjectInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	errs.required("responsavel", i.Owner)
	if i.Plan != nil {
		validatePlan(&errs, i.Plan)
	}
	return errs.err()
}

// ProjectPatch is a partial update; omitted fields keep their stored value.
type ProjectPatch struct {
	Name        Optional[string]         `json:"nome"`
	Description Optional[string]         `json:"descricao"`
	Owner       Optional[string]         `json:"responsavel"`
	Plan        Optional[map[string]any] `json:"roteiro"`
	Notes       Optional[string]         `json:"observacoes"`
	Status      Optional[string]         `json:"status"`
}

// Validate checks all fields and collects all errors.
func (p ProjectPatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	errs.notNullText("responsavel", p.Owner)
	errs.notNullText("status", p.Status)
	if p.Plan.Present() {
		validatePlan(&errs, p.Plan.Value)
	}
	return errs.err()
}

// validatePlan requires a supplied plan to carry its routes as an array.
func validatePlan(errs *fieldErrors, plan map[string]any) {
	if _, ok := plan["rotas"].([]any); !ok {
		errs.add("roteiro", "must contain a rotas array")
	}
}
