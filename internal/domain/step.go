package domain

import "time"

// Step is a production step executed on one or more work centers.
type Step struct {
	ID             int64     `json:"id"`
	Name           string    `json:"nome"`
	Description    *string   `json:"descricao"`
	Centers        string    `json:"centros"`
	WorkCenters    []string  `json:"centros_trabalho"`
	RequiredParams []string  `json:"parametros_necessarios"`
	Active         bool      `json:"ativa"`
	CreatedAt      time.Time `json:"data_criacao"`
	UpdatedAt      time.Time `json:"data_modificacao"`
}

func (s Step) RecordID() int64 { return s.ID }

// CreateStepInput holds the fields accepted when creating a step.
// Active defaults to true when omitted.
type CreateStepInput struct {
	Name           string   `json:"nome"`
	Description    *string  `json:"descricao"`
	Centers        string   `json:"centros"`
	WorkCenters    []string `json:"centros_trabalho"`
	RequiredParams []string `json:"parametros_necessarios"`
	Active         *bool    `json:"ativa"`
}

// Validate checks all fields and collects all errors.
func (i CreateStepInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	errs.required("centros", i.Centers)
	requiredSlice(&errs, "centros_trabalho", i.WorkCenters)
	requiredSlice(&errs, "parametros_necessarios", i.RequiredParams)
	return errs.err()
}

// StepPatch is a partial update; omitted fields keep their stored value.
type StepPatch struct {
	Name           Optional[string]   `json:"nome"`
	Description    Optional[string]   `json:"descricao"`
	Centers        Optional[string]   `json:"centros"`
	WorkCenters    Optional[[]string] `json:"centros_trabalho"`
	RequiredParams Optional[[]string] `json:"parametros_necessarios"`
	Active         Optional[bool]     `json:"ativa"`
}

// Validate checks all fields and collects all errors.
func (p StepPatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	errs.notNullText("centros", p.Centers)
	notNull(&errs, "centros_trabalho", p.WorkCenters)
	notNull(&errs, "parametros_necessarios", p.RequiredParams)
	notNull(&errs, "ativa", p.Active)
	return errs.err()
}
