package domain

import "time"

// CoefficientTable maps condition parameters to coefficient rows.
type CoefficientTable struct {
	ID              int64     `json:"id"`
	Name            string    `json:"nome"`
	Description     *string   `json:"descricao"`
	ConditionParams []any     `json:"parametros_condicao"`
	Coefficients    []any     `json:"dados_coeficientes"`
	SAPTable        *string   `json:"tabela_sap"`
	Active          bool      `json:"ativa"`
	CreatedAt       time.Time `json:"data_criacao"`
	UpdatedAt       time.Time `json:"data_modificacao"`
}

func (c CoefficientTable) RecordID() int64 { return c.ID }

// CreateCoefficientTableInput holds the fields accepted when creating a coefficient table.
type CreateCoefficientTableInput struct {
	Name            string  `json:"nome"`
	Description     *string `json:"descricao"`
	ConditionParams []any   `json:"parametros_condicao"`
	Coefficients    []any   `json:"dados_coeficientes"`
	SAPTable        *string `json:"tabela_sap"`
	Active          *bool   `json:"ativa"`
}

// Validate checks all fields and collects all errors.
func (i CreateCoefficientTableInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	requiredSlice(&errs, "parametros_condicao", i.ConditionParams)
	requiredSlice(&errs, "dados_coeficientes", i.Coefficients)
	return errs.err()
}

// CoefficientTablePatch is a partial update; omitted fields keep their stored value.
type CoefficientTablePatch struct {
	Name            Optional[string] `json:"nome"`
	Description     Optional[string] `json:"descricao"`
	ConditionParams Optional[[]any]  `json:"parametros_condicao"`
	Coefficients    Optional[[]any]  `json:"dados_coeficientes"`
	SAPTable        Optional[string] `json:"tabela_sap"`
	Active          Optional[bool]   `json:"ativa"`
}

// Validate checks all fields and collects all errors.
func (p CoefficientTablePatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	notNull(&errs, "parametros_condicao", p.ConditionParams)
	notNull(&errs, "dados_coeficientes", p.Coefficients)
	notNull(&errs, "ativa", p.Active)
	return errs.err()
}
