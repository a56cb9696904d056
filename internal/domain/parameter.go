package domain

import "time"

// Parameter is a process parameter that steps and operations refer to by name.
type Parameter struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nome"`
	Type         string    `json:"tipo"`
	Unit         *string   `json:"unidade"`
	Description  *string   `json:"descricao"`
	Options      []any     `json:"opcoes"`
	DefaultValue *string   `json:"valor_padrao"`
	Required     bool      `json:"obrigatorio"`
	ImageBase64  *string   `json:"imagem_base64"`
	CreatedAt    time.Time `json:"data_criacao"`
	UpdatedAt    time.Time `json:"data_modificacao"`
}

func (p Parameter) RecordID() int64 { return p.ID }

// CreateParameterInput holds the fields accepted when creating a parameter.
type CreateParameterInput struct {
	Name         string  `json:"nome"`
	Type         string  `json:"tipo"`
	Unit         *string `json:"unidade"`
	Description  *string `json:"descricao"`
	Options      []any   `json:"opcoes"`
	DefaultValue *string `json:"valor_padrao"`
	Required     bool    `json:"obrigatorio"`
	ImageBase64  *string `json:"imagem_base64"`
}

// Validate checks all fields and collects all errors.
func (i CreateParameterInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	errs.required("tipo", i.Type)
	return errs.err()
}

// ParameterPatch is a partial update; omitted fields keep their stored value.
type ParameterPatch struct {
	Name         Optional[string] `json:"nome"`
	Type         Optional[string] `json:"tipo"`
	Unit         Optional[string] `json:"unidade"`
	Description  Optional[string] `json:"descricao"`
	Options      Optional[[]any]  `json:"opcoes"`
	DefaultValue Optional[string] `json:"valor_padrao"`
	Required     Optional[bool]   `json:"obrigatorio"`
	ImageBase64  Optional[string] `json:"imagem_base64"`
}

// Validate checks all fields and collects all errors.
func (p ParameterPatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	errs.notNullText("tipo", p.Type)
	notNull(&errs, "obrigatorio", p.Required)
	return errs.err()
}
