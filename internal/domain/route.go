package domain

import "time"

// Route is an ordered sequence of steps through production centers.
type Route struct {
	ID               int64     `json:"id"`
	Name             string    `json:"nome"`
	Description      *string   `json:"descricao"`
	CenterSequence   string    `json:"sequencia_centros"`
	ProductionCenter *string   `json:"centro_prod"`
	Steps            []any     `json:"etapas"`
	Active           bool      `json:"ativa"`
	CreatedAt        time.Time `json:"data_criacao"`
	UpdatedAt        time.Time `json:"data_modificacao"`
}

func (r Route) RecordID() int64 { return r.ID }

// CreateRouteInput holds the fields accepted when creating a route.
type CreateRouteInput struct {
	Name             string  `json:"nome"`
	Description      *string `json:"descricao"`
	CenterSequence   string  `json:"sequencia_centros"`
	ProductionCenter *string `json:"centro_prod"`
	Steps            []any   `json:"etapas"`
	Active           *bool   `json:"ativa"`
}

// Validate checks all fields and collects all errors.
func (i CreateRouteInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	errs.required("sequencia_centros", i.CenterSequence)
	requiredSlice(&errs, "etapas", i.Steps)
	return errs.err()
}

// RoutePatch is a partial update; omitted fields keep their stored value.
type RoutePatch struct {
	Name             Optional[string] `json:"nome"`
	Description      Optional[string] `json:"descricao"`
	CenterSequence   Optional[string] `json:"sequencia_centros"`
	ProductionCenter Optional[string] `json:"centro_prod"`
	Steps            Optional[[]any]  `json:"etapas"`
	Active           Optional[bool]   `json:"ativa"`
}

// Validate checks all fields and collects all errors.
func (p RoutePatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	errs.notNullText("sequencia_centros", p.CenterSequence)
	notNull(&errs, "etapas", p.Steps)
	notNull(&errs, "ativa", p.Active)
	return errs.err()
}
