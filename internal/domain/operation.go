package domain

import "time"

// Operation is a machine operation with its time and cost figures.
// Its natural key is the pair (nome, tipo_maquina).
type Operation struct {
	ID               int64          `json:"id"`
	Name             string         `json:"nome"`
	Category         string         `json:"categoria"`
	Description      *string        `json:"descricao"`
	MachineType      string         `json:"tipo_maquina"`
	OperationType    *string        `json:"tipo_operacao"`
	SAPCode          *string        `json:"codigo_sap"`
	SetupMinutes     *float64       `json:"tempo_setup_min"`
	ProcessMinutes   *float64       `json:"tempo_processamento_min"`
	HourlyCost       *float64       `json:"custo_hora_operacao"`
	ScrapRate        *float64       `json:"taxa_refugo_padrao"`
	Conditions       map[string]any `json:"condicoes_aplicacao"`
	AdvancedSettings map[string]any `json:"configuracoes_avancadas"`
	ProcessParams    []any          `json:"parametros_processo"`
	TechnicalNotes   *string        `json:"observacoes_tecnicas"`
	Active           bool           `json:"ativo"`
	CreatedAt        time.Time      `json:"data_criacao"`
	UpdatedAt        time.Time      `json:"data_modificacao"`
}

func (o Operation) RecordID() int64 { return o.ID }

// CreateOperationInput holds the fields accepted when creating an operation.
type CreateOperationInput struct {
	Name             string         `json:"nome"`
	Category         string         `json:"categoria"`
	Description      *string        `json:"descricao"`
	MachineType      string         `json:"tipo_maquina"`
	OperationType    *string        `json:"tipo_operacao"`
	SAPCode          *string        `json:"codigo_sap"`
	SetupMinutes     *float64       `json:"tempo_setup_min"`
	ProcessMinutes   *float64       `json:"tempo_processamento_min"`
	HourlyCost       *float64       `json:"custo_hora_operacao"`
	ScrapRate        *float64       `json:"taxa_refugo_padrao"`
	Conditions       map[string]any `json:"condicoes_aplicacao"`
	AdvancedSettings map[string]any `json:"configuracoes_avancadas"`
	ProcessParams    []any          `json:"parametros_processo"`
	TechnicalNotes   *string        `json:"observacoes_tecnicas"`
	Active           *bool          `json:"ativo"`
}

// Validate checks all fields and collects all errors.
func (i CreateOperationInput) Validate() error {
	var errs fieldErrors
	errs.required("nome", i.Name)
	errs.required("categoria", i.Category)
	errs.required("tipo_maquina", i.MachineType)
	return errs.err()
}

// OperationPatch is a partial update; omitted fields keep their stored value.
type OperationPatch struct {
	Name             Optional[string]         `json:"nome"`
	Category         Optional[string]         `json:"categoria"`
	Description      Optional[string]         `json:"descricao"`
	MachineType      Optional[string]         `json:"tipo_maquina"`
	OperationType    Optional[string]         `json:"tipo_operacao"`
	SAPCode          Optional[string]         `json:"codigo_sap"`
	SetupMinutes     Optional[float64]        `json:"tempo_setup_min"`
	ProcessMinutes   Optional[float64]        `json:"tempo_processamento_min"`
	HourlyCost       Optional[float64]        `json:"custo_hora_operacao"`
	ScrapRate        Optional[float64]        `json:"taxa_refugo_padrao"`
	Conditions       Optional[map[string]any] `json:"condicoes_aplicacao"`
	AdvancedSettings Optional[map[string]any] `json:"configuracoes_avancadas"`
	ProcessParams    Optional[[]any]          `json:"parametros_processo"`
	TechnicalNotes   Optional[string]         `json:"observacoes_tecnicas"`
	Active           Optional[bool]           `json:"ativo"`
}

// Validate checks all fields and collects all errors.
func (p OperationPatch) Validate() error {
	var errs fieldErrors
	errs.notNullText("nome", p.Name)
	errs.notNullText("categoria", p.Category)
	errs.notNullText("tipo_maquina", p.MachineType)
	notNull(&errs, "ativo", p.Active)
	return errs.err()
}
