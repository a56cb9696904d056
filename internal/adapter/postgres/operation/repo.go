// Package operation implements the machine operation repository using PostgreSQL.
package operation

import (
	"context"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "operacoes"

var schema = crud.Schema{
	Table: Table,
	Columns: []string{
		"id", "nome", "categoria", "descricao", "tipo_maquina", "tipo_operacao",
		"codigo_sap", "tempo_setup_min", "tempo_processamento_min",
		"custo_hora_operacao", "taxa_refugo_padrao", "condicoes_aplicacao",
		"configuracoes_avancadas", "parametros_processo", "observacoes_tecnicas",
		"ativo", "data_criacao", "data_modificacao",
	},
	Scope:      []string{"nome", "tipo_maquina"},
	FlagColumn: "ativo",
	OrderBy:    []string{"categoria ASC", "nome ASC", "tipo_maquina ASC", "id ASC"},
}

type row struct {
	ID                     int64     `db:"id"`
	Nome                   string    `db:"nome"`
	Categoria              string    `db:"categoria"`
	Descricao              *string   `db:"descricao"`
	TipoMaquina            string    `db:"tipo_maquina"`
	TipoOperacao           *string   `db:"tipo_operacao"`
	CodigoSAP              *string   `db:"codigo_sap"`
	TempoSetupMin          *float64  `db:"tempo_setup_min"`
	TempoProcessamentoMin  *float64  `db:"tempo_processamento_min"`
	CustoHoraOperacao      *float64  `db:"custo_hora_operacao"`
	TaxaRefugoPadrao       *float64  `db:"taxa_refugo_padrao"`
	CondicoesAplicacao     *string   `db:"condicoes_aplicacao"`
	ConfiguracoesAvancadas *string   `db:"configuracoes_avancadas"`
	ParametrosProcesso     *string   `db:"parametros_processo"`
	ObservacoesTecnicas    *string   `db:"observacoes_tecnicas"`
	Ativo                  int16     `db:"ativo"`
	DataCriacao            time.Time `db:"data_criacao"`
	DataModificacao        time.Time `db:"data_modificacao"`
}

func decode(r row) (domain.Operation, error) {
	conditions, err := codec.DecodeObject("condicoes_aplicacao", r.CondicoesAplicacao)
	if err != nil {
		return domain.Operation{}, err
	}
	settings, err := codec.DecodeObject("configuracoes_avancadas", r.ConfiguracoesAvancadas)
	if err != nil {
		return domain.Operation{}, err
	}
	params, err := codec.DecodeArray[any]("parametros_processo", r.ParametrosProcesso)
	if err != nil {
		return domain.Operation{}, err
	}
	return domain.Operation{
		ID:               r.ID,
		Name:             r.Nome,
		Category:         r.Categoria,
		Description:      r.Descricao,
		MachineType:      r.TipoMaquina,
		OperationType:    r.TipoOperacao,
		SAPCode:          r.CodigoSAP,
		SetupMinutes:     r.TempoSetupMin,
		ProcessMinutes:   r.TempoProcessamentoMin,
		HourlyCost:       r.CustoHoraOperacao,
		ScrapRate:        r.TaxaRefugoPadrao,
		Conditions:       conditions,
		AdvancedSettings: settings,
		ProcessParams:    params,
		TechnicalNotes:   r.ObservacoesTecnicas,
		Active:           codec.Bool(r.Ativo),
		CreatedAt:        r.DataCriacao,
		UpdatedAt:        r.DataModificacao,
	}, nil
}

// Repo provides operation persistence backed by PostgreSQL.
type Repo struct {
	t *crud.Table[row, domain.Operation]
}

// New creates a new operation repository.
func New(db postgres.DB, opts ...crud.Option) *Repo {
	return &Repo{t: crud.NewTable(db, schema, decode, opts...)}
}

// Table returns the storage table name.
func (r *Repo) Table() string { return Table }

// FlagColumn returns the active flag column.
func (r *Repo) FlagColumn() string { return schema.FlagColumn }

// List returns a page of operations.
// Supported filters: categoria, tipo_maquina, tipo_operacao.
func (r *Repo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Operation], error) {
	b := r.t.Query().
		Search(q.Search, "nome", "descricao").
		Eq("categoria", q.Filters["categoria"]).
		Eq("tipo_maquina", q.Filters["tipo_maquina"]).
		Eq("tipo_operacao", q.Filters["tipo_operacao"])
	b = r.t.ActiveFilter(b, q.Active)
	return r.t.List(ctx, b, q.Page, q.Limit)
}

// Get returns an operation by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Operation, error) {
	return r.t.Get(ctx, id)
}

// ListByCategory returns every operation of a category ordered by name.
func (r *Repo) ListByCategory(ctx context.Context, category string) ([]domain.Operation, error) {
	return r.t.FindMany(ctx, r.t.Query().Eq("categoria", category).OrderBy("nome ASC", "tipo_maquina ASC", "id ASC"))
}

// ListByMachineType returns every operation for a machine type.
func (r *Repo) ListByMachineType(ctx context.Context, machineType string) ([]domain.Operation, error) {
	return r.t.FindMany(ctx, r.t.Query().Eq("tipo_maquina", machineType))
}

// Create inserts a new operation. The operation is active unless stated otherwise.
func (r *Repo) Create(ctx context.Context, in domain.CreateOperationInput) (domain.Operation, error) {
	conditions := in.Conditions
	if conditions == nil {
		conditions = map[string]any{}
	}
	settings := in.AdvancedSettings
	if settings == nil {
		settings = map[string]any{}
	}
	params := in.ProcessParams
	if params == nil {
		params = []any{}
	}

	var v crud.Values
	v.Set("nome", in.Name)
	v.Set("categoria", in.Category)
	v.Set("descricao", in.Description)
	v.Set("tipo_maquina", in.MachineType)
	v.Set("tipo_operacao", in.OperationType)
	v.Set("codigo_sap", in.SAPCode)
	v.Set("tempo_setup_min", in.SetupMinutes)
	v.Set("tempo_processamento_min", in.ProcessMinutes)
	v.Set("custo_hora_operacao", in.HourlyCost)
	v.Set("taxa_refugo_padrao", in.ScrapRate)
	if err := v.SetJSON("condicoes_aplicacao", conditions); err != nil {
		return domain.Operation{}, err
	}
	if err := v.SetJSON("configuracoes_avancadas", settings); err != nil {
		return domain.Operation{}, err
	}
	if err := v.SetJSON("parametros_processo", params); err != nil {
		return domain.Operation{}, err
	}
	v.Set("observacoes_tecnicas", in.TechnicalNotes)
	v.SetFlag("ativo", in.Active == nil || *in.Active)
	return r.t.Insert(ctx, v)
}

// Update applies a partial update and returns the operation before and after it.
func (r *Repo) Update(ctx context.Context, id int64, p domain.OperationPatch) (domain.Operation, domain.Operation, error) {
	var v crud.Values
	crud.Scalar(&v, "nome", p.Name)
	crud.Scalar(&v, "categoria", p.Category)
	crud.Scalar(&v, "descricao", p.Description)
	crud.Scalar(&v, "tipo_maquina", p.MachineType)
	crud.Scalar(&v, "tipo_operacao", p.OperationType)
	crud.Scalar(&v, "codigo_sap", p.SAPCode)
	crud.Scalar(&v, "tempo_setup_min", p.SetupMinutes)
	crud.Scalar(&v, "tempo_processamento_min", p.ProcessMinutes)
	crud.Scalar(&v, "custo_hora_operacao", p.HourlyCost)
	crud.Scalar(&v, "taxa_refugo_padrao", p.ScrapRate)
	if err := crud.JSON(&v, "condicoes_aplicacao", p.Conditions); err != nil {
		return domain.Operation{}, domain.Operation{}, err
	}
	if err := crud.JSON(&v, "configuracoes_avancadas", p.AdvancedSettings); err != nil {
		return domain.Operation{}, domain.Operation{}, err
	}
	if err := crud.JSON(&v, "parametros_processo", p.ProcessParams); err != nil {
		return domain.Operation{}, domain.Operation{}, err
	}
	crud.Scalar(&v, "observacoes_tecnicas", p.TechnicalNotes)
	crud.Flag(&v, "ativo", p.Active)
	return r.t.Update(ctx, id, v)
}

// SetActive sets the active flag and returns its previous value.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (bool, domain.Operation, error) {
	return r.t.SetFlag(ctx, id, active)
}

// Delete removes an operation and returns it as it was.
func (r *Repo) Delete(ctx context.Context, id int64) (domain.Operation, error) {
	return r.t.Delete(ctx, id)
}
