package domain

import "time"

// AuditKind is the operation recorded by an audit entry.
type AuditKind string

const (
	AuditCreate     AuditKind = "CREATE"
	AuditUpdate     AuditKind = "UPDATE"
	AuditDelete     AuditKind = "DELETE"
	AuditActivate   AuditKind = "ACTIVATE"
	AuditDeactivate AuditKind = "DEACTIVATE"
)

// IsValid reports whether k is one of the known audit kinds.
func (k AuditKind) IsValid() bool {
	switch k {
	case AuditCreate, AuditUpdate, AuditDelete, AuditActivate, AuditDeactivate:
		return true
	}
	return false
}

// DefaultActor is recorded when a mutation carries no actor id.
const DefaultActor = "system"

// AuditEntry is an immutable record of one mutation.
type AuditEntry struct {
	ID            int64          `json:"id"`
	Table         string         `json:"tabela_afetada"`
	RecordID      string         `json:"registro_id"`
	Kind          AuditKind      `json:"operacao"`
	ChangedFields []string       `json:"campos_alterados"`
	Before        map[string]any `json:"valores_anteriores"`
	After         map[string]any `json:"valores_novos"`
	Actor         string         `json:"user_id"`
	Note          *string        `json:"observacoes"`
	CreatedAt     time.Time      `json:"data_operacao"`
}

// AuditTableStats counts audit entries per table.
type AuditTableStats struct {
	Table string `json:"tabela"`
	Total int    `json:"total_logs"`
}

// AuditActorStats summarizes activity per actor.
type AuditActorStats struct {
	Actor        string    `json:"user_id"`
	Total        int       `json:"total_operacoes"`
	LastActivity time.Time `json:"ultima_atividade"`
}
