package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// auditReader defines the read side of the audit trail.
type auditReader interface {
	List(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error)
	Get(ctx context.Context, id int64) (domain.AuditEntry, error)
	TableStats(ctx context.Context) ([]domain.AuditTableStats, error)
	ActorStats(ctx context.Context) ([]domain.AuditActorStats, error)
}

// LogsHandler serves the audit trail endpoints.
type LogsHandler struct {
	audit auditReader
	log   *slog.Logger
}

// NewLogsHandler creates a LogsHandler.
func NewLogsHandler(audit auditReader, logger *slog.Logger) *LogsHandler {
	return &LogsHandler{audit: audit, log: logger.With("handler", "logs")}
}

// Register mounts the audit routes on mux.
func (h *LogsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /orbis/logs", h.List)
	mux.HandleFunc("GET /orbis/logs/tabelas", h.Tables)
	mux.HandleFunc("GET /orbis/logs/usuarios", h.Actors)
	mux.HandleFunc("GET /orbis/logs/{id}", h.Get)
}

// List handles GET /orbis/logs.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := auditQuery(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.audit.List(r.Context(), q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /orbis/logs/{id}.
func (h *LogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entry, err := h.audit.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Tables handles GET /orbis/logs/tabelas.
func (h *LogsHandler) Tables(w http.ResponseWriter, r *http.Request) {
	stats, err := h.audit.TableStats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Actors handles GET /orbis/logs/usuarios.
func (h *LogsHandler) Actors(w http.ResponseWriter, r *http.Request) {
	stats, err := h.audit.ActorStats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func auditQuery(r *http.Request) (domain.AuditQuery, error) {
	values := r.URL.Query()
	q := domain.AuditQuery{
		Table:    strings.TrimSpace(values.Get("tabela")),
		Actor:    strings.TrimSpace(values.Get("user_id")),
		Kind:     domain.AuditKind(strings.ToUpper(strings.TrimSpace(values.Get("operacao")))),
		RecordID: strings.TrimSpace(values.Get("registro_id")),
	}

	var err error
	if q.Page, err = queryInt(r, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		return q, err
	}
	if q.From, err = queryTime(r, "data_inicio", false); err != nil {
		return q, err
	}
	if q.To, err = queryTime(r, "data_fim", true); err != nil {
		return q, err
	}
	return q, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates. A plain date used as
// an upper bound covers the whole day.
func queryTime(r *http.Request, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
