package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

type (
	parameterLookup interface {
		GetByName(ctx context.Context, name string) (domain.Parameter, error)
	}
	stepLookup interface {
		ListByIDs(ctx context.Context, ids []int64) ([]domain.Step, error)
	}
	routeLookup interface {
		SearchByDescription(ctx context.Context, term string) ([]domain.Route, error)
	}
	operationLookup interface {
		ListByCategory(ctx context.Context, category string) ([]domain.Operation, error)
		ListByMachineType(ctx context.Context, machineType string) ([]domain.Operation, error)
	}
	coefficientLookup interface {
		GetByName(ctx context.Context, name string) (domain.CoefficientTable, error)
	}
	ruleLookup interface {
		ListByType(ctx context.Context, ruleType string) ([]domain.Rule, error)
		ListActive(ctx context.Context) ([]domain.Rule, error)
	}
	projectLookup interface {
		GetByName(ctx context.Context, name string) (domain.Project, error)
		ListByStatus(ctx context.Context, status string) ([]domain.Project, error)
	}
)

// Lookups groups the entity-specific finders.
type Lookups struct {
	Parameters   parameterLookup
	Steps        stepLookup
	Routes       routeLookup
	Operations   operationLookup
	Coefficients coefficientLookup
	Rules        ruleLookup
	Projects     projectLookup
}

// LookupHandler serves the finder endpoints that sit beside the generic
// collection routes.
type LookupHandler struct {
	l   Lookups
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(l Lookups, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{l: l, log: logger.With("handler", "lookup")}
}

// Register mounts the finder routes on mux. Groups left nil are skipped.
func (h *LookupHandler) Register(mux *http.ServeMux) {
	if p := h.l.Parameters; p != nil {
		mux.HandleFunc("GET /orbis/parametros/nome/{nome}", byKey(h, "nome", p.GetByName))
	}
	if rt := h.l.Routes; rt != nil {
		mux.HandleFunc("GET /orbis/rotas/descricao/{descricao}", byKey(h, "descricao", rt.SearchByDescription))
	}
	if op := h.l.Operations; op != nil {
		mux.HandleFunc("GET /orbis/operacoes/categoria/{categoria}", byKey(h, "categoria", op.ListByCategory))
		mux.HandleFunc("GET /orbis/operacoes/tipo/{tipo_maquina}", byKey(h, "tipo_maquina", op.ListByMachineType))
	}
	if c := h.l.Coefficients; c != nil {
		mux.HandleFunc("GET /orbis/coeficientes/nome/{nome}", byKey(h, "nome", c.GetByName))
	}
	if ru := h.l.Rules; ru != nil {
		mux.HandleFunc("GET /orbis/regras/tipo/{tipo}", byKey(h, "tipo", ru.ListByType))
		mux.HandleFunc("GET /orbis/regras/ativas", h.ActiveRules)
	}
	if pr := h.l.Projects; pr != nil {
		mux.HandleFunc("GET /orbis/projetos/nome/{nome}", byKey(h, "nome", pr.GetByName))
		mux.HandleFunc("GET /orbis/projetos/status/{status}", byKey(h, "status", pr.ListByStatus))
	}
}

// StepsByIDs answers GET /orbis/etapas?ids=1,2 and passes every other
// listing request to next.
func (h *LookupHandler) StepsByIDs(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("ids")
		if raw == "" {
			next(w, r)
			return
		}

		ids, err := parseIDs("ids", raw)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		steps, err := h.l.Steps.ListByIDs(r.Context(), ids)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, steps)
	}
}

// ActiveRules handles GET /orbis/regras/ativas.
func (h *LookupHandler) ActiveRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.l.Rules.ListActive(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func byKey[T any](h *LookupHandler, param string, fn func(context.Context, string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fn(r.Context(), r.PathValue(param))
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
