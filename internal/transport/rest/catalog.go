package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
	"github.com/heartmarshall/orbis-catalog/pkg/ctxutil"
)

// catalogService defines the operations CatalogHandler needs from one entity
// service.
type catalogService[E, C, U any] interface {
	Toggleable() bool
	List(ctx context.Context, q domain.ListQuery) (domain.Page[E], error)
	Get(ctx context.Context, id int64) (E, error)
	Create(ctx context.Context, in C) (E, error)
	Update(ctx context.Context, id int64, patch U) (E, error)
	Delete(ctx context.Context, id int64) (E, error)
	Activate(ctx context.Context, id int64) (E, error)
	Deactivate(ctx context.Context, id int64) (E, error)
}

// listParams are query keys consumed by List itself; everything else is
// passed to the repository as a filter.
var listParams = map[string]bool{
	"search": true, "page": true, "limit": true,
	"ativo": true, "ativa": true, "activeOnly": true,
	"user_id": true,
}

// CatalogHandler serves the CRUD endpoints of one catalog entity.
type CatalogHandler[E, C, U any] struct {
	svc  catalogService[E, C, U]
	path string
	list http.HandlerFunc
	log  *slog.Logger
}

// NewCatalogHandler creates a handler mounted at /orbis/{path}.
func NewCatalogHandler[E, C, U any](svc catalogService[E, C, U], path string, logger *slog.Logger) *CatalogHandler[E, C, U] {
	h := &CatalogHandler[E, C, U]{
		svc:  svc,
		path: path,
		log:  logger.With("handler", path),
	}
	h.list = h.List
	return h
}

// WrapList lets a finder answer some listing requests before List does.
func (h *CatalogHandler[E, C, U]) WrapList(wrap func(http.HandlerFunc) http.HandlerFunc) *CatalogHandler[E, C, U] {
	h.list = wrap(h.List)
	return h
}

// Path returns the collection segment under /orbis.
func (h *CatalogHandler[E, C, U]) Path() string { return h.path }

// Register mounts the collection routes on mux. The toggle routes are only
// mounted for entities with an active flag.
func (h *CatalogHandler[E, C, U]) Register(mux *http.ServeMux) {
	base := "/orbis/" + h.path
	mux.HandleFunc("GET "+base, h.list)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
	if h.svc.Toggleable() {
		mux.HandleFunc("PATCH "+base+"/{id}/ativar", h.Activate)
		mux.HandleFunc("PATCH "+base+"/{id}/desativar", h.Deactivate)
	}
}

// List handles GET /orbis/{entity}.
func (h *CatalogHandler[E, C, U]) List(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /orbis/{entity}/{id}.
func (h *CatalogHandler[E, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Create handles POST /orbis/{entity}.
func (h *CatalogHandler[E, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	ctx, err := decodeWrite(r, &in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Create(ctx, in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Update handles PUT /orbis/{entity}/{id}. Only the keys present in the body
// are changed.
func (h *CatalogHandler[E, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var patch U
	ctx, err := decodeWrite(r, &patch)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Update(ctx, id, patch)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Activate handles PATCH /orbis/{entity}/{id}/ativar.
func (h *CatalogHandler[E, C, U]) Activate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.Activate)
}

// Deactivate handles PATCH /orbis/{entity}/{id}/desativar.
func (h *CatalogHandler[E, C, U]) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.Deactivate)
}

func (h *CatalogHandler[E, C, U]) toggle(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (E, error)) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := fn(actorFromBody(r), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /orbis/{entity}/{id} and returns the removed record.
func (h *CatalogHandler[E, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Delete(actorFromBody(r), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func listQuery(r *http.Request) (domain.ListQuery, error) {
	values := r.URL.Query()
	q := domain.ListQuery{Search: strings.TrimSpace(values.Get("search"))}

	var err error
	if q.Page, err = queryInt(r, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		return q, err
	}

	for _, key := range []string{"ativo", "ativa"} {
		if raw := values.Get(key); raw != "" {
			v, err := parseBool(key, raw)
			if err != nil {
				return q, err
			}
			q.Active = &v
		}
	}
	if raw := values.Get("activeOnly"); raw != "" && q.Active == nil {
		v, err := parseBool("activeOnly", raw)
		if err != nil {
			return q, err
		}
		if v {
			q.Active = &v
		}
	}

	for key, vals := range values {
		if listParams[key] || len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[string]string)
		}
		q.Filters[key] = strings.TrimSpace(vals[0])
	}
	return q, nil
}

type actorBody struct {
	UserID json.RawMessage `json:"user_id"`
}

// decodeWrite decodes a write body into v and returns the request context
// carrying the body's user_id as actor when no actor header was sent.
func decodeWrite(r *http.Request, v any) (context.Context, error) {
	data, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	if err := unmarshalBody(data, v); err != nil {
		return nil, err
	}
	return withBodyActor(r.Context(), data), nil
}

// actorFromBody handles bodies on requests where the body is optional.
func actorFromBody(r *http.Request) context.Context {
	if r.Body == nil || r.ContentLength == 0 {
		return r.Context()
	}
	data, err := decodeBody(r)
	if err != nil {
		return r.Context()
	}
	return withBodyActor(r.Context(), data)
}

func withBodyActor(ctx context.Context, data []byte) context.Context {
	if _, ok := ctxutil.ActorFromCtx(ctx); ok {
		return ctx
	}
	var body actorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.UserID) == 0 {
		return ctx
	}
	actor := strings.Trim(string(body.UserID), `"`)
	if actor == "null" {
		return ctx
	}
	return ctxutil.WithActor(ctx, actor)
}
