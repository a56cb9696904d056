package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// dbPinger is satisfied by *pgxpool.Pool.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health checks.
type HealthHandler struct {
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthResponse is the health check body. Status is "OK" or "DOWN".
type HealthResponse struct {
	Status    string          `json:"status"`
	Message   string          `json:"message,omitempty"`
	Version   string          `json:"version,omitempty"`
	Database  *DatabaseStatus `json:"database,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// DatabaseStatus reports the result of one ping.
type DatabaseStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Register mounts the health check routes on mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

// Live answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "OK", Timestamp: time.Now()})
}

// Ready answers 503 until the database answers a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.ping(r.Context())
	writeJSON(w, httpStatus(db), HealthResponse{Status: db.Status, Timestamp: time.Now()})
}

// Health reports the service version and the database round trip.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.ping(r.Context())

	resp := HealthResponse{
		Status:    db.Status,
		Message:   "ORBIS catalog is running",
		Version:   h.version,
		Database:  &db,
		Timestamp: time.Now(),
	}
	if db.Status != "OK" {
		resp.Message = "database unavailable"
	}
	writeJSON(w, httpStatus(db), resp)
}

func (h *HealthHandler) ping(ctx context.Context) DatabaseStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return DatabaseStatus{Status: "DOWN", Error: err.Error()}
	}
	return DatabaseStatus{Status: "OK", Latency: time.Since(start).String()}
}

func httpStatus(db DatabaseStatus) int {
	if db.Status != "OK" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
