package rest

import (
	"net/http"
	"sort"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Collection is a catalog entity handler mounted under /orbis.
type Collection interface {
	Register(mux *http.ServeMux)
	Path() string
}

// APIInfo is the body of GET /orbis.
type APIInfo struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}

// Router holds every handler exposed by the API.
type Router struct {
	Health      *HealthHandler
	Lookups     *LookupHandler
	Logs        *LogsHandler
	Collections []Collection
	Version     string
}

// Handler builds the ServeMux. Finder routes sit beside the collection
// routes and the mux picks the most specific pattern.
func (rt Router) Handler() http.Handler {
	mux := http.NewServeMux()

	rt.Health.Register(mux)
	if rt.Lookups != nil {
		rt.Lookups.Register(mux)
	}
	rt.Logs.Register(mux)

	endpoints := []string{"/orbis/logs"}
	for _, c := range rt.Collections {
		c.Register(mux)
		endpoints = append(endpoints, "/orbis/"+c.Path())
	}
	sort.Strings(endpoints)

	info := APIInfo{
		Name:        "ORBIS process catalog",
		Version:     rt.Version,
		Description: "Manufacturing process configuration catalog with change audit",
		Endpoints:   endpoints,
	}
	mux.HandleFunc("GET /orbis", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, info)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route "+r.Method+" "+r.URL.Path+" does not exist", domain.KindNotFound)
	})

	return mux
}
