package app

import (
	"log/slog"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/audit"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/coefficient"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/crud"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/operation"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/parameter"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/project"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/query"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/route"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/rule"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/step"
	"github.com/heartmarshall/orbis-catalog/internal/config"
	"github.com/heartmarshall/orbis-catalog/internal/service/audit"
	"github.com/heartmarshall/orbis-catalog/internal/service/catalog"
)

// Catalog bundles the catalog services built over one connection pool.
type Catalog struct {
	Parameters   *catalog.Parameters
	Steps        *catalog.Steps
	Routes       *catalog.Routes
	Operations   *catalog.Operations
	Coefficients *catalog.Coefficients
	Rules        *catalog.Rules
	Projects     *catalog.Projects
	Audit        *audit.Recorder
}

// NewCatalog creates every repository and service over db.
func NewCatalog(db postgres.DB, cfg *config.Config, logger *slog.Logger) *Catalog {
	paging := query.Paging{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}
	withPaging := crud.WithPaging(paging)

	recorder := audit.NewRecorder(logger, auditrepo.New(db, paging), cfg.Audit.DefaultActor)

	return &Catalog{
		Parameters:   catalog.NewParameters(logger, parameter.New(db, withPaging), recorder),
		Steps:        catalog.NewSteps(logger, step.New(db, withPaging), recorder),
		Routes:       catalog.NewRoutes(logger, route.New(db, withPaging), recorder),
		Operations:   catalog.NewOperations(logger, operation.New(db, withPaging), recorder),
		Coefficients: catalog.NewCoefficients(logger, coefficient.New(db, withPaging), recorder),
		Rules:        catalog.NewRules(logger, rule.New(db, withPaging), recorder),
		Projects:     catalog.NewProjects(logger, project.New(db, withPaging), recorder),
		Audit:        recorder,
	}
}
