package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/config"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
	"github.com/heartmarshall/orbis-catalog/internal/transport/middleware"
	"github.com/heartmarshall/orbis-catalog/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// connection pool, wires the catalog services and serves HTTP until ctx is
// canceled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	cat := NewCatalog(pool, cfg, logger)
	handler := NewHTTPHandler(cfg, logger, cat, pool, limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// NewHTTPHandler builds the router and wraps it with the middleware chain.
func NewHTTPHandler(cfg *config.Config, logger *slog.Logger, cat *Catalog, db pinger, limiter *middleware.RateLimiter) http.Handler {
	lookups := rest.NewLookupHandler(rest.Lookups{
		Parameters:   cat.Parameters,
		Steps:        cat.Steps,
		Routes:       cat.Routes,
		Operations:   cat.Operations,
		Coefficients: cat.Coefficients,
		Rules:        cat.Rules,
		Projects:     cat.Projects,
	}, logger)

	router := rest.Router{
		Health:  rest.NewHealthHandler(db, Version),
		Lookups: lookups,
		Logs:    rest.NewLogsHandler(cat.Audit, logger),
		Collections: []rest.Collection{
			rest.NewCatalogHandler[domain.Parameter, domain.CreateParameterInput, domain.ParameterPatch](cat.Parameters, "parametros", logger),
			rest.NewCatalogHandler[domain.Step, domain.CreateStepInput, domain.StepPatch](cat.Steps, "etapas", logger).
				WrapList(lookups.StepsByIDs),
			rest.NewCatalogHandler[domain.Route, domain.CreateRouteInput, domain.RoutePatch](cat.Routes, "rotas", logger),
			rest.NewCatalogHandler[domain.Operation, domain.CreateOperationInput, domain.OperationPatch](cat.Operations, "operacoes", logger),
			rest.NewCatalogHandler[domain.CoefficientTable, domain.CreateCoefficientTableInput, domain.CoefficientTablePatch](cat.Coefficients, "coeficientes", logger),
			rest.NewCatalogHandler[domain.Rule, domain.CreateRuleInput, domain.RulePatch](cat.Rules, "regras", logger),
			rest.NewCatalogHandler[domain.Project, domain.CreateProjectInput, domain.ProjectPatch](cat.Projects, "projetos", logger),
		},
		Version: Version,
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Actor,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Gzip(cfg.Server.Gzip),
		middleware.MaxBody(cfg.Server.MaxBodyBytes),
		limiter.LimitWrites(cfg.RateLimit.WritesPerMinute),
	)
	return chain(router.Handler())
}
