// Package seeder loads a sample catalog through the catalog services, so every
// seeded record is validated, uniqueness-checked and audited like an API write.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
	"github.com/heartmarshall/orbis-catalog/pkg/ctxutil"
)

// Phases lists the canonical execution order. Routes and projects reference
// steps and routes by id, so their parents are seeded first.
var Phases = []string{"parametros", "etapas", "rotas", "operacoes", "coeficientes", "regras", "projetos"}

type validator interface {
	Validate() error
}

type creator[C validator, E any] interface {
	Create(ctx context.Context, in C) (E, error)
}

// Targets are the services the pipeline writes through.
type Targets struct {
	Parameters   creator[domain.CreateParameterInput, domain.Parameter]
	Steps        creator[domain.CreateStepInput, domain.Step]
	Routes       creator[domain.CreateRouteInput, domain.Route]
	Operations   creator[domain.CreateOperationInput, domain.Operation]
	Coefficients creator[domain.CreateCoefficientTableInput, domain.CoefficientTable]
	Rules        creator[domain.CreateRuleInput, domain.Rule]
	Projects     creator[domain.CreateProjectInput, domain.Project]
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the per-collection seeding phases.
type Pipeline struct {
	log     *slog.Logger
	targets Targets
	data    Dataset
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, targets Targets, data Dataset, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "seeder"),
		targets: targets,
		data:    data,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run, still in canonical order.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	for _, ph := range phases {
		if !slices.Contains(Phases, ph) {
			return fmt.Errorf("unknown phase %q", ph)
		}
	}

	toRun := Phases
	if len(phases) > 0 {
		toRun = nil
		for _, ph := range Phases {
			if slices.Contains(phases, ph) {
				toRun = append(toRun, ph)
			}
		}
	}

	if p.cfg.Actor != "" {
		ctx = ctxutil.WithActor(ctx, p.cfg.Actor)
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase), slog.Bool("dry_run", p.cfg.DryRun))

		result := p.runPhase(ctx, phase)
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func (p *Pipeline) runPhase(ctx context.Context, phase string) PhaseResult {
	switch phase {
	case "parametros":
		return seedPhase(ctx, p, phase, p.data.Parameters, p.targets.Parameters)
	case "etapas":
		return seedPhase(ctx, p, phase, p.data.Steps, p.targets.Steps)
	case "rotas":
		return seedPhase(ctx, p, phase, p.data.Routes, p.targets.Routes)
	case "operacoes":
		return seedPhase(ctx, p, phase, p.data.Operations, p.targets.Operations)
	case "coeficientes":
		return seedPhase(ctx, p, phase, p.data.Coefficients, p.targets.Coefficients)
	case "regras":
		return seedPhase(ctx, p, phase, p.data.Rules, p.targets.Rules)
	case "projetos":
		return seedPhase(ctx, p, phase, p.data.Projects, p.targets.Projects)
	}
	return PhaseResult{Err: fmt.Errorf("unknown phase %q", phase)}
}

// seedPhase creates each record in order. Records that already exist count as
// skipped; invalid or failed records are logged and counted as errors.
func seedPhase[C validator, E any](ctx context.Context, p *Pipeline, phase string, records []Record, target creator[C, E]) PhaseResult {
	if target == nil {
		return PhaseResult{Skipped: len(records), Err: fmt.Errorf("no target configured for %s", phase)}
	}

	var result PhaseResult
	for i, rec := range records {
		in, err := decodeRecord[C](rec)
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			result.Errors++
			p.log.Warn("invalid sample record",
				slog.String("phase", phase),
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}

		if p.cfg.DryRun {
			result.Skipped++
			continue
		}

		if _, err := target.Create(ctx, in); err != nil {
			switch {
			case errors.Is(err, domain.ErrConflict):
				result.Skipped++
			case ctx.Err() != nil:
				result.Err = err
				return result
			default:
				result.Errors++
				p.log.Warn("seed record failed",
					slog.String("phase", phase),
					slog.Int("index", i),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		result.Inserted++
	}
	return result
}
