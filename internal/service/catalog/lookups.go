package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

type (
	// Parameters manages process parameters.
	Parameters struct {
		*Service[domain.Parameter, domain.CreateParameterInput, domain.ParameterPatch]
		repo parameterRepo
	}
	// Steps manages production steps.
	Steps struct {
		*Service[domain.Step, domain.CreateStepInput, domain.StepPatch]
		repo stepRepo
	}
	// Routes manages production routes.
	Routes struct {
		*Service[domain.Route, domain.CreateRouteInput, domain.RoutePatch]
		repo routeRepo
	}
	// Operations manages machine operations.
	Operations struct {
		*Service[domain.Operation, domain.CreateOperationInput, domain.OperationPatch]
		repo operationRepo
	}
	// Coefficients manages coefficient tables.
	Coefficients struct {
		*Service[domain.CoefficientTable, domain.CreateCoefficientTableInput, domain.CoefficientTablePatch]
		repo coefficientRepo
	}
	// Rules manages post-calculation rules.
	Rules struct {
		*Service[domain.Rule, domain.CreateRuleInput, domain.RulePatch]
		repo ruleRepo
	}
	// Projects manages projects.
	Projects struct {
		*Service[domain.Project, domain.CreateProjectInput, domain.ProjectPatch]
		repo projectRepo
	}
)

type parameterRepo interface {
	entityRepo[domain.Parameter, domain.CreateParameterInput, domain.ParameterPatch]
	GetByName(ctx context.Context, name string) (domain.Parameter, error)
}

type stepRepo interface {
	entityRepo[domain.Step, domain.CreateStepInput, domain.StepPatch]
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Step, error)
}

type routeRepo interface {
	entityRepo[domain.Route, domain.CreateRouteInput, domain.RoutePatch]
	SearchByDescription(ctx context.Context, term string) ([]domain.Route, error)
}

type operationRepo interface {
	entityRepo[domain.Operation, domain.CreateOperationInput, domain.OperationPatch]
	ListByCategory(ctx context.Context, category string) ([]domain.Operation, error)
	ListByMachineType(ctx context.Context, machineType string) ([]domain.Operation, error)
}

type coefficientRepo interface {
	entityRepo[domain.CoefficientTable, domain.CreateCoefficientTableInput, domain.CoefficientTablePatch]
	GetByName(ctx context.Context, name string) (domain.CoefficientTable, error)
}

type ruleRepo interface {
	entityRepo[domain.Rule, domain.CreateRuleInput, domain.RulePatch]
	ListByType(ctx context.Context, ruleType string) ([]domain.Rule, error)
	ListActive(ctx context.Context) ([]domain.Rule, error)
}

type projectRepo interface {
	entityRepo[domain.Project, domain.CreateProjectInput, domain.ProjectPatch]
	GetByName(ctx context.Context, name string) (domain.Project, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Project, error)
}

// NewParameters creates the process parameter service.
func NewParameters(log *slog.Logger, repo parameterRepo, audit recorder) *Parameters {
	return &Parameters{Service: NewService[domain.Parameter, domain.CreateParameterInput, domain.ParameterPatch](log, repo, audit), repo: repo}
}

// NewSteps creates the production step service.
func NewSteps(log *slog.Logger, repo stepRepo, audit recorder) *Steps {
	return &Steps{Service: NewService[domain.Step, domain.CreateStepInput, domain.StepPatch](log, repo, audit), repo: repo}
}

// NewRoutes creates the production route service.
func NewRoutes(log *slog.Logger, repo routeRepo, audit recorder) *Routes {
	return &Routes{Service: NewService[domain.Route, domain.CreateRouteInput, domain.RoutePatch](log, repo, audit), repo: repo}
}

// NewOperations creates the machine operation service.
func NewOperations(log *slog.Logger, repo operationRepo, audit recorder) *Operations {
	return &Operations{Service: NewService[domain.Operation, domain.CreateOperationInput, domain.OperationPatch](log, repo, audit), repo: repo}
}

// NewCoefficients creates the coefficient table service.
func NewCoefficients(log *slog.Logger, repo coefficientRepo, audit recorder) *Coefficients {
	return &Coefficients{Service: NewService[domain.CoefficientTable, domain.CreateCoefficientTableInput, domain.CoefficientTablePatch](log, repo, audit), repo: repo}
}

// NewRules creates the post-calculation rule service.
func NewRules(log *slog.Logger, repo ruleRepo, audit recorder) *Rules {
	return &Rules{Service: NewService[domain.Rule, domain.CreateRuleInput, domain.RulePatch](log, repo, audit), repo: repo}
}

// NewProjects creates the project service.
func NewProjects(log *slog.Logger, repo projectRepo, audit recorder) *Projects {
	return &Projects{Service: NewService[domain.Project, domain.CreateProjectInput, domain.ProjectPatch](log, repo, audit), repo: repo}
}

// GetByName returns the parameter with the exact name.
func (s *Parameters) GetByName(ctx context.Context, name string) (domain.Parameter, error) {
	if err := requireKey("nome", name); err != nil {
		return domain.Parameter{}, err
	}
	return s.repo.GetByName(ctx, name)
}

// ListByIDs returns the steps with the given ids.
func (s *Steps) ListByIDs(ctx context.Context, ids []int64) ([]domain.Step, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// SearchByDescription returns routes whose description contains term.
func (s *Routes) SearchByDescription(ctx context.Context, term string) ([]domain.Route, error) {
	if err := requireKey("descricao", term); err != nil {
		return nil, err
	}
	return s.repo.SearchByDescription(ctx, term)
}

// ListByCategory returns the operations of one category.
func (s *Operations) ListByCategory(ctx context.Context, category string) ([]domain.Operation, error) {
	if err := requireKey("categoria", category); err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, category)
}

// ListByMachineType returns the operations of one machine type.
func (s *Operations) ListByMachineType(ctx context.Context, machineType string) ([]domain.Operation, error) {
	if err := requireKey("tipo_maquina", machineType); err != nil {
		return nil, err
	}
	return s.repo.ListByMachineType(ctx, machineType)
}

// GetByName returns the coefficient table with the exact name.
func (s *Coefficients) GetByName(ctx context.Context, name string) (domain.CoefficientTable, error) {
	if err := requireKey("nome", name); err != nil {
		return domain.CoefficientTable{}, err
	}
	return s.repo.GetByName(ctx, name)
}

// ListByType returns the rules of one type.
func (s *Rules) ListByType(ctx context.Context, ruleType string) ([]domain.Rule, error) {
	if err := requireKey("tipo", ruleType); err != nil {
		return nil, err
	}
	return s.repo.ListByType(ctx, ruleType)
}

// ListActive returns every active rule in evaluation order.
func (s *Rules) ListActive(ctx context.Context) ([]domain.Rule, error) {
	return s.repo.ListActive(ctx)
}

// GetByName returns the project with the exact name.
func (s *Projects) GetByName(ctx context.Context, name string) (domain.Project, error) {
	if err := requireKey("nome", name); err != nil {
		return domain.Project{}, err
	}
	return s.repo.GetByName(ctx, name)
}

// ListByStatus returns the projects in one status.
func (s *Projects) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	if err := requireKey("status", status); err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, status)
}

func requireKey(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.NewValidationError(field, "required")
	}
	return nil
}
