package setup

import (
	"reflect"

	"github.com/andrescamacho/factory-planner-go/internal/application/logging"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/queries"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	projectRepo   project.ProjectRepository
	historyRepo   project.SolveHistoryRepository
	planner       *planning.Planner
	guard         *services.CatalogGuard
	catalogLoader commands.CatalogLoader
	planLoader    commands.PlanLoader
	recorder      commands.SolveRecorder
	clock         shared.Clock
}

// NewHandlerRegistry creates a new handler registry.
// historyRepo, the loaders and recorder are optional; guard and clock get defaults.
func NewHandlerRegistry(
	projectRepo project.ProjectRepository,
	historyRepo project.SolveHistoryRepository,
	planner *planning.Planner,
	guard *services.CatalogGuard,
	catalogLoader commands.CatalogLoader,
	planLoader commands.PlanLoader,
	recorder commands.SolveRecorder,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if guard == nil {
		guard = services.NewCatalogGuard()
	}

	return &HandlerRegistry{
		projectRepo:   projectRepo,
		historyRepo:   historyRepo,
		planner:       planner,
		guard:         guard,
		catalogLoader: catalogLoader,
		planLoader:    planLoader,
		recorder:      recorder,
		clock:         clock,
	}
}

// Guard returns the catalog guard shared by the registered handlers
func (r *HandlerRegistry) Guard() *services.CatalogGuard {
	return r.guard
}

// RegisterProjectHandlers registers every project command and query handler:
//   - CreateProjectCommand, DeleteProjectCommand, ImportCatalogCommand
//   - AddProcessCommand, RemoveProcessCommand, ConfigureProcessCommand
//   - PinMaterialCommand, UnpinMaterialCommand, ImportPlanCommand, SolveModelCommand
//   - GetProjectQuery, ListProjectsQuery, GetPinQuery, ListSolveRunsQuery (when history is available)
func (r *HandlerRegistry) RegisterProjectHandlers(m mediator.Mediator) error {
	resolver := services.NewProjectResolver(r.projectRepo)
	processHandler := commands.NewProcessHandler(resolver, r.projectRepo, r.guard)
	pinHandler := commands.NewPinHandler(resolver, r.projectRepo, r.guard)

	registrations := []struct {
		request interface{}
		handler mediator.RequestHandler
	}{
		{&commands.CreateProjectCommand{}, commands.NewCreateProjectHandler(r.projectRepo, r.catalogLoader, r.clock)},
		{&commands.DeleteProjectCommand{}, commands.NewDeleteProjectHandler(resolver, r.projectRepo, r.guard)},
		{&commands.ImportCatalogCommand{}, commands.NewImportCatalogHandler(resolver, r.projectRepo, r.guard, r.catalogLoader)},
		{&commands.AddProcessCommand{}, processHandler},
		{&commands.RemoveProcessCommand{}, processHandler},
		{&commands.ConfigureProcessCommand{}, processHandler},
		{&commands.PinMaterialCommand{}, pinHandler},
		{&commands.UnpinMaterialCommand{}, pinHandler},
		{&commands.ImportPlanCommand{}, commands.NewImportPlanHandler(resolver, r.projectRepo, r.guard, r.planLoader)},
		{&commands.SolveModelCommand{}, commands.NewSolveModelHandler(resolver, r.projectRepo, r.historyRepo, r.guard, r.planner, r.recorder, r.clock)},
		{&queries.GetProjectQuery{}, queries.NewGetProjectHandler(resolver)},
		{&queries.ListProjectsQuery{}, queries.NewListProjectsHandler(r.projectRepo)},
		{&queries.GetPinQuery{}, queries.NewGetPinHandler(resolver)},
	}
	if r.historyRepo != nil {
		registrations = append(registrations, struct {
			request interface{}
			handler mediator.RequestHandler
		}{&queries.ListSolveRunsQuery{}, queries.NewListSolveRunsHandler(resolver, r.historyRepo)})
	}

	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// CreateConfiguredMediator creates a mediator with all project handlers registered and
// the given middleware installed, outermost first. A nil logger skips the logging middleware.
func (r *HandlerRegistry) CreateConfiguredMediator(logger logging.Logger, middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	if logger != nil {
		m.RegisterMiddleware(logging.LoggingMiddleware(logger))
	}
	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterProjectHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
