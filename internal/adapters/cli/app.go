package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/catalogdump"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/planfile"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/simplex"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/setup"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/database"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/logging"
)

// localApp is the in-process planner used by every command that does not go through the daemon
type localApp struct {
	cfg      *config.Config
	db       *gorm.DB
	logger   *logging.ZapLogger
	mediator mediator.Mediator
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// openLocalApp wires config, database and mediator. Callers must close it.
func openLocalApp() (*localApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewZapLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	planner := planning.NewPlanner(
		simplex.NewSolver(cfg.Solver.PrimitiveTolerance),
		planning.WithTolerance(cfg.Solver.Tolerance),
	)
	registry := setup.NewHandlerRegistry(
		persistence.NewGormProjectRepository(db, nil),
		persistence.NewGormSolveRunRepository(db),
		planner,
		nil,
		catalogdump.FileLoader{},
		planfile.Loader{},
		nil,
		nil,
	)
	m, err := registry.CreateConfiguredMediator(logger)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return &localApp{cfg: cfg, db: db, logger: logger, mediator: m}, nil
}

func (a *localApp) close() {
	_ = a.logger.Sync()
	_ = database.Close(a.db)
}

// send dispatches a request and asserts the response type
func send[T mediator.Response](a *localApp, request mediator.Request) (T, error) {
	var zero T
	resp, err := a.mediator.Send(context.Background(), request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

// withApp opens the local app for the duration of fn
func withApp(fn func(a *localApp) error) error {
	a, err := openLocalApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
