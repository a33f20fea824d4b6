package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/catalogdump"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/grpc"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/planfile"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/simplex"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/setup"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/database"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/logging"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/pidfile"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: search default paths)")
	flag.Parse()

	fmt.Printf("Factory Planner Daemon v%s\n", grpc.Version)
	fmt.Println("==============================")

	cfg := config.MustLoadConfig(*configFlag)

	// Single instance
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock %s: %v", pf.Path(), err)
	}

	err := run(cfg)
	if releaseErr := pf.Release(); releaseErr != nil {
		log.Printf("Warning: failed to release PID file: %v", releaseErr)
	}
	if err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger, err := logging.NewZapLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// 1. Database
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	logger.Log("info", "database connected", map[string]interface{}{"type": cfg.Database.Type})

	// 2. Metrics (optional): instrument the LP backend and every mediator request
	var lpSolver planning.LinearSolver = simplex.NewSolver(cfg.Solver.PrimitiveTolerance)
	var recorder commands.SolveRecorder
	var middlewares []mediator.Middleware
	var metricsServer *metrics.Server

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		planningCollector := metrics.NewPlanningMetricsCollector()
		if err := planningCollector.Register(); err != nil {
			return fmt.Errorf("failed to register planning metrics: %w", err)
		}
		metrics.SetGlobalPlanningCollector(planningCollector)

		commandCollector := metrics.NewCommandMetricsCollector()
		if err := commandCollector.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}

		lpSolver = metrics.NewInstrumentedSolver(lpSolver, nil)
		recorder = planningCollector
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))

		metricsServer, err = metrics.NewServer(cfg.Metrics)
		if err != nil {
			return err
		}
	}

	// 3. Application
	planner := planning.NewPlanner(lpSolver, planning.WithTolerance(cfg.Solver.Tolerance))
	registry := setup.NewHandlerRegistry(
		persistence.NewGormProjectRepository(db, nil),
		persistence.NewGormSolveRunRepository(db),
		planner,
		nil,
		catalogdump.FileLoader{},
		planfile.Loader{},
		recorder,
		nil,
	)
	med, err := registry.CreateConfiguredMediator(logger, middlewares...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	// 4. Serve until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Serve(); err != nil {
				logger.Log("error", "metrics server failed", map[string]interface{}{"error": err.Error()})
			}
		}()
		logger.Log("info", "metrics endpoint listening", map[string]interface{}{
			"addr": metricsServer.Addr(),
			"path": cfg.Metrics.Path,
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	server, err := grpc.NewPlannerServer(med, logger, cfg.Daemon)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}
