package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/simplex"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog/catalogtest"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
	"github.com/andrescamacho/factory-planner-go/test/helpers"
)

const rateTolerance = 1e-6

type planningContext struct {
	catalog  *catalog.Catalog
	model    *planning.Model
	settings map[process.Key]planning.ProcessSettings
	planner  *planning.Planner
	result   planning.Result
	diag     planning.Diagnostics
	pin      planning.Pin
	found    bool
	err      error
}

func (pc *planningContext) reset() {
	pc.catalog = nil
	pc.model = planning.NewModel()
	pc.settings = make(map[process.Key]planning.ProcessSettings)
	pc.planner = planning.NewPlanner(simplex.NewSolver(simplex.DefaultTolerance))
	pc.result = nil
	pc.diag = planning.Diagnostics{}
	pc.pin = planning.Pin{}
	pc.found = false
	pc.err = nil
}

func (pc *planningContext) theSampleCatalog() error {
	pc.catalog = catalogtest.Sample()
	return nil
}

func (pc *planningContext) parseProcess(kind, name string) (process.Process, error) {
	k, err := process.ParseKind(kind)
	if err != nil {
		return process.Process{}, err
	}
	p := process.New(k, name)
	if err := process.Validate(pc.catalog, p); err != nil {
		return process.Process{}, err
	}
	return p, nil
}

func (pc *planningContext) theProcessIsSelected(kind, name string) error {
	p, err := pc.parseProcess(kind, name)
	if err != nil {
		return err
	}
	return pc.model.AddProcess(p)
}

func (pc *planningContext) selectingTheProcessAgainFails(kind, name string) error {
	p, err := pc.parseProcess(kind, name)
	if err != nil {
		return err
	}
	pc.err = pc.model.AddProcess(p)
	if !errors.Is(pc.err, planning.ErrDuplicateProcess) {
		return fmt.Errorf("expected duplicate process error, got %v", pc.err)
	}
	return nil
}

func (pc *planningContext) selectingAnUnknownProcessFails(kind, name string) error {
	_, err := pc.parseProcess(kind, name)
	var unknown *catalog.UnknownPrototypeError
	if !errors.As(err, &unknown) {
		return fmt.Errorf("expected unknown prototype error, got %v", err)
	}
	return nil
}

func (pc *planningContext) theMaterialIsPinned(direction, id string, amount float64) error {
	dir, err := planning.ParseDirection(direction)
	if err != nil {
		return err
	}
	key, err := material.ParseKey(id)
	if err != nil {
		return err
	}
	return pc.model.Pin(dir, key, amount)
}

func (pc *planningContext) theMaterialIsUnpinned(direction, id string) error {
	dir, err := planning.ParseDirection(direction)
	if err != nil {
		return err
	}
	key, err := material.ParseKey(id)
	if err != nil {
		return err
	}
	pc.model.Unpin(dir, key)
	return nil
}

func (pc *planningContext) theProcessRunsInWithModules(kind, name, machine string, count int, module string) error {
	p, err := pc.parseProcess(kind, name)
	if err != nil {
		return err
	}
	modules := make([]string, count)
	for i := range modules {
		modules[i] = module
	}
	s := planning.ProcessSettings{Machine: machine, Modules: modules}
	if err := planning.ValidateSettings(pc.catalog, p.Key(), s); err != nil {
		return err
	}
	pc.settings[p.Key()] = s
	return planning.ApplyProductivity(pc.catalog, pc.model, pc.settings)
}

func (pc *planningContext) theModelIsSavedAndReloaded(name string) error {
	ctx := context.Background()
	clock := shared.NewMockClock(time.Time{})
	repo := persistence.NewGormProjectRepository(helpers.SharedTestDB, clock)

	p, err := project.NewProject(name+"-0000beef", name, pc.catalog, clock)
	if err != nil {
		return err
	}
	for _, proc := range pc.model.Processes {
		if _, err := p.AddProcess(proc.Kind, proc.Name); err != nil {
			return err
		}
		if s, ok := pc.settings[proc.Key()]; ok {
			if err := p.ConfigureProcess(proc.Key(), s); err != nil {
				return err
			}
		}
	}
	for key, amount := range pc.model.Inputs {
		if err := p.Pin(planning.DirectionInput, key, amount); err != nil {
			return err
		}
	}
	for key, amount := range pc.model.Outputs {
		if err := p.Pin(planning.DirectionOutput, key, amount); err != nil {
			return err
		}
	}
	if err := repo.Create(ctx, p); err != nil {
		return err
	}

	loaded, err := repo.FindByID(ctx, p.ID())
	if err != nil {
		return err
	}
	if err := loaded.RefreshProductivity(); err != nil {
		return err
	}
	pc.catalog = loaded.Catalog()
	pc.model = loaded.Model()
	pc.settings = loaded.Settings()
	return nil
}

func (pc *planningContext) iSolveTheModel() error {
	pc.result, pc.diag = pc.planner.SolveWithDiagnostics(pc.catalog, pc.model, false)
	return nil
}

func (pc *planningContext) iSolveTheModelGeneratingInputs() error {
	pc.result, pc.diag = pc.planner.SolveWithDiagnostics(pc.catalog, pc.model, true)
	return nil
}

func (pc *planningContext) theResultIs(kind string) error {
	want := map[string]planning.ResultKind{
		"a unique solution":  planning.ResultOneSolution,
		"no solution":        planning.ResultNoSolution,
		"multiple solutions": planning.ResultMultipleSolutions,
	}[kind]
	if pc.result == nil {
		return fmt.Errorf("model was not solved")
	}
	if pc.result.Kind() != want {
		return fmt.Errorf("expected %s, got %s (%+v)", want, pc.result.Kind(), pc.result)
	}
	return nil
}

func (pc *planningContext) theProcessRunsAt(kind, name string, rate float64) error {
	one, ok := pc.result.(planning.OneSolution)
	if !ok {
		return fmt.Errorf("expected a unique solution, got %s", pc.result.Kind())
	}
	p, err := pc.parseProcess(kind, name)
	if err != nil {
		return err
	}
	got, ok := one.Rates[p.Key()]
	if !ok {
		return fmt.Errorf("%s has no rate in the solution", p.Key())
	}
	if math.Abs(got-rate) > rateTolerance {
		return fmt.Errorf("expected %s to run at %g, got %g", p.Key(), rate, got)
	}
	return nil
}

func (pc *planningContext) theProcessRunsAtFraction(kind, name string, num, den float64) error {
	return pc.theProcessRunsAt(kind, name, num/den)
}

func (pc *planningContext) theInputIsNowPinnedAt(id string, amount float64) error {
	pin, found, err := pc.model.GetInput(id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("input %s is not pinned", id)
	}
	if math.Abs(pin.Amount-amount) > rateTolerance {
		return fmt.Errorf("expected input %s pinned at %g, got %g", id, amount, pin.Amount)
	}
	return nil
}

func (pc *planningContext) theOutputCanVary(id string) error {
	multi, ok := pc.result.(planning.MultipleSolutions)
	if !ok {
		return fmt.Errorf("expected multiple solutions, got %s", pc.result.Kind())
	}
	key, err := material.ParseKey(id)
	if err != nil {
		return err
	}
	if _, ok := multi.HigherBounds[key]; !ok {
		return fmt.Errorf("output %s has no higher bound in %v", id, multi.HigherBounds)
	}
	return nil
}

func (pc *planningContext) solveCompleted() error {
	if pc.diag.Failure != nil {
		return fmt.Errorf("solve failed: %w", pc.diag.Failure)
	}
	return nil
}

func (pc *planningContext) iLookUpTheInput(id string) error {
	pc.pin, pc.found, pc.err = pc.model.GetInput(id)
	return nil
}

func (pc *planningContext) theLookupFailsWithAMalformedIDError() error {
	var malformed *material.MalformedIDError
	if !errors.As(pc.err, &malformed) {
		return fmt.Errorf("expected malformed id error, got %v", pc.err)
	}
	return nil
}

func (pc *planningContext) theLookupFinds(amount float64) error {
	if pc.err != nil {
		return pc.err
	}
	if !pc.found {
		return fmt.Errorf("expected a pin, found none")
	}
	if pc.pin.Amount != amount {
		return fmt.Errorf("expected %g, got %g", amount, pc.pin.Amount)
	}
	return nil
}

func (pc *planningContext) theLookupFindsNothing() error {
	if pc.err != nil {
		return pc.err
	}
	if pc.found {
		return fmt.Errorf("expected no pin, found %g", pc.pin.Amount)
	}
	return nil
}

// InitializePlanningScenario registers the planning step definitions
func InitializePlanningScenario(ctx *godog.ScenarioContext) {
	pc := &planningContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		if err := helpers.TruncateAllTables(); err != nil {
			return c, err
		}
		return c, nil
	})

	ctx.Step(`^the sample catalog$`, pc.theSampleCatalog)
	ctx.Step(`^the (recipe|resource|plant) "([^"]*)" is selected$`, pc.theProcessIsSelected)
	ctx.Step(`^selecting the (recipe|resource|plant) "([^"]*)" again fails as a duplicate$`, pc.selectingTheProcessAgainFails)
	ctx.Step(`^selecting the (recipe|resource|plant) "([^"]*)" fails as unknown$`, pc.selectingAnUnknownProcessFails)
	ctx.Step(`^the (input|output) "([^"]*)" is pinned at (\d+(?:\.\d+)?)$`, pc.theMaterialIsPinned)
	ctx.Step(`^the (input|output) "([^"]*)" is unpinned$`, pc.theMaterialIsUnpinned)
	ctx.Step(`^the (recipe|resource|plant) "([^"]*)" runs in "([^"]*)" with (\d+) "([^"]*)" modules?$`, pc.theProcessRunsInWithModules)
	ctx.Step(`^the model is saved as project "([^"]*)" and reloaded$`, pc.theModelIsSavedAndReloaded)
	ctx.Step(`^I solve the model$`, pc.iSolveTheModel)
	ctx.Step(`^I solve the model generating inputs$`, pc.iSolveTheModelGeneratingInputs)
	ctx.Step(`^the result is (a unique solution|no solution|multiple solutions)$`, pc.theResultIs)
	ctx.Step(`^the (recipe|resource|plant) "([^"]*)" runs at (\d+(?:\.\d+)?) per second$`, pc.theProcessRunsAt)
	ctx.Step(`^the (recipe|resource|plant) "([^"]*)" runs at (\d+(?:\.\d+)?)/(\d+(?:\.\d+)?) per second$`, pc.theProcessRunsAtFraction)
	ctx.Step(`^the input "([^"]*)" is now pinned at (\d+(?:\.\d+)?)$`, pc.theInputIsNowPinnedAt)
	ctx.Step(`^the output "([^"]*)" can vary$`, pc.theOutputCanVary)
	ctx.Step(`^the solve completed$`, pc.solveCompleted)
	ctx.Step(`^I look up the input "([^"]*)"$`, pc.iLookUpTheInput)
	ctx.Step(`^the lookup fails with a malformed id error$`, pc.theLookupFailsWithAMalformedIDError)
	ctx.Step(`^the lookup finds (\d+(?:\.\d+)?)$`, pc.theLookupFinds)
	ctx.Step(`^the lookup finds nothing$`, pc.theLookupFindsNothing)
}
