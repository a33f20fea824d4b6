package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog/catalogtest"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
	"github.com/andrescamacho/factory-planner-go/test/helpers"
)

func newGearProject(t *testing.T, clock shared.Clock, id, name string) *project.Project {
	t.Helper()
	p, err := project.NewProject(id, name, catalogtest.Sample(), clock)
	require.NoError(t, err)
	_, err = p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)
	require.NoError(t, p.Pin(planning.DirectionOutput, material.ItemKey("iron-gear-wheel"), 100))
	require.NoError(t, p.ConfigureProcess(process.Key{Kind: process.KindRecipe, Name: "iron-gear-wheel"}, planning.ProcessSettings{
		Machine: "assembling-machine-2",
		Modules: []string{"productivity-module"},
	}))
	return p
}

func TestProjectRepository_CreateAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	repo := persistence.NewGormProjectRepository(db, clock)
	p := newGearProject(t, clock, "p-1", "main base")

	// Act
	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), "p-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "main base", found.Name())
	assert.Equal(t, p.Model().Processes, found.Model().Processes)
	assert.Equal(t, p.Model().Outputs, found.Model().Outputs)
	assert.Equal(t, p.Catalog().Summary(), found.Catalog().Summary())
	assert.Equal(t, p.Settings(), found.Settings())
	assert.True(t, p.CreatedAt().Equal(found.CreatedAt()))
	assert.InDelta(t, 0.04, found.Model().Processes[0].Productivity, 1e-12)
}

func TestProjectRepository_FindByName(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormProjectRepository(db, nil)
	require.NoError(t, repo.Create(context.Background(), newGearProject(t, nil, "p-1", "alpha")))

	found, err := repo.FindByName(context.Background(), "alpha")

	require.NoError(t, err)
	assert.Equal(t, "p-1", found.ID())
}

func TestProjectRepository_CreateRejectsDuplicateName(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormProjectRepository(db, nil)
	require.NoError(t, repo.Create(context.Background(), newGearProject(t, nil, "p-1", "alpha")))

	// Act
	err := repo.Create(context.Background(), newGearProject(t, nil, "p-2", "alpha"))

	// Assert
	var taken *project.ProjectNameTakenError
	require.True(t, errors.As(err, &taken), "expected ProjectNameTakenError, got %v", err)
	assert.Equal(t, "alpha", taken.Name)
}

func TestProjectRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormProjectRepository(db, nil)

	_, err := repo.FindByID(context.Background(), "missing")
	var notFound *project.ProjectNotFoundError
	assert.True(t, errors.As(err, &notFound))

	err = repo.Delete(context.Background(), "missing")
	assert.True(t, errors.As(err, &notFound))

	ghost, err := project.NewProject("ghost", "ghost", nil, nil)
	require.NoError(t, err)
	err = repo.Update(context.Background(), ghost)
	assert.True(t, errors.As(err, &notFound))
}

func TestProjectRepository_UpdatePersistsWriteBack(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	repo := persistence.NewGormProjectRepository(db, clock)
	p, err := project.NewProject("p-1", "gears", catalogtest.Sample(), clock)
	require.NoError(t, err)
	_, err = p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)
	require.NoError(t, p.Pin(planning.DirectionOutput, material.ItemKey("iron-gear-wheel"), 100))
	require.NoError(t, repo.Create(context.Background(), p))

	// Act
	clock.Advance(time.Minute)
	require.NoError(t, p.Pin(planning.DirectionInput, material.ItemKey("iron-plate"), 200))
	require.NoError(t, repo.Update(context.Background(), p))
	found, err := repo.FindByID(context.Background(), "p-1")

	// Assert
	require.NoError(t, err)
	pin, ok, err := found.Model().GetInput("item:iron-plate")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 200.0, pin.Amount)
	assert.True(t, found.UpdatedAt().After(found.CreatedAt()))
}

func TestProjectRepository_ListMostRecentFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	repo := persistence.NewGormProjectRepository(db, clock)
	require.NoError(t, repo.Create(context.Background(), newGearProject(t, clock, "p-1", "older")))
	clock.Advance(time.Hour)
	require.NoError(t, repo.Create(context.Background(), newGearProject(t, clock, "p-2", "newer")))

	// Act
	projects, err := repo.List(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "newer", projects[0].Name())
	assert.Equal(t, "older", projects[1].Name())
}

func TestProjectRepository_Delete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormProjectRepository(db, nil)
	require.NoError(t, repo.Create(context.Background(), newGearProject(t, nil, "p-1", "alpha")))

	require.NoError(t, repo.Delete(context.Background(), "p-1"))

	_, err := repo.FindByID(context.Background(), "p-1")
	var notFound *project.ProjectNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestProjectRepository_MalformedMaterialIDFailsLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormProjectRepository(db, nil)
	require.NoError(t, db.Create(&persistence.ProjectModel{
		ID:        "broken",
		Name:      "broken",
		Catalog:   `{}`,
		Model:     `{"processes":[],"inputs":{"ore:iron":5},"outputs":{}}`,
		Settings:  `{}`,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error)

	// Act
	_, err := repo.FindByID(context.Background(), "broken")

	// Assert
	var malformed *material.MalformedIDError
	require.True(t, errors.As(err, &malformed), "expected MalformedIDError, got %v", err)
	assert.Equal(t, "ore:iron", malformed.ID)
}
