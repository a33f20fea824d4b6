package process

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

// Ingredients returns the material lines consumed by one activation of p.
//
// Panics with *catalog.MissingEntryError if p names an entry the catalog does not hold.
func Ingredients(cat *catalog.Catalog, p Process) []material.Material {
	ingredients, _ := lines(cat, p)
	return ingredients
}

// Products returns the material lines yielded by one activation of p.
//
// Panics with *catalog.MissingEntryError if p names an entry the catalog does not hold.
func Products(cat *catalog.Catalog, p Process) []material.Material {
	_, products := lines(cat, p)
	return products
}

// lines is the single dispatch point over Kind
func lines(cat *catalog.Catalog, p Process) (ingredients, products []material.Material) {
	switch p.Kind {
	case KindResource:
		res, ok := cat.Resource(p.Name)
		if !ok {
			panic(&catalog.MissingEntryError{Kind: "resource", Name: p.Name})
		}
		if res.Minable.InputFluid != nil {
			ingredients = []material.Material{*res.Minable.InputFluid}
		}
		return ingredients, res.Minable.Results

	case KindPlant:
		plant, ok := cat.Plant(p.Name)
		if !ok {
			panic(&catalog.MissingEntryError{Kind: "plant", Name: p.Name})
		}
		ingredients = make([]material.Material, 0, len(plant.Seeds))
		for _, seed := range plant.Seeds {
			ingredients = append(ingredients, material.NewItem(seed, 1))
		}
		return ingredients, plant.Minable.Results

	case KindRecipe:
		recipe, ok := cat.Recipe(p.Name)
		if !ok {
			panic(&catalog.MissingEntryError{Kind: "recipe", Name: p.Name})
		}
		return recipe.Ingredients, recipe.Results
	}

	panic(&InvalidKindError{Value: string(p.Kind)})
}

// Exists reports whether the catalog holds an entry for the given kind and name.
// Callers use it to validate user input before building a Process.
func Exists(cat *catalog.Catalog, kind Kind, name string) bool {
	if cat == nil {
		return false
	}
	switch kind {
	case KindResource:
		_, ok := cat.Resource(name)
		return ok
	case KindPlant:
		_, ok := cat.Plant(name)
		return ok
	case KindRecipe:
		_, ok := cat.Recipe(name)
		return ok
	}
	return false
}

// Validate returns a *catalog.UnknownPrototypeError when p is not in the catalog
func Validate(cat *catalog.Catalog, p Process) error {
	if !p.Kind.IsValid() {
		return &InvalidKindError{Value: string(p.Kind)}
	}
	if !Exists(cat, p.Kind, p.Name) {
		return &catalog.UnknownPrototypeError{Kind: string(p.Kind), Name: p.Name}
	}
	return nil
}
