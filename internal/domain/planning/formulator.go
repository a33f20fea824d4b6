package planning

import (
	"math"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// ceilingSlack widens every input ceiling by this fraction of max(1, ceiling). Written-back
// minimal inputs can land a few ulps under the true requirement, and the row they bound is
// tight at the optimum.
const ceilingSlack = 1e-11

// ceilingRHS is the right-hand side of a balance row capped by an input ceiling
func ceilingRHS(ceiling float64) float64 {
	return -(ceiling + ceilingSlack*math.Max(1, ceiling))
}

// probedVariable is a material variable whose range the prober measures
type probedVariable struct {
	Material material.Key
	Var      VariableID
}

// formulation is the linear system derived from a Model.
// base carries variables and constraints but no objective; every solve works on a clone.
type formulation struct {
	base      *Problem
	rates     []VariableID // parallel to Model.Processes
	inputs    []probedVariable
	outputs   []probedVariable
	materials []material.Key
}

// processLines caches the catalog lookups of one process
type processLines struct {
	ingredients []material.Material
	products    []material.Material
}

// formulate builds one rate variable per process and one balance constraint per material:
//
//	Σ rate·avg_product − Σ rate·avg_ingredient ≥ bound(material)
//
// Pinned output floors that apply become output variables o ≥ F (net − o ≥ 0).
// With generateInputs, unpinned materials no selected process produces get a discovered
// input variable d ≥ 0 (net + d ≥ 0).
func formulate(cat *catalog.Catalog, model *Model, generateInputs bool) *formulation {
	f := &formulation{
		base:  &Problem{},
		rates: make([]VariableID, len(model.Processes)),
	}

	lines := make([]processLines, len(model.Processes))
	produced := make(map[material.Key]bool)
	seen := make(map[material.Key]bool)

	addMaterial := func(key material.Key) {
		if !seen[key] {
			seen[key] = true
			f.materials = append(f.materials, key)
		}
	}

	for i, p := range model.Processes {
		f.rates[i] = f.base.AddVariable("rate["+p.Key().String()+"]", 0)
		lines[i] = processLines{
			ingredients: process.Ingredients(cat, p),
			products:    process.Products(cat, p),
		}
		for _, ing := range lines[i].ingredients {
			addMaterial(ing.Key())
		}
		for _, prod := range lines[i].products {
			addMaterial(prod.Key())
			produced[prod.Key()] = true
		}
	}

	// An output nothing touches still gets a constraint: 0 ≥ F is infeasible for F > 0.
	for _, key := range material.SortedKeys(model.Outputs) {
		addMaterial(key)
	}

	for _, key := range f.materials {
		terms := f.netProduction(model, lines, key)

		ceiling, hasCeiling := model.Inputs[key]
		floor, hasFloor := model.Outputs[key]

		constraint := Constraint{Name: key.ID(), Terms: terms, Relation: GreaterEq}

		switch {
		case hasCeiling && hasFloor && -ceiling < floor:
			constraint.RHS = ceilingRHS(ceiling)
		case hasFloor:
			o := f.base.AddVariable("output["+key.ID()+"]", floor)
			f.outputs = append(f.outputs, probedVariable{Material: key, Var: o})
			constraint.Terms = append(constraint.Terms, Term{Var: o, Coef: -1})
		case hasCeiling:
			constraint.RHS = ceilingRHS(ceiling)
		case generateInputs && !produced[key]:
			d := f.base.AddVariable("input["+key.ID()+"]", 0)
			f.inputs = append(f.inputs, probedVariable{Material: key, Var: d})
			constraint.Terms = append(constraint.Terms, Term{Var: d, Coef: 1})
		}

		f.base.AddConstraint(constraint)
	}

	return f
}

// netProduction returns the rate terms of a material's balance, one per process touching it
func (f *formulation) netProduction(model *Model, lines []processLines, key material.Key) []Term {
	var terms []Term
	for i, p := range model.Processes {
		coef := 0.0
		for _, prod := range lines[i].products {
			if prod.Key() == key {
				coef += prod.AverageAmount(p.Productivity)
			}
		}
		for _, ing := range lines[i].ingredients {
			if ing.Key() == key {
				coef -= ing.AverageAmount(p.Productivity)
			}
		}
		if coef != 0 {
			terms = append(terms, Term{Var: f.rates[i], Coef: coef})
		}
	}
	return terms
}

// primary returns a fresh problem minimizing the sum of all rates
func (f *formulation) primary() *Problem {
	p := f.base.Clone()
	p.Objective = Objective{Sense: Minimize, Terms: make([]Term, 0, len(f.rates))}
	for _, r := range f.rates {
		p.Objective.Terms = append(p.Objective.Terms, Term{Var: r, Coef: 1})
	}
	return p
}

// probe returns a fresh problem optimizing a single variable
func (f *formulation) probe(v VariableID, sense Sense) *Problem {
	p := f.base.Clone()
	p.Objective = Objective{Sense: sense, Terms: []Term{{Var: v, Coef: 1}}}
	return p
}
