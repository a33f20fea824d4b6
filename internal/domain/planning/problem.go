package planning

import (
	"errors"
	"fmt"
	"math"
)

// Errors a LinearSolver reports for problems without an optimum
var (
	ErrInfeasible = errors.New("linear problem is infeasible")
	ErrUnbounded  = errors.New("linear problem is unbounded")
)

// VariableID indexes Problem.Variables
type VariableID int

// Variable is a continuous decision variable with finite lower bound.
// Upper is +Inf when the variable has no ceiling.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
}

// Term is coefficient * variable
type Term struct {
	Var  VariableID
	Coef float64
}

// Relation is the comparison of a constraint's left side against its right side
type Relation int

const (
	GreaterEq Relation = iota
	LessEq
	Equal
)

func (r Relation) String() string {
	switch r {
	case GreaterEq:
		return ">="
	case LessEq:
		return "<="
	case Equal:
		return "="
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// Constraint is Σ terms <relation> RHS
type Constraint struct {
	Name     string
	Terms    []Term
	Relation Relation
	RHS      float64
}

// Sense selects minimization or maximization
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "max"
	}
	return "min"
}

// Objective is the linear function to optimize
type Objective struct {
	Sense Sense
	Terms []Term
}

// Problem is a self-contained linear program. Solvers must not retain or mutate it.
type Problem struct {
	Variables   []Variable
	Constraints []Constraint
	Objective   Objective
}

// AddVariable appends a variable bounded below by lower and returns its id
func (p *Problem) AddVariable(name string, lower float64) VariableID {
	p.Variables = append(p.Variables, Variable{Name: name, Lower: lower, Upper: math.Inf(1)})
	return VariableID(len(p.Variables) - 1)
}

// AddConstraint appends a constraint
func (p *Problem) AddConstraint(c Constraint) {
	p.Constraints = append(p.Constraints, c)
}

// Clone returns a deep copy, sharing no slices with p
func (p *Problem) Clone() *Problem {
	clone := &Problem{
		Variables:   append([]Variable(nil), p.Variables...),
		Constraints: make([]Constraint, len(p.Constraints)),
		Objective: Objective{
			Sense: p.Objective.Sense,
			Terms: append([]Term(nil), p.Objective.Terms...),
		},
	}
	for i, c := range p.Constraints {
		c.Terms = append([]Term(nil), c.Terms...)
		clone.Constraints[i] = c
	}
	return clone
}

// Validate checks that every term references an existing variable and bounds are sane
func (p *Problem) Validate() error {
	for i, v := range p.Variables {
		if math.IsInf(v.Lower, 0) || math.IsNaN(v.Lower) {
			return fmt.Errorf("variable %d (%s): lower bound must be finite", i, v.Name)
		}
		if v.Upper < v.Lower {
			return fmt.Errorf("variable %d (%s): upper bound %g below lower bound %g", i, v.Name, v.Upper, v.Lower)
		}
	}
	check := func(where string, terms []Term) error {
		for _, t := range terms {
			if int(t.Var) < 0 || int(t.Var) >= len(p.Variables) {
				return fmt.Errorf("%s: unknown variable %d", where, t.Var)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%s: coefficient of variable %d is not finite", where, t.Var)
			}
		}
		return nil
	}
	for i, c := range p.Constraints {
		if err := check(fmt.Sprintf("constraint %d (%s)", i, c.Name), c.Terms); err != nil {
			return err
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("constraint %d (%s): right-hand side is not finite", i, c.Name)
		}
	}
	return check("objective", p.Objective.Terms)
}

// Solution holds optimal variable values, indexed by VariableID
type Solution struct {
	Values    []float64
	Objective float64
}

// Value returns the optimal value of a variable
func (s *Solution) Value(id VariableID) float64 {
	return s.Values[id]
}

// LinearSolver finds an optimum of a linear program.
//
// Implementations are stateless: every call is independent. They return ErrInfeasible or
// ErrUnbounded (possibly wrapped) when no optimum exists, and any other error for backend
// failures.
type LinearSolver interface {
	Solve(p *Problem) (*Solution, error)
}
