/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

/*

GoLPS is a library for modelling and solving linear programming problems
with a pure Go two-phase simplex.

All variables are continuous and non-negative. As an example of the API, the
model of the following problem:

    Maximize:
      z = 3 x1 + 5 x2
    Subject to:
      x1 <= 4
      2 x2 <= 12
      3 x1 + 2 x2 <= 18

can be expressed with GoLPS like this:

	package main

	import (
		"fmt"

		"github.com/costela/golps"
	)

	func main() {
		model, _ := golps.NewModel("wyndor", golps.Maximize)
		x1, _ := model.AddDefinedVariable("x1", 3)
		x2, _ := model.AddVariable("x2")
		x2.SetObjectiveCoefficient(5)

		model.AddConstraint(golps.LessOrEqual, 4, []*golps.Variable{x1}, []float64{1})
		model.AddConstraint(golps.LessOrEqual, 12, []*golps.Variable{x2}, []float64{2})
		model.AddConstraint(golps.LessOrEqual, 18, []*golps.Variable{x1, x2}, []float64{3, 2})

		result, _ := model.Solve() // you should check for errors

		fmt.Printf("solution optimal? %t\n", result.Status() == golps.SolutionOptimal)
		fmt.Printf("z = %f\n", result.ObjectiveValue())
		fmt.Printf("x1 = %f\n", result.Value(x1))
		fmt.Printf("shadow prices = %v\n", result.Duals())
	}

Problems given as plain vectors can be solved directly with Solve.

*/
package golps

import (
	"context"
	"fmt"
	"math"
	"sync"
)

/* Types */

type Model struct {
	mu          sync.RWMutex
	name        string
	dir         direction
	vars        []*Variable
	constraints []constraint
	cfg         config
}

type constraint struct {
	name string
	op   Operator
	rhs  float64
	cols []int
	coef []float64
}

/* Model related functions */

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and a optimization direction (either
// Minimize or Maximize)
func NewModel(name string, dir direction, opts ...Option) (*Model, error) {
	if !dir.valid() {
		return nil, &InvalidSenseError{Sense: dir.String()}
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying model option: %w", err)
	}

	return &Model{
		name: name,
		dir:  dir,
		cfg:  cfg,
	}, nil
}

// Clone returns a copy of the model.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	newModel := &Model{
		name:        model.name,
		dir:         model.dir,
		cfg:         model.cfg,
		vars:        make([]*Variable, len(model.vars)),
		constraints: make([]constraint, len(model.constraints)),
	}

	for i, v := range model.vars {
		newModel.vars[i] = &Variable{
			model:       newModel,
			index:       v.index,
			name:        v.name,
			coefficient: v.coefficient,
		}
	}

	for i, c := range model.constraints {
		c.cols = append([]int(nil), c.cols...)
		c.coef = append([]float64(nil), c.coef...)
		newModel.constraints[i] = c
	}

	return newModel
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.name
}

// SetDirection changes the direction of the model's optimization
func (model *Model) SetDirection(dir direction) error {
	if !dir.valid() {
		return &InvalidSenseError{Sense: dir.String()}
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	model.dir = dir

	return nil
}

// Direction returns the model's current optimization direction
func (model *Model) Direction() direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.dir
}

/* Column-related functions */

func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.vars)
}

// Variables returns a new slice with the model's variables. Changes to the
// slice will not be reflected in the model.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return append([]*Variable(nil), model.vars...)
}

// AddVariable adds a variable to the linear programming model and
// returns a reference to it.
// A freshly instantiated variable is non-negative and has an objective
// coefficient of 1.
//
// A variable is bound to its model. Using a variable created in one model
// in constraints of a different model is an error.
//
// Empty names will automatically replaced by a unique name.
func (model *Model) AddVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, 1)
}

// AddDefinedVariable add a variable to the linear programming model
// with its objective coefficient passed as argument.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddDefinedVariable(name string, coefficient float64) (v *Variable, err error) {
	if math.IsNaN(coefficient) || math.IsInf(coefficient, 0) {
		return nil, fmt.Errorf("objective coefficient of %q: %w", name, ErrNonFinite)
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	size := len(model.vars)
	if name == "" {
		name = fmt.Sprintf("x%d", size+1)
	}

	v = &Variable{
		model:       model,
		index:       size,
		name:        name,
		coefficient: coefficient,
	}
	model.vars = append(model.vars, v)

	return v, nil
}

// SetObjectiveFunction defines the objective function for the model as
// a slice of coefficients and a slice of its respective variables.
// E.g.: an objective function of the form 2x+3y is passed as:
//   SetObjectiveFunction([]float64{2,3}, []*Variable{x, y})
// Where x and y are the return values of one of the Add*Variable
// functions.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return &DimensionError{Name: "objective variables", Got: len(vars), Want: len(coefs)}
	}
	if err := model.checkVariables(vars); err != nil {
		return err
	}

	for i, v := range vars {
		v.SetObjectiveCoefficient(coefs[i])
	}
	return nil
}

func (model *Model) checkVariables(vars []*Variable) error {
	for _, v := range vars {
		if v == nil || v.model != model {
			return fmt.Errorf("variable does not belong to model %q", model.Name())
		}
	}
	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints in
// the model
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.constraints)
}

// AddConstraint adds the constraint Σ coefs[i]·vars[i] op rhs to the model.
// Variables not listed have a zero coefficient. The constraint is named
// c<N> after its position.
func (model *Model) AddConstraint(op Operator, rhs float64, vars []*Variable, coefs []float64) error {
	return model.AddNamedConstraint("", op, rhs, vars, coefs)
}

// AddNamedConstraint is like AddConstraint with an explicit name.
func (model *Model) AddNamedConstraint(name string, op Operator, rhs float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %w",
			&DimensionError{Name: "coefficients", Got: len(coefs), Want: len(vars)})
	}
	if !op.valid() {
		return &InvalidOperatorError{Constraint: model.ConstraintCount(), Operator: op.String()}
	}
	if err := model.checkVariables(vars); err != nil {
		return err
	}

	c := constraint{
		op:   op,
		rhs:  rhs,
		cols: make([]int, len(vars)),
		coef: append([]float64(nil), coefs...),
	}
	for i, v := range vars {
		c.cols[i] = v.index
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("c%d", len(model.constraints)+1)
	}
	c.name = name
	model.constraints = append(model.constraints, c)

	return nil
}

// AddBoundedConstraint adds lower <= Σ coefs[i]·vars[i] <= upper as one or
// two constraints. Infinite bounds are left out; equal bounds give a single
// equality.
func (model *Model) AddBoundedConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	switch {
	case math.IsInf(lower, 0) && math.IsInf(upper, 0):
		// no constraints
		return nil
	case math.IsInf(lower, 0):
		return model.AddConstraint(LessOrEqual, upper, vars, coefs)
	case math.IsInf(upper, 0):
		return model.AddConstraint(GreaterOrEqual, lower, vars, coefs)
	case upper == lower:
		return model.AddConstraint(Equal, upper, vars, coefs)
	default:
		if err := model.AddConstraint(LessOrEqual, upper, vars, coefs); err != nil {
			return err
		}
		return model.AddConstraint(GreaterOrEqual, lower, vars, coefs)
	}
}

// Problem returns an immutable snapshot of the model.
func (model *Model) Problem() (*Problem, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	n := len(model.vars)
	objective := make([]float64, n)
	varNames := make([]string, n)
	for i, v := range model.vars {
		objective[i] = v.coefficient
		varNames[i] = v.name
	}

	m := len(model.constraints)
	matrix := make([][]float64, m)
	rhs := make([]float64, m)
	ops := make([]Operator, m)
	consNames := make([]string, m)
	for i, c := range model.constraints {
		matrix[i] = make([]float64, n)
		for k, col := range c.cols {
			matrix[i][col] += c.coef[k]
		}
		rhs[i] = c.rhs
		ops[i] = c.op
		consNames[i] = c.name
	}

	return NewProblem(objective, matrix, rhs, ops, model.dir,
		VariableNames(varNames...), ConstraintNames(consNames...))
}

// Solve attempts to find an optimal solution to the model.
// Information about the solution can be queried from the returned
// SolveResult value.
func (model *Model) Solve() (res *SolveResult, err error) {
	return model.SolveWithContext(context.Background())
}

// SolveWithContext wraps Solve() with a context. If the context is cancelled
// or times out, the solution search is aborted and the context error is
// returned.
func (model *Model) SolveWithContext(ctx context.Context) (res *SolveResult, err error) {
	problem, err := model.Problem()
	if err != nil {
		return nil, err
	}

	model.mu.RLock()
	cfg := model.cfg
	model.mu.RUnlock()

	return problem.solve(ctx, cfg)
}
