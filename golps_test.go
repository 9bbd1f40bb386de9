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
package golps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	delta = 0.0000001 // acceptable numerical deviation for test results
)

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) Print(v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = append(l.lines, fmt.Sprint(v...))
}

// newWyndorModel builds: max 3x1 + 5x2 s.t. x1 <= 4, 2x2 <= 12, 3x1 + 2x2 <= 18
func newWyndorModel(t *testing.T, opts ...Option) (*Model, *Variable, *Variable) {
	t.Helper()

	model, err := NewModel("wyndor", Maximize, opts...)
	require.NoError(t, err)

	x1, err := model.AddDefinedVariable("x1", 3)
	require.NoError(t, err)
	x2, err := model.AddDefinedVariable("x2", 5)
	require.NoError(t, err)

	require.NoError(t, model.AddConstraint(LessOrEqual, 4, []*Variable{x1}, []float64{1}))
	require.NoError(t, model.AddConstraint(LessOrEqual, 12, []*Variable{x2}, []float64{2}))
	require.NoError(t, model.AddConstraint(LessOrEqual, 18, []*Variable{x1, x2}, []float64{3, 2}))

	return model, x1, x2
}

func TestInstantiation(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	assert.Equal(t, name, model.Name())
	assert.Equal(t, Maximize, model.Direction())

	require.NoError(t, model.SetDirection(Minimize))
	assert.Equal(t, Minimize, model.Direction())
}

func TestInstantiationInvalid(t *testing.T) {
	_, err := NewModel("test", direction(3))
	var senseErr *InvalidSenseError
	assert.ErrorAs(t, err, &senseErr)

	_, err = NewModel("test", Minimize, WithTolerance(-1))
	assert.Error(t, err)

	model, err := NewModel("test", Minimize)
	require.NoError(t, err)
	assert.ErrorAs(t, model.SetDirection(direction(-1)), &senseErr)
}

func TestClone(t *testing.T) {
	model, x1, _ := newWyndorModel(t)

	modelClone := model.Clone()

	assert.Equal(t, model.Name(), modelClone.Name())
	assert.Equal(t, model.Direction(), modelClone.Direction())
	assert.Equal(t, model.VariableCount(), modelClone.VariableCount())
	assert.Equal(t, model.ConstraintCount(), modelClone.ConstraintCount())

	// changes to the clone must not leak into the original
	modelClone.Variables()[0].SetObjectiveCoefficient(100)
	assert.Equal(t, 3.0, x1.Coefficient())

	res, err := modelClone.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 400.0+5*3, res.ObjectiveValue(), delta) // x1 = 4, x2 = 3
}

func TestAddVariableWithDetails(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, err := model.AddDefinedVariable("x", 3.1416)
	require.NoError(t, err)

	assert.Equal(t, "x", v1.Name())
	assert.Equal(t, 0, v1.Index())
	assert.Equal(t, 3.1416, v1.Coefficient())

	v2, err := model.AddVariable("")
	require.NoError(t, err)

	assert.Equal(t, "x2", v2.Name())
	assert.Equal(t, 1, v2.Index())
	assert.Equal(t, 1.0, v2.Coefficient())

	_, err = model.AddDefinedVariable("y", math.NaN())
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, 2, model.VariableCount())
}

func TestSetObjectiveFunction(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, _ := model.AddVariable("x")
	v2, _ := model.AddVariable("y")
	v3, _ := model.AddVariable("z")

	vars := []*Variable{v1, v2, v3}
	coefs := []float64{1.3, 2.7182, 3.1416}
	require.NoError(t, model.SetObjectiveFunction(coefs, vars))
	for i, coef := range coefs {
		assert.Equal(t, coef, vars[i].Coefficient())
	}

	var dimErr *DimensionError
	assert.ErrorAs(t, model.SetObjectiveFunction(coefs[:2], vars), &dimErr)
}

func TestForeignVariable(t *testing.T) {
	model, _, _ := newWyndorModel(t)
	other, _, _ := newWyndorModel(t)

	foreign := other.Variables()[0]
	assert.Error(t, model.AddConstraint(LessOrEqual, 1, []*Variable{foreign}, []float64{1}))
	assert.Error(t, model.SetObjectiveFunction([]float64{1}, []*Variable{foreign}))
	assert.Equal(t, 3, model.ConstraintCount())
}

func TestAddConstraintInvalid(t *testing.T) {
	model, x1, x2 := newWyndorModel(t)

	var dimErr *DimensionError
	assert.ErrorAs(t, model.AddConstraint(LessOrEqual, 1, []*Variable{x1, x2}, []float64{1}), &dimErr)

	var opErr *InvalidOperatorError
	assert.ErrorAs(t, model.AddConstraint(Operator(9), 1, []*Variable{x1}, []float64{1}), &opErr)
	assert.Equal(t, 3, opErr.Constraint)

	assert.Equal(t, 3, model.ConstraintCount())
}

func TestProblemSnapshot(t *testing.T) {
	model, x1, x2 := newWyndorModel(t)
	require.NoError(t, model.AddNamedConstraint("mixed", GreaterOrEqual, 1, []*Variable{x2, x1, x2}, []float64{1, 2, 3}))

	problem, err := model.Problem()
	require.NoError(t, err)

	assert.Equal(t, Maximize, problem.Direction())
	assert.Equal(t, []float64{3, 5}, problem.Objective())
	assert.Equal(t, []string{"x1", "x2"}, problem.VariableNames())
	assert.Equal(t, []string{"c1", "c2", "c3", "mixed"}, problem.ConstraintNames())

	coefs, op, rhs := problem.Constraint(3)
	assert.Equal(t, []float64{2, 4}, coefs) // repeated variables are summed
	assert.Equal(t, GreaterOrEqual, op)
	assert.Equal(t, 1.0, rhs)
}

func TestSolveBoundedConstraint(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x1, _ := model.AddDefinedVariable("x1", 1)
	x2, _ := model.AddDefinedVariable("x2", 1)

	require.NoError(t, model.AddBoundedConstraint(1, 3, []*Variable{x1, x2}, []float64{1, 1}))
	require.NoError(t, model.AddBoundedConstraint(math.Inf(-1), 2, []*Variable{x1}, []float64{1}))
	require.NoError(t, model.AddBoundedConstraint(0.5, 0.5, []*Variable{x2}, []float64{1}))
	require.NoError(t, model.AddBoundedConstraint(math.Inf(-1), math.Inf(1), []*Variable{x1}, []float64{1}))
	assert.Equal(t, 4, model.ConstraintCount())

	res, err := model.Solve()
	require.NoError(t, err)

	assert.Equal(t, SolutionOptimal, res.Status())
	assert.InDelta(t, 2.5, res.ObjectiveValue(), delta)
	assert.InDelta(t, 2, res.Value(x1), delta)
	assert.InDelta(t, 0.5, res.Value(x2), delta)
}

func TestSolveLP(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x1, _ := model.AddDefinedVariable("x1", 1)
	x2, _ := model.AddDefinedVariable("x2", 2)
	x3, _ := model.AddDefinedVariable("x3", -1)

	model.AddConstraint(LessOrEqual, 14, []*Variable{x1, x2, x3}, []float64{2, 1, 1})
	model.AddConstraint(LessOrEqual, 28, []*Variable{x1, x2, x3}, []float64{4, 2, 3})
	model.AddConstraint(LessOrEqual, 30, []*Variable{x1, x2, x3}, []float64{2, 5, 5})

	res, err := model.Solve()
	require.NoError(t, err)

	expected_xs := []float64{5, 4, 0}
	expected_obj := 13.0

	assert.Equal(t, SolutionOptimal, res.Status())

	// ignore numerical inaccuracies
	assert.InDelta(t, expected_obj, res.ObjectiveValue(), delta)

	for i, x := range []*Variable{x1, x2, x3} {
		assert.InDelta(t, expected_xs[i], res.Value(x), delta)
	}
}

func TestSolveWyndorModel(t *testing.T) {
	model, x1, x2 := newWyndorModel(t)

	res, err := model.Solve()
	require.NoError(t, err)

	assert.Equal(t, SolutionOptimal, res.Status())
	assert.InDelta(t, 36, res.ObjectiveValue(), delta)
	assert.InDelta(t, 2, res.Value(x1), delta)
	assert.InDelta(t, 6, res.PrimalValue(x2), delta)
	assert.InDelta(t, 0, res.DualValue(x1), delta)
	assert.InDeltaSlice(t, []float64{0, 1.5, 1}, res.Duals(), delta)
	assert.InDeltaSlice(t, []float64{2, 0, 0}, res.Slacks(), delta)
	assert.Equal(t, 2, res.Iterations())
}

func TestLogger(t *testing.T) {
	logger := &recordLogger{}
	model, _, _ := newWyndorModel(t, WithLogger(logger))

	_, err := model.Solve()
	require.NoError(t, err)

	require.NotEmpty(t, logger.lines)
	assert.True(t, strings.HasPrefix(logger.lines[0], "solving max problem"))

	pivots := 0
	for _, line := range logger.lines {
		if strings.HasPrefix(line, "pivot ") {
			pivots++
		}
	}
	assert.Equal(t, 2, pivots)
}

func TestContext(t *testing.T) {
	model, _, _ := newWyndorModel(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := model.SolveWithContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIterationLimit(t *testing.T) {
	model, _, _ := newWyndorModel(t, WithMaxIterations(1))

	res, err := model.Solve()
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrIterationLimitExceeded))
	assert.EqualError(t, err, "simplex iteration limit exceeded")

	model, _, _ = newWyndorModel(t, WithMaxIterations(2))
	_, err = model.Solve()
	assert.NoError(t, err)
}

// Try to detect shared state between solves
func TestParallel(t *testing.T) {
	model, _, _ := newWyndorModel(t)

	const workers = 8
	results := make([]*SolveResult, workers)
	errs := make([]error, workers)

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = model.Solve()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.InDelta(t, 36, results[i].ObjectiveValue(), delta)
	}
}
