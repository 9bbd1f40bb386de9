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

	"github.com/costela/golps/internal/tableau"
)

// Solve validates and solves a linear program given as plain data:
// objective coefficients, one matrix row and right-hand side per
// constraint, one operator per constraint and the optimization direction.
// Infeasible and unbounded problems are reported through the result's
// status; errors are returned for invalid input and solver failures only.
func Solve(objective []float64, matrix [][]float64, rhs []float64, ops []Operator, dir direction, opts ...Option) (*SolveResult, error) {
	return SolveWithContext(context.Background(), objective, matrix, rhs, ops, dir, opts...)
}

// SolveWithContext is Solve with cancellation. The context is checked
// between pivots; its error is returned as is.
func SolveWithContext(ctx context.Context, objective []float64, matrix [][]float64, rhs []float64, ops []Operator, dir direction, opts ...Option) (*SolveResult, error) {
	problem, err := NewProblem(objective, matrix, rhs, ops, dir)
	if err != nil {
		return nil, err
	}
	return problem.Solve(ctx, opts...)
}

// Solve runs the simplex on the problem.
func (p *Problem) Solve(ctx context.Context, opts ...Option) (*SolveResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying solve option: %w", err)
	}
	return p.solve(ctx, cfg)
}

func (p *Problem) solve(ctx context.Context, cfg config) (*SolveResult, error) {
	form, err := p.standardForm()
	if err != nil {
		return nil, fmt.Errorf("building standard form: %w", err)
	}

	cfg.logger.Print(fmt.Sprintf("solving %s problem with %d variables and %d constraints",
		p.dir, p.VariableCount(), p.ConstraintCount()))

	engine := tableau.New(form, tableau.Config{
		Tolerance:     cfg.tolerance,
		MaxIterations: cfg.maxIterations,
		Logger:        cfg.logger,
	})

	state, err := engine.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, tableau.ErrIterationLimit):
		cfg.logger.Print(err.Error())
		return nil, ErrIterationLimitExceeded
	case errors.Is(err, tableau.ErrPhaseOneUnbounded):
		cfg.logger.Print(err.Error())
		return nil, ErrNumericalFailure
	default:
		return nil, err
	}

	res := &SolveResult{iterations: engine.Iterations()}

	switch state {
	case tableau.Infeasible:
		res.status = SolutionInfeasible
		return res, nil
	case tableau.Unbounded:
		res.status = SolutionUnbounded
		return res, nil
	}

	sol, err := engine.Solution()
	if err != nil {
		return nil, err
	}

	res.status = SolutionOptimal
	res.objective = sol.Objective
	res.values = sol.X
	res.reducedCosts = sol.ReducedCosts
	res.duals = sol.Duals
	res.slacks = sol.Slacks

	return res, nil
}
