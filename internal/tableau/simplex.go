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

package tableau

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Run drives the state machine until it reaches Optimal, Infeasible or
// Unbounded. A cancelled ctx is checked before every pivot and its error is
// returned as is.
func (e *Engine) Run(ctx context.Context) (State, error) {
	for !e.state.Terminal() {
		switch e.state {
		case Phase1Running:
			unbounded, err := e.iterate(ctx, true)
			if err != nil {
				return e.state, err
			}
			if unbounded {
				return e.state, errors.Wrapf(ErrPhaseOneUnbounded, "after %d pivots", e.iterations)
			}
			e.state = Phase1Done

		case Phase1Done:
			mass := e.objectiveValue()
			e.cfg.Logger.Print(fmt.Sprintf("phase 1 finished after %d pivots, artificial mass %g", e.iterations, mass))
			if mass > e.cfg.Tolerance {
				e.state = Infeasible
				continue
			}
			e.evictArtificials()
			e.loadObjective(e.form.Cost)
			e.state = Phase2Running

		case Phase2Running:
			unbounded, err := e.iterate(ctx, false)
			if err != nil {
				return e.state, err
			}
			if unbounded {
				e.state = Unbounded
			} else {
				e.state = Optimal
			}
			e.cfg.Logger.Print(fmt.Sprintf("phase 2 finished after %d pivots: %s", e.iterations, e.state))
		}
	}

	return e.state, nil
}

// iterate pivots on the loaded objective until no reduced cost is negative.
// It reports whether an entering column without a leaving row was found.
func (e *Engine) iterate(ctx context.Context, phaseOne bool) (unbounded bool, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		enter := e.entering(phaseOne)
		if enter < 0 {
			return false, nil
		}
		leave := e.leaving(enter)
		if leave < 0 {
			e.cfg.Logger.Print(fmt.Sprintf("column %d has no positive entry", enter))
			return true, nil
		}

		if e.cfg.MaxIterations > 0 && e.iterations >= e.cfg.MaxIterations {
			return false, errors.Wrapf(ErrIterationLimit, "%d pivots", e.iterations)
		}

		if e.t.At(leave, e.cols) <= e.cfg.Tolerance {
			e.degenerate++
		} else {
			e.degenerate = 0
		}

		left := e.basis[leave]
		e.pivot(leave, enter)
		e.cfg.Logger.Print(fmt.Sprintf("pivot %d: column %d enters, column %d leaves row %d, objective %g",
			e.iterations, enter, left, leave, e.objectiveValue()))
	}
}

// entering picks the column with the most negative reduced cost, lowest
// index first on ties. While stalled on degenerate pivots the first
// negative column is taken instead, which rules out cycling.
// Artificial columns may only enter during phase 1.
func (e *Engine) entering(phaseOne bool) int {
	obj := e.t.RawRowView(e.rows)
	bland := e.degenerate > e.rows

	col, best := -1, -e.cfg.Tolerance
	for j := 0; j < e.cols; j++ {
		if !phaseOne && e.form.IsArtificial(j) {
			continue
		}
		if obj[j] < best {
			col, best = j, obj[j]
			if bland {
				break
			}
		}
	}

	return col
}

// leaving performs the minimum ratio test on column enter. Ties go to the
// row whose basic column has the lowest index. It returns -1 when no entry
// of the column is positive.
func (e *Engine) leaving(enter int) int {
	tol := e.cfg.Tolerance

	row, best := -1, math.Inf(1)
	for i := 0; i < e.rows; i++ {
		a := e.t.At(i, enter)
		if a <= tol {
			continue
		}
		ratio := math.Max(e.t.At(i, e.cols), 0) / a
		switch {
		case row < 0 || ratio < best-tol:
			row, best = i, ratio
		case ratio <= best+tol && e.basis[i] < e.basis[row]:
			row, best = i, math.Min(ratio, best)
		}
	}

	return row
}

// pivot makes column c basic in row r.
func (e *Engine) pivot(r, c int) {
	pr := e.t.RawRowView(r)
	floats.Scale(1/pr[c], pr)
	pr[c] = 1

	for i := 0; i <= e.rows; i++ {
		if i == r {
			continue
		}
		ri := e.t.RawRowView(i)
		if f := ri[c]; f != 0 {
			floats.AddScaled(ri, -f, pr)
			ri[c] = 0
		}
	}

	e.basis[r] = c
	e.iterations++
}

// loadObjective writes cost into the objective row and prices out the
// current basis, leaving reduced costs in place.
func (e *Engine) loadObjective(cost []float64) {
	obj := e.t.RawRowView(e.rows)
	for j := range obj {
		obj[j] = 0
	}
	copy(obj, cost)

	for i, b := range e.basis {
		if cb := cost[b]; cb != 0 {
			floats.AddScaled(obj, -cb, e.t.RawRowView(i))
		}
	}
}

// phaseOneCost is the cost vector minimizing the sum of artificial columns.
func (e *Engine) phaseOneCost() []float64 {
	cost := make([]float64, e.cols)
	for j := range e.form.Artificials {
		cost[j] = 1
	}
	return cost
}

// evictArtificials pivots artificial columns left in the basis at level zero
// out of it. A row whose non-artificial entries are all zero is redundant;
// its artificial stays basic at zero and can never be selected again.
func (e *Engine) evictArtificials() {
	for i, b := range e.basis {
		if !e.form.IsArtificial(b) {
			continue
		}
		row := e.t.RawRowView(i)
		row[e.cols] = 0
		for j := 0; j < e.cols; j++ {
			if e.form.IsArtificial(j) || math.Abs(row[j]) <= e.cfg.Tolerance {
				continue
			}
			e.pivot(i, j)
			e.cfg.Logger.Print(fmt.Sprintf("column %d replaces artificial column %d in row %d", j, b, i))
			break
		}
	}
}
