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
	"math"

	"github.com/pkg/errors"
)

// Solution holds the quantities read off an optimal tableau, expressed in the
// sense and row orientation of the original program.
type Solution struct {
	// Objective is the optimal objective value.
	Objective float64
	// X holds the structural variable values.
	X []float64
	// ReducedCosts holds the reduced cost of each structural variable.
	ReducedCosts []float64
	// Duals holds ∂z*/∂b for each constraint.
	Duals []float64
	// Slacks holds the non-negative gap of each constraint, 0 for equalities.
	Slacks []float64
}

// Solution extracts primal values, duals and slacks. It fails unless the
// engine reached Optimal.
func (e *Engine) Solution() (*Solution, error) {
	if e.state != Optimal {
		return nil, errors.Errorf("tableau: no solution in state %q", e.state)
	}

	form := e.form
	obj := e.t.RawRowView(e.rows)

	// sign of the caller's objective relative to the minimized one
	sense := 1.0
	if form.Maximize {
		sense = -1
	}

	sol := &Solution{
		Objective:    e.clean(sense * e.objectiveValue()),
		X:            make([]float64, form.Structural),
		ReducedCosts: make([]float64, form.Structural),
		Duals:        make([]float64, e.rows),
		Slacks:       make([]float64, e.rows),
	}

	for j := 0; j < form.Structural; j++ {
		sol.X[j] = e.clean(e.value(j))
		sol.ReducedCosts[j] = e.clean(sense * obj[j])
	}

	for i, row := range form.Rows {
		// the initial basic column is a unit column, so its reduced cost is
		// minus the row's simplex multiplier
		y := -obj[row.BasisColumn]
		if row.Flipped {
			y = -y
		}
		sol.Duals[i] = e.clean(sense * y)

		if row.SlackColumn >= 0 {
			sol.Slacks[i] = e.clean(e.value(row.SlackColumn))
		}
	}

	return sol, nil
}

// clean snaps values within tolerance of zero to zero.
func (e *Engine) clean(v float64) float64 {
	if math.Abs(v) <= e.cfg.Tolerance {
		return 0
	}
	return v
}
