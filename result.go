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

/* Types */

type SolveResult struct {
	status       SolveStatus
	objective    float64
	values       []float64
	reducedCosts []float64
	duals        []float64
	slacks       []float64
	iterations   int
}

type SolveStatus int

const (
	SolutionOptimal SolveStatus = iota
	SolutionInfeasible
	SolutionUnbounded
)

// String returns "Optimal", "Infeasible" or "Unbounded".
func (s SolveStatus) String() string {
	switch s {
	case SolutionOptimal:
		return "Optimal"
	case SolutionInfeasible:
		return "Infeasible"
	case SolutionUnbounded:
		return "Unbounded"
	default:
		return "Undefined"
	}
}

// SolveError is a fatal solver failure. Infeasible and unbounded problems are
// not errors; they are reported through SolveResult.Status.
type SolveError int

const (
	ErrIterationLimitExceeded SolveError = iota + 1
	ErrNumericalFailure
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrIterationLimitExceeded:
		return "simplex iteration limit exceeded"
	case ErrNumericalFailure:
		return "numerical failure while solving"
	default:
		panic("unrecognized error")
	}
}

// Status reports whether the problem has an optimal solution
// (SolutionOptimal), has no feasible point (SolutionInfeasible) or can be
// improved without limit (SolutionUnbounded).
func (res SolveResult) Status() SolveStatus {
	return res.status
}

// Optimal is a shorthand for Status() == SolutionOptimal.
func (res SolveResult) Optimal() bool {
	return res.status == SolutionOptimal
}

// Value returns the computed value of the given variable for this
// optimization result.
// This is a shorthand for PrimalValue.
func (res SolveResult) Value(v *Variable) float64 {
	return res.PrimalValue(v)
}

// PrimalValue returns the computed value of the given variable for
// this optimization result, or 0 if the result is not optimal.
func (res SolveResult) PrimalValue(v *Variable) float64 {
	return at(res.values, v.index)
}

// DualValue returns the reduced cost of the given variable in this
// optimization result: the change of the objective per unit increase of
// the variable away from the optimum.
func (res SolveResult) DualValue(v *Variable) float64 {
	return at(res.reducedCosts, v.index)
}

// ObjectiveValue returns the value of the objective function for
// this optimization result. It is only meaningful if Status returns
// SolutionOptimal.
func (res SolveResult) ObjectiveValue() float64 {
	return res.objective
}

// Values returns the values of all decision variables, in order. The slice
// is empty unless the result is optimal.
func (res SolveResult) Values() []float64 {
	return append([]float64{}, res.values...)
}

// ReducedCosts returns the reduced cost of every decision variable, in the
// objective's own sense. The slice is empty unless the result is optimal.
func (res SolveResult) ReducedCosts() []float64 {
	return append([]float64{}, res.reducedCosts...)
}

// Duals returns the shadow price of every constraint: the change of the
// optimal objective per unit increase of the constraint's right-hand side.
// The slice is empty unless the result is optimal.
func (res SolveResult) Duals() []float64 {
	return append([]float64{}, res.duals...)
}

// Slacks returns the non-negative gap between each constraint's sides at
// the optimum; equality constraints have zero slack. The slice is empty
// unless the result is optimal.
func (res SolveResult) Slacks() []float64 {
	return append([]float64{}, res.slacks...)
}

// Dual returns the shadow price of constraint i.
func (res SolveResult) Dual(i int) float64 {
	return at(res.duals, i)
}

// Slack returns the slack of constraint i.
func (res SolveResult) Slack(i int) float64 {
	return at(res.slacks, i)
}

// Iterations returns the number of simplex pivots performed.
func (res SolveResult) Iterations() int {
	return res.iterations
}

func at(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

// Report is the serializable form of a SolveResult.
type Report struct {
	Status string    `json:"status" yaml:"status"`
	ZOpt   *float64  `json:"z_opt,omitempty" yaml:"z_opt,omitempty"`
	XOpt   []float64 `json:"x_opt" yaml:"x_opt"`
	Sombra []float64 `json:"sombra" yaml:"sombra"` // shadow prices
	Folga  []float64 `json:"folga" yaml:"folga"`   // slacks
}

// Report returns the result in serializable form. ZOpt is only set for
// optimal results.
func (res SolveResult) Report() Report {
	r := Report{
		Status: res.status.String(),
		XOpt:   res.Values(),
		Sombra: res.Duals(),
		Folga:  res.Slacks(),
	}
	if res.Optimal() {
		z := res.objective
		r.ZOpt = &z
	}
	return r
}
