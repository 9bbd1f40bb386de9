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

// Package tableau implements a dense two-phase primal simplex on a
// standard.Form.
//
// The tableau has one row per constraint plus a trailing objective row, and
// one column per standard-form column plus a trailing right-hand side column.
// The objective row holds the reduced costs of the current basis; its last
// cell holds the negated objective value.
package tableau

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/costela/golps/internal/standard"
)

const (
	// DefaultTolerance is used when Config.Tolerance is not positive.
	DefaultTolerance = 1e-9
	// DefaultMaxIterations is the pivot budget used by callers that do not
	// configure one.
	DefaultMaxIterations = 10000
)

var (
	// ErrIterationLimit is returned when the pivot budget is exhausted.
	ErrIterationLimit = errors.New("tableau: iteration limit exceeded")
	// ErrPhaseOneUnbounded signals a ratio test failure while minimizing the
	// artificial mass, which is bounded below by zero.
	ErrPhaseOneUnbounded = errors.New("tableau: phase 1 objective unbounded")
)

/* Types */

// State is the engine's position in the two-phase state machine.
type State int

const (
	Phase1Running State = iota
	Phase1Done
	Phase2Running
	Optimal
	Infeasible
	Unbounded
)

func (s State) String() string {
	switch s {
	case Phase1Running:
		return "phase 1 running"
	case Phase1Done:
		return "phase 1 done"
	case Phase2Running:
		return "phase 2 running"
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further pivots will be made.
func (s State) Terminal() bool {
	return s == Optimal || s == Infeasible || s == Unbounded
}

// Logger receives progress messages. It is satisfied by *log.Logger.
type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}

// Config tunes a single engine run.
type Config struct {
	// Tolerance is the epsilon under which values count as zero.
	Tolerance float64
	// MaxIterations caps the number of pivots; values <= 0 disable the cap.
	MaxIterations int
	Logger        Logger
}

// Engine holds the mutable simplex state of one solve. It must not be shared
// between goroutines.
type Engine struct {
	form  *standard.Form
	cfg   Config
	t     *mat.Dense
	basis []int
	state State

	rows, cols int // constraint rows and standard-form columns

	iterations int
	degenerate int // consecutive pivots with a zero step
}

// New loads form into a fresh tableau with the initial slack/artificial
// basis and the objective row of the first phase to run.
func New(form *standard.Form, cfg Config) *Engine {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}

	rows, cols := form.Dims()
	e := &Engine{
		form:  form,
		cfg:   cfg,
		t:     mat.NewDense(rows+1, cols+1, nil),
		basis: make([]int, rows),
		rows:  rows,
		cols:  cols,
	}

	for i := 0; i < rows; i++ {
		row := e.t.RawRowView(i)
		copy(row[:cols], form.A.RawRowView(i))
		row[cols] = form.B[i]
		e.basis[i] = form.Rows[i].BasisColumn
	}

	if form.HasArtificials() {
		e.state = Phase1Running
		e.loadObjective(e.phaseOneCost())
	} else {
		e.state = Phase2Running
		e.loadObjective(form.Cost)
	}

	return e
}

/* Accessors */

// State returns the current state of the engine.
func (e *Engine) State() State {
	return e.state
}

// Iterations returns the number of pivots performed so far.
func (e *Engine) Iterations() int {
	return e.iterations
}

// Basis returns a copy of the row → column basis mapping.
func (e *Engine) Basis() []int {
	basis := make([]int, len(e.basis))
	copy(basis, e.basis)
	return basis
}

// Tableau returns a copy of the current tableau.
func (e *Engine) Tableau() *mat.Dense {
	return mat.DenseCopyOf(e.t)
}

// objectiveValue returns the current value of the loaded (minimization)
// objective.
func (e *Engine) objectiveValue() float64 {
	return -e.t.At(e.rows, e.cols)
}

// value returns the current value of column j.
func (e *Engine) value(j int) float64 {
	for i, b := range e.basis {
		if b == j {
			return e.t.At(i, e.cols)
		}
	}
	return 0
}
