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

// Package standard converts a linear program with mixed constraint senses
// into the equality form consumed by the tableau engine:
//
//	minimize   c·x
//	subject to A·x = b, b >= 0, x >= 0
//
// Every row gets exactly one initial basic column (a slack or an
// artificial) so that the engine can start from the identity basis.
package standard

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

/* Types */

// Sense is the relation of a single constraint row.
type Sense int

const (
	LE Sense = iota // a·x <= b
	GE              // a·x >= b
	EQ              // a·x == b
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// flip returns the relation obtained by multiplying both sides by -1.
func (s Sense) flip() Sense {
	switch s {
	case LE:
		return GE
	case GE:
		return LE
	default:
		return s
	}
}

// ColumnKind classifies the columns of a Form.
type ColumnKind int

const (
	Structural ColumnKind = iota
	Slack
	Surplus
	Artificial
)

func (k ColumnKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Slack:
		return "slack"
	case Surplus:
		return "surplus"
	case Artificial:
		return "artificial"
	default:
		return "unknown"
	}
}

// Row describes how an input constraint was mapped into the Form.
type Row struct {
	// Flipped is set when the row was multiplied by -1 to make its rhs
	// non-negative.
	Flipped bool
	// Sense is the relation after any flip.
	Sense Sense
	// SlackColumn is the slack or surplus column of the row, -1 for EQ rows.
	SlackColumn int
	// BasisColumn is the column that is basic in this row initially.
	BasisColumn int
}

// Form is a linear program in standard form. It is built once per solve and
// not modified afterwards.
type Form struct {
	// Maximize records that the objective was negated to obtain a
	// minimization problem.
	Maximize bool
	// Structural is the number of original decision variables.
	Structural int
	// Cost is the minimization objective over all columns.
	Cost []float64
	// A is the m×(n+k) coefficient matrix. It is nil when there are no rows.
	A *mat.Dense
	// B is the non-negative right-hand side.
	B []float64
	// Kinds classifies every column of A.
	Kinds []ColumnKind
	// Rows holds per-constraint bookkeeping, in input order.
	Rows []Row
	// Artificials maps each artificial column to its row.
	Artificials map[int]int
}

/* Construction */

// Build normalizes the given program. rows must be len(rhs)×len(cost) and
// senses must have one entry per row.
func Build(cost []float64, rows [][]float64, senses []Sense, rhs []float64, maximize bool) (*Form, error) {
	n, m := len(cost), len(rows)
	if n == 0 {
		return nil, errors.New("standard: objective has no coefficients")
	}
	if len(senses) != m || len(rhs) != m {
		return nil, errors.Errorf("standard: %d rows, %d senses and %d right-hand sides", m, len(senses), len(rhs))
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.Errorf("standard: row %d has %d coefficients, want %d", i, len(row), n)
		}
		if senses[i] < LE || senses[i] > EQ {
			return nil, errors.Errorf("standard: row %d has unknown sense %d", i, senses[i])
		}
	}

	form := &Form{
		Maximize:    maximize,
		Structural:  n,
		B:           make([]float64, m),
		Rows:        make([]Row, m),
		Artificials: make(map[int]int),
	}

	// count added columns first, slack/surplus columns precede artificials
	var slacks, artificials int
	for i := range rows {
		sense := senses[i]
		if rhs[i] < 0 {
			sense = sense.flip()
		}
		form.Rows[i] = Row{Flipped: rhs[i] < 0, Sense: sense, SlackColumn: -1}
		switch sense {
		case LE:
			slacks++
		case GE:
			slacks++
			artificials++
		case EQ:
			artificials++
		}
	}

	cols := n + slacks + artificials
	form.Cost = make([]float64, cols)
	form.Kinds = make([]ColumnKind, cols)
	for j, c := range cost {
		if maximize {
			c = -c
		}
		form.Cost[j] = c
	}

	if m == 0 {
		return form, nil
	}

	form.A = mat.NewDense(m, cols, nil)
	nextSlack, nextArtificial := n, n+slacks
	for i, row := range rows {
		r := &form.Rows[i]
		sign := 1.0
		if r.Flipped {
			sign = -1
		}
		for j, a := range row {
			form.A.Set(i, j, sign*a)
		}
		form.B[i] = sign * rhs[i]

		switch r.Sense {
		case LE:
			r.SlackColumn = nextSlack
			r.BasisColumn = nextSlack
			form.A.Set(i, nextSlack, 1)
			form.Kinds[nextSlack] = Slack
			nextSlack++
		case GE:
			r.SlackColumn = nextSlack
			form.A.Set(i, nextSlack, -1)
			form.Kinds[nextSlack] = Surplus
			nextSlack++
			fallthrough
		case EQ:
			r.BasisColumn = nextArtificial
			form.A.Set(i, nextArtificial, 1)
			form.Kinds[nextArtificial] = Artificial
			form.Artificials[nextArtificial] = i
			nextArtificial++
		}
	}

	return form, nil
}

/* Accessors */

// Dims returns the number of rows and columns of the form.
func (f *Form) Dims() (rows, cols int) {
	return len(f.Rows), len(f.Kinds)
}

// HasArtificials reports whether a first phase is required.
func (f *Form) HasArtificials() bool {
	return len(f.Artificials) > 0
}

// IsArtificial reports whether column j is artificial.
func (f *Form) IsArtificial(j int) bool {
	return f.Kinds[j] == Artificial
}
