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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/costela/golps/internal/standard"
)

/* Types */

type direction int

const (
	Minimize direction = iota
	Maximize
)

func (d direction) String() string {
	switch d {
	case Minimize:
		return "min"
	case Maximize:
		return "max"
	default:
		return strconv.Itoa(int(d))
	}
}

func (d direction) valid() bool {
	return d == Minimize || d == Maximize
}

// ParseDirection maps "max"/"maximize" and "min"/"minimize" (any case) to
// Maximize and Minimize.
func ParseDirection(s string) (direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	default:
		return Minimize, &InvalidSenseError{Sense: s}
	}
}

// Operator is the relation between a constraint's left-hand side and its
// right-hand side.
type Operator int

const (
	LessOrEqual Operator = iota
	GreaterOrEqual
	Equal
)

func (op Operator) String() string {
	switch op {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

func (op Operator) valid() bool {
	return op >= LessOrEqual && op <= Equal
}

func (op Operator) sense() standard.Sense {
	switch op {
	case GreaterOrEqual:
		return standard.GE
	case Equal:
		return standard.EQ
	default:
		return standard.LE
	}
}

// ParseOperator accepts "<=", ">=", "=" and their common spellings.
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "<=", "=<", "≤":
		return LessOrEqual, nil
	case ">=", "=>", "≥":
		return GreaterOrEqual, nil
	case "=", "==":
		return Equal, nil
	default:
		return 0, &InvalidOperatorError{Constraint: -1, Operator: s}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.valid() {
		return nil, &InvalidOperatorError{Constraint: -1, Operator: op.String()}
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Problem is an immutable linear program over non-negative variables:
//
//	optimize   c·x
//	subject to A[i]·x (<=|>=|=) b[i]   for every constraint i
//	           x >= 0
//
// Problems are safe for concurrent use; each Solve works on its own copy of
// the data.
type Problem struct {
	dir       direction
	objective []float64
	rows      [][]float64
	rhs       []float64
	ops       []Operator
	varNames  []string
	consNames []string
}

// ProblemOption customizes a Problem at construction time.
type ProblemOption func(*Problem) error

// VariableNames names the decision variables. Defaults are x1, x2, ...
func VariableNames(names ...string) ProblemOption {
	return func(p *Problem) error {
		if len(names) != len(p.objective) {
			return &DimensionError{Name: "variable names", Got: len(names), Want: len(p.objective)}
		}
		p.varNames = append([]string(nil), names...)
		return nil
	}
}

// ConstraintNames names the constraints. Defaults are c1, c2, ...
func ConstraintNames(names ...string) ProblemOption {
	return func(p *Problem) error {
		if len(names) != len(p.rows) {
			return &DimensionError{Name: "constraint names", Got: len(names), Want: len(p.rows)}
		}
		p.consNames = append([]string(nil), names...)
		return nil
	}
}

// NewProblem validates and copies the given data. matrix holds one row of
// len(objective) coefficients per constraint; rhs and ops hold one entry per
// constraint.
func NewProblem(objective []float64, matrix [][]float64, rhs []float64, ops []Operator, dir direction, opts ...ProblemOption) (*Problem, error) {
	if !dir.valid() {
		return nil, &InvalidSenseError{Sense: dir.String()}
	}

	n, m := len(objective), len(matrix)
	if n == 0 {
		return nil, &DimensionError{Name: "objective", Got: 0, Want: 1}
	}
	if len(rhs) != m {
		return nil, &DimensionError{Name: "rhs", Got: len(rhs), Want: m}
	}
	if len(ops) != m {
		return nil, &DimensionError{Name: "operators", Got: len(ops), Want: m}
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, &DimensionError{Name: fmt.Sprintf("row %d", i), Got: len(row), Want: n}
		}
	}
	for i, op := range ops {
		if !op.valid() {
			return nil, &InvalidOperatorError{Constraint: i, Operator: op.String()}
		}
	}

	if err := checkFinite("objective", objective); err != nil {
		return nil, err
	}
	if err := checkFinite("rhs", rhs); err != nil {
		return nil, err
	}

	p := &Problem{
		dir:       dir,
		objective: append([]float64(nil), objective...),
		rows:      make([][]float64, m),
		rhs:       append([]float64(nil), rhs...),
		ops:       append([]Operator(nil), ops...),
		varNames:  defaultNames("x", n),
		consNames: defaultNames("c", m),
	}
	for i, row := range matrix {
		if err := checkFinite(fmt.Sprintf("row %d", i), row); err != nil {
			return nil, err
		}
		p.rows[i] = append([]float64(nil), row...)
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("applying problem option: %w", err)
		}
	}

	return p, nil
}

func checkFinite(name string, values []float64) error {
	for j, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s, entry %d: %w", name, j, ErrNonFinite)
		}
	}
	return nil
}

func defaultNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i+1)
	}
	return names
}

/* Accessors */

// Direction returns the problem's optimization direction.
func (p *Problem) Direction() direction {
	return p.dir
}

// VariableCount returns the number of decision variables.
func (p *Problem) VariableCount() int {
	return len(p.objective)
}

// ConstraintCount returns the number of constraints.
func (p *Problem) ConstraintCount() int {
	return len(p.rows)
}

// Objective returns a copy of the objective coefficients.
func (p *Problem) Objective() []float64 {
	return append([]float64(nil), p.objective...)
}

// Constraint returns a copy of constraint i's coefficients, its operator and
// its right-hand side.
func (p *Problem) Constraint(i int) (coefs []float64, op Operator, rhs float64) {
	return append([]float64(nil), p.rows[i]...), p.ops[i], p.rhs[i]
}

// VariableNames returns the names of the decision variables.
func (p *Problem) VariableNames() []string {
	return append([]string(nil), p.varNames...)
}

// ConstraintNames returns the names of the constraints.
func (p *Problem) ConstraintNames() []string {
	return append([]string(nil), p.consNames...)
}

// standardForm converts the problem for the tableau engine.
func (p *Problem) standardForm() (*standard.Form, error) {
	senses := make([]standard.Sense, len(p.ops))
	for i, op := range p.ops {
		senses[i] = op.sense()
	}
	return standard.Build(p.objective, p.rows, senses, p.rhs, p.dir == Maximize)
}
