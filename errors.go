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
	"errors"
	"fmt"
)

// ErrNonFinite is returned when a coefficient or right-hand side is NaN or
// infinite.
var ErrNonFinite = errors.New("golps: NaN or Inf in problem data")

// DimensionError reports a shape mismatch between the objective, the
// constraint matrix, the right-hand sides and the operators.
type DimensionError struct {
	// Name identifies the offending input, e.g. "rhs" or "row 2".
	Name string
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	if e.Name == "objective" {
		return fmt.Sprintf("golps: objective has %d coefficients, want at least %d", e.Got, e.Want)
	}
	return fmt.Sprintf("golps: %s has %d entries, want %d", e.Name, e.Got, e.Want)
}

// InvalidOperatorError reports a constraint operator other than "<=", ">="
// or "=".
type InvalidOperatorError struct {
	// Constraint is the index of the offending constraint, -1 when parsing
	// free-standing text.
	Constraint int
	Operator   string
}

func (e *InvalidOperatorError) Error() string {
	if e.Constraint < 0 {
		return fmt.Sprintf("golps: invalid operator %q", e.Operator)
	}
	return fmt.Sprintf("golps: invalid operator %q in constraint %d", e.Operator, e.Constraint)
}

// InvalidSenseError reports an optimization direction other than Minimize or
// Maximize.
type InvalidSenseError struct {
	Sense string
}

func (e *InvalidSenseError) Error() string {
	return fmt.Sprintf("golps: invalid optimization sense %q (want max or min)", e.Sense)
}
