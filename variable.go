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

// Variable is a non-negative continuous decision variable of a Model.
type Variable struct {
	model       *Model
	index       int
	name        string
	coefficient float64
}

/* Variable-related functions (model variables, as opposed to Go variables) */

func (v *Variable) Name() string {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.name
}

// Index returns the variable's position in the model, which is also its
// position in SolveResult.Values.
func (v *Variable) Index() int {
	return v.index
}

// SetObjectiveCoefficient sets the variable's coefficient in the objective
// function.
func (v *Variable) SetObjectiveCoefficient(coef float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.coefficient = coef
}

func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.coefficient
}
