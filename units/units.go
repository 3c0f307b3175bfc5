/*
 * units.go, part of gmxff.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package units provides unit-tagged scalar quantities and their conversion
// to the unit system used by GROMACS (nm, kJ/mol, degree, elementary charge, dalton).
//
// Units are given as expressions such as "kilocalorie / mole / angstrom ** 2",
// "kilojoule_per_mole/nanometer**2" or "kJ/mol/nm^2". Products, quotients and
// integer powers of the base names in this package are supported.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// GROMACS target units.
const (
	Nanometer             = "nanometer"
	KilojoulePerMole      = "kilojoule_per_mole"
	KJPerMolNm2           = "kilojoule_per_mole / nanometer ** 2"
	KJPerMolRad2          = "kilojoule_per_mole / radian ** 2"
	Degree                = "degree"
	Radian                = "radian"
	ElementaryCharge      = "elementary_charge"
	Dalton                = "dalton"
	Dimensionless         = "dimensionless"
	dims              int = 6 //length, energy, amount, angle, charge, mass
)

// dimension exponents, in the order length, energy, amount, angle, charge, mass.
type dimension [dims]int

type baseUnit struct {
	factor float64 //to the GROMACS base unit of the dimension
	dim    dimension
}

var baseUnits = map[string]baseUnit{
	"nanometer":            {1, dimension{1, 0, 0, 0, 0, 0}},
	"nm":                   {1, dimension{1, 0, 0, 0, 0, 0}},
	"angstrom":             {0.1, dimension{1, 0, 0, 0, 0, 0}},
	"picometer":            {0.001, dimension{1, 0, 0, 0, 0, 0}},
	"pm":                   {0.001, dimension{1, 0, 0, 0, 0, 0}},
	"meter":                {1e9, dimension{1, 0, 0, 0, 0, 0}},
	"kilojoule":            {1, dimension{0, 1, 0, 0, 0, 0}},
	"kJ":                   {1, dimension{0, 1, 0, 0, 0, 0}},
	"joule":                {0.001, dimension{0, 1, 0, 0, 0, 0}},
	"J":                    {0.001, dimension{0, 1, 0, 0, 0, 0}},
	"kilocalorie":          {4.184, dimension{0, 1, 0, 0, 0, 0}},
	"kcal":                 {4.184, dimension{0, 1, 0, 0, 0, 0}},
	"calorie":              {0.004184, dimension{0, 1, 0, 0, 0, 0}},
	"cal":                  {0.004184, dimension{0, 1, 0, 0, 0, 0}},
	"mole":                 {1, dimension{0, 0, 1, 0, 0, 0}},
	"mol":                  {1, dimension{0, 0, 1, 0, 0, 0}},
	"kilojoule_per_mole":   {1, dimension{0, 1, -1, 0, 0, 0}},
	"kilocalorie_per_mole": {4.184, dimension{0, 1, -1, 0, 0, 0}},
	"radian":               {1, dimension{0, 0, 0, 1, 0, 0}},
	"rad":                  {1, dimension{0, 0, 0, 1, 0, 0}},
	"degree":               {math.Pi / 180, dimension{0, 0, 0, 1, 0, 0}},
	"deg":                  {math.Pi / 180, dimension{0, 0, 0, 1, 0, 0}},
	"elementary_charge":    {1, dimension{0, 0, 0, 0, 1, 0}},
	"e":                    {1, dimension{0, 0, 0, 0, 1, 0}},
	"dalton":               {1, dimension{0, 0, 0, 0, 0, 1}},
	"Da":                   {1, dimension{0, 0, 0, 0, 0, 1}},
	"amu":                  {1, dimension{0, 0, 0, 0, 0, 1}},
	"dimensionless":        {1, dimension{}},
}

// Quantity is a scalar with a unit expression attached.
type Quantity struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// Q is a shorthand to build a Quantity.
func Q(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (Q Quantity) String() string {
	return fmt.Sprintf("%g %s", Q.Value, Q.Unit)
}

// In returns the magnitude of the quantity expressed in the target unit.
// It returns an error if either unit is unknown or their dimensions differ.
func (Q Quantity) In(target string) (float64, error) {
	from, err := parse(Q.Unit)
	if err != nil {
		return 0, errDecorate(err, "Quantity.In")
	}
	to, err := parse(target)
	if err != nil {
		return 0, errDecorate(err, "Quantity.In")
	}
	if from.dim != to.dim {
		return 0, Error{msg: fmt.Sprintf("can't convert %q to %q: incompatible dimensions", Q.Unit, target), deco: []string{"Quantity.In"}}
	}
	return Q.Value * from.factor / to.factor, nil
}

// Compatible returns true if the quantity can be expressed in the target unit.
func (Q Quantity) Compatible(target string) bool {
	_, err := Q.In(target)
	return err == nil
}

// parse reduces a unit expression to a factor and a dimension.
func parse(expr string) (baseUnit, error) {
	ret := baseUnit{factor: 1}
	expr = strings.ReplaceAll(expr, "**", "^")
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ret, nil
	}
	sign := 1 //+1 multiplies, -1 divides
	i := 0
	expectTerm := true
	for i < len(expr) {
		c := rune(expr[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '*' || c == '/':
			if expectTerm {
				return ret, Error{msg: fmt.Sprintf("unexpected operator at %d in unit %q", i, expr), deco: []string{"parse"}}
			}
			sign = 1
			if c == '/' {
				sign = -1
			}
			expectTerm = true
			i++
		case isNameChar(c) || c == '1':
			if !expectTerm {
				return ret, Error{msg: fmt.Sprintf("missing operator at %d in unit %q", i, expr), deco: []string{"parse"}}
			}
			j := i
			for j < len(expr) && isNameChar(rune(expr[j])) {
				j++
			}
			name := expr[i:j]
			if j == i { // a literal "1", as in "1/nanometer"
				name = "dimensionless"
				j++
			}
			i = j
			power := 1
			k := skipSpaces(expr, i)
			if k < len(expr) && expr[k] == '^' {
				k = skipSpaces(expr, k+1)
				l := k
				if l < len(expr) && expr[l] == '-' {
					l++
				}
				for l < len(expr) && unicode.IsDigit(rune(expr[l])) {
					l++
				}
				p, err := strconv.Atoi(expr[k:l])
				if err != nil {
					return ret, Error{msg: fmt.Sprintf("bad exponent in unit %q: %s", expr, err.Error()), deco: []string{"parse"}}
				}
				power = p
				i = l
			}
			b, ok := baseUnits[name]
			if !ok {
				return ret, Error{msg: fmt.Sprintf("unknown unit %q in %q", name, expr), deco: []string{"parse"}}
			}
			e := sign * power
			ret.factor *= math.Pow(b.factor, float64(e))
			for d := 0; d < dims; d++ {
				ret.dim[d] += e * b.dim[d]
			}
			expectTerm = false
		default:
			return ret, Error{msg: fmt.Sprintf("unexpected character %q in unit %q", c, expr), deco: []string{"parse"}}
		}
	}
	if expectTerm {
		return ret, Error{msg: fmt.Sprintf("unit %q ends with an operator", expr), deco: []string{"parse"}}
	}
	return ret, nil
}

func isNameChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

// Error is the error type for unit parsing and conversion problems.
type Error struct {
	msg  string
	deco []string
}

func (err Error) Error() string {
	return fmt.Sprintf("units: %s", err.msg)
}

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}
