/*
 * atomicdata.go, part of gmxff.
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

package chem

import "fmt"

// An element of the periodic table, as far as force-field export cares.
type element struct {
	Symbol string
	Mass   float64 //dalton
}

// Elements indexed by atomic number. Masses are the ones
// used by OpenMM (and thus by the OpenFF stack), so exported
// systems reproduce the masses of the source.
// Only elements up to Xe are present.
var elements = [...]element{
	{"X", 0},
	{"H", 1.007947},
	{"He", 4.003},
	{"Li", 6.9412},
	{"Be", 9.0121823},
	{"B", 10.8117},
	{"C", 12.01078},
	{"N", 14.00672},
	{"O", 15.99943},
	{"F", 18.99840325},
	{"Ne", 20.17976},
	{"Na", 22.989769282},
	{"Mg", 24.30506},
	{"Al", 26.98153868},
	{"Si", 28.08553},
	{"P", 30.9737622},
	{"S", 32.0655},
	{"Cl", 35.4532},
	{"Ar", 39.9481},
	{"K", 39.09831},
	{"Ca", 40.0784},
	{"Sc", 44.9559126},
	{"Ti", 47.8671},
	{"V", 50.94151},
	{"Cr", 51.99616},
	{"Mn", 54.9380455},
	{"Fe", 55.8452},
	{"Co", 58.9331955},
	{"Ni", 58.69342},
	{"Cu", 63.5463},
	{"Zn", 65.4094},
	{"Ga", 69.7231},
	{"Ge", 72.641},
	{"As", 74.921602},
	{"Se", 78.963},
	{"Br", 79.9041},
	{"Kr", 83.7982},
	{"Rb", 85.46783},
	{"Sr", 87.621},
	{"Y", 88.905852},
	{"Zr", 91.2242},
	{"Nb", 92.906382},
	{"Mo", 95.942},
	{"Tc", 98},
	{"Ru", 101.072},
	{"Rh", 102.905502},
	{"Pd", 106.421},
	{"Ag", 107.86822},
	{"Cd", 112.4118},
	{"In", 114.8183},
	{"Sn", 118.7107},
	{"Sb", 121.7601},
	{"Te", 127.603},
	{"I", 126.904473},
	{"Xe", 131.2936},
}

// Symbol returns the element symbol for the atomic number n.
func Symbol(n int) (string, error) {
	if n <= 0 || n >= len(elements) {
		return "", CError{msg: fmt.Sprintf("no element data for atomic number %d", n), deco: []string{"Symbol"}}
	}
	return elements[n].Symbol, nil
}

// Mass returns the atomic mass, in dalton, for the atomic number n.
func Mass(n int) (float64, error) {
	if n <= 0 || n >= len(elements) {
		return 0, CError{msg: fmt.Sprintf("no element data for atomic number %d", n), deco: []string{"Mass"}}
	}
	return elements[n].Mass, nil
}

// AtomicNumber returns the atomic number for the element symbol s.
func AtomicNumber(s string) (int, error) {
	for i, v := range elements[1:] {
		if v.Symbol == s {
			return i + 1, nil
		}
	}
	return 0, CError{msg: fmt.Sprintf("unknown element symbol %q", s), deco: []string{"AtomicNumber"}}
}
