/*
 * interchange.go, part of gmxff.
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

// Package interchange holds a force-field-agnostic parameterized system:
// a molecular topology, the per-interaction parameter assignments
// (collections) and the coordinates. A collection maps tuples of topology
// atom indices to parameter sets, through potential keys.
package interchange

import (
	"fmt"
	"sort"

	chem "github.com/rmera/gmxff"
	"github.com/rmera/gmxff/units"
	v3 "github.com/rmera/gmxff/v3"
)

// Names of the collections an exporter knows about.
const (
	VdW              = "vdW"
	Electrostatics   = "Electrostatics"
	Bonds            = "Bonds"
	Angles           = "Angles"
	ProperTorsions   = "ProperTorsions"
	RBTorsions       = "RBTorsions"
	ImproperTorsions = "ImproperTorsions"
	Constraints      = "Constraints"
)

// Topology is the topology adapter an Interchange is built on.
type Topology = chem.TopologyQuerier

// Molecule is one molecule of a Topology.
type Molecule = chem.MolGraph

// TopologyKey identifies an interaction by the topology indices of its atoms.
// Mult distinguishes several terms on the same atoms (as in torsions with
// more than one periodicity).
type TopologyKey struct {
	AtomIndices []int `json:"atom_indices" yaml:"atom_indices"`
	Mult        int   `json:"mult,omitempty" yaml:"mult,omitempty"`
}

// Matches returns true if the key's atoms are exactly indices, in that order.
func (K TopologyKey) Matches(indices []int) bool {
	if len(K.AtomIndices) != len(indices) {
		return false
	}
	for i, v := range indices {
		if K.AtomIndices[i] != v {
			return false
		}
	}
	return true
}

func (K TopologyKey) String() string {
	return fmt.Sprintf("%v/%d", K.AtomIndices, K.Mult)
}

// PotentialKey identifies a parameter set, usually by the SMIRKS pattern
// that assigned it.
type PotentialKey struct {
	ID   string `json:"id" yaml:"id"`
	Mult int    `json:"mult,omitempty" yaml:"mult,omitempty"`
}

// KeyMapEntry is one assignment of a parameter set to a set of atoms.
type KeyMapEntry struct {
	Key       TopologyKey  `json:"key" yaml:"key"`
	Potential PotentialKey `json:"potential" yaml:"potential"`
}

// Potential is a set of named, unit-tagged parameters.
type Potential struct {
	Parameters map[string]units.Quantity `json:"parameters" yaml:"parameters"`
}

// Param returns the parameter called name.
func (P Potential) Param(name string) (units.Quantity, bool) {
	q, ok := P.Parameters[name]
	return q, ok
}

// Collection holds the parameter assignment for one class of interactions.
// KeyMap keeps the order in which the assignments were made.
type Collection struct {
	Type       string
	Expression string
	KeyMap     []KeyMapEntry
	Potentials map[PotentialKey]Potential
	Scale14    float64 //scaling for 1-4 interactions, only for nonbonded collections
	MixingRule string  //only for vdW
}

// Match returns all the entries whose atoms are exactly indices, in that order,
// sorted by their Mult. It returns nil if there are none.
func (C *Collection) Match(indices ...int) []KeyMapEntry {
	var ret []KeyMapEntry
	for _, e := range C.KeyMap {
		if e.Key.Matches(indices) {
			ret = append(ret, e)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Key.Mult < ret[j].Key.Mult })
	return ret
}

// Potential returns the parameter set for the key k.
func (C *Collection) Potential(k PotentialKey) (Potential, bool) {
	p, ok := C.Potentials[k]
	return p, ok
}

// Charge returns the charge assigned to the atom with topology index atom.
// It is meant for electrostatics collections, where each single-atom key
// points to a potential with a "charge" parameter.
func (C *Collection) Charge(atom int) (units.Quantity, bool) {
	m := C.Match(atom)
	if len(m) == 0 {
		return units.Quantity{}, false
	}
	p, ok := C.Potentials[m[0].Potential]
	if !ok {
		return units.Quantity{}, false
	}
	return p.Param("charge")
}

// Coordinates is a set of 3D vectors with a length unit.
type Coordinates struct {
	Values *v3.Matrix
	Unit   string
}

// InNm returns the coordinates in nanometers, or nil if there are none.
func (C *Coordinates) InNm() (*v3.Matrix, error) {
	if C == nil || C.Values == nil {
		return nil, nil
	}
	f, err := units.Q(1, C.Unit).In(units.Nanometer)
	if err != nil {
		return nil, errDecorate(err, "Coordinates.InNm")
	}
	return C.Values.Scaled(f), nil
}

// Interchange is a parameterized molecular system.
type Interchange struct {
	Name        string
	Topology    Topology
	Collections map[string]*Collection
	Positions   *Coordinates //nil if not known
	Box         *Coordinates //3x3, one box vector per row. nil if not periodic.
}

// Collection returns the collection called name.
func (I *Interchange) Collection(name string) (*Collection, bool) {
	c, ok := I.Collections[name]
	return c, ok && c != nil
}
