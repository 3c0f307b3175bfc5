/*
 * system.go, part of gmxff.
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

package top

import (
	"fmt"
	"strings"

	v3 "github.com/rmera/gmxff/v3"
)

// All quantities in this package are in Gromacs units: nm, kJ/mol, degrees,
// elementary charges and dalton. Atom indices in records are 1-based and
// local to their molecule type.

// AtomType is a Lennard-Jones atom type.
type AtomType struct {
	Name         string
	BondingType  string //"" if none
	AtomicNumber int
	Mass         float64
	Charge       float64
	ParticleType string //"A" for atoms
	Sigma        float64
	Epsilon      float64
}

// Atom is one atom of a molecule type.
type Atom struct {
	Index        int //1-based
	Name         string
	AtomType     string
	ResidueIndex int
	ResidueName  string
	ChargeGroup  int
	Charge       float64
	Mass         float64
}

// Bond is a harmonic bond (function 1).
type Bond struct {
	Atoms  [2]int
	Length float64
	K      float64
}

// Angle is a harmonic angle (function 1).
type Angle struct {
	Atoms [3]int
	Angle float64
	K     float64
}

// Pair is a 1-4 pair (function 1) with parameters generated from the atom types.
type Pair struct {
	Atoms [2]int
}

// Exclusion excludes the nonbonded interactions between First and each of Others.
type Exclusion struct {
	First  int
	Others []int
}

// Settle makes a 3-site water rigid. First is the oxygen,
// the hydrogens are the next 2 atoms.
type Settle struct {
	First int
	DOH   float64
	DHH   float64
}

// DihedralFunc is the Gromacs function type of a dihedral.
type DihedralFunc int

const (
	PeriodicProper    DihedralFunc = 1
	RyckaertBellemans DihedralFunc = 3
	PeriodicImproper  DihedralFunc = 4
)

func (D DihedralFunc) String() string {
	switch D {
	case PeriodicProper:
		return "periodic proper"
	case RyckaertBellemans:
		return "Ryckaert-Bellemans"
	case PeriodicImproper:
		return "periodic improper"
	}
	return fmt.Sprintf("unknown dihedral function %d", int(D))
}

// Dihedral is one of the 3 supported dihedral variants. Func tells which
// one, and which fields are meaningful: Phi, K and Multiplicity for the
// periodic variants, C for Ryckaert-Bellemans. Use the constructors.
type Dihedral struct {
	Atoms        [4]int
	Func         DihedralFunc
	Phi          float64
	K            float64
	Multiplicity int
	C            [6]float64
}

// NewPeriodicProper returns a periodic proper dihedral (function 1).
func NewPeriodicProper(atoms [4]int, phi, k float64, multiplicity int) Dihedral {
	return Dihedral{Atoms: atoms, Func: PeriodicProper, Phi: phi, K: k, Multiplicity: multiplicity}
}

// NewPeriodicImproper returns a periodic improper dihedral (function 4).
func NewPeriodicImproper(atoms [4]int, phi, k float64, multiplicity int) Dihedral {
	return Dihedral{Atoms: atoms, Func: PeriodicImproper, Phi: phi, K: k, Multiplicity: multiplicity}
}

// NewRyckaertBellemans returns a Ryckaert-Bellemans dihedral (function 3)
// with the coefficients C0 to C5.
func NewRyckaertBellemans(atoms [4]int, c [6]float64) Dihedral {
	return Dihedral{Atoms: atoms, Func: RyckaertBellemans, C: c}
}

// MoleculeType is a template for one or more identical molecules.
type MoleculeType struct {
	Name       string
	NrExcl     int
	Atoms      []Atom
	Pairs      []Pair
	Bonds      []Bond
	Angles     []Angle
	Dihedrals  []Dihedral
	Settles    []Settle
	Exclusions []Exclusion
}

// DefaultNrExcl is the number of bonds within which nonbonded interactions are excluded.
const DefaultNrExcl = 3

// NewMoleculeType returns an empty molecule type with the default nrexcl.
func NewMoleculeType(name string) *MoleculeType {
	return &MoleculeType{Name: name, NrExcl: DefaultNrExcl}
}

// MoleculeCount is a run of Count consecutive molecules of the type Name.
type MoleculeCount struct {
	Name  string
	Count int
}

// System is a complete Gromacs system: the force field and the list of
// molecules in it.
type System struct {
	Name              string
	NonbondedFunction int
	CombinationRule   int
	GenPairs          bool
	FudgeLJ           float64
	FudgeQQ           float64
	AtomTypes         []*AtomType
	MoleculeTypes     []*MoleculeType
	Molecules         []MoleculeCount //in the order the molecules appear
	Positions         *v3.Matrix      //nil if not known
	Box               *v3.Matrix      //nil if not periodic
}

// AtomType returns the atom type called name.
func (S *System) AtomType(name string) (*AtomType, bool) {
	for _, v := range S.AtomTypes {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// AddAtomType adds at to the system. It is an error to add 2 types with the same name.
func (S *System) AddAtomType(at *AtomType) error {
	if _, ok := S.AtomType(at.Name); ok {
		return Error{msg: fmt.Sprintf("atom type %s defined twice", at.Name), deco: []string{"AddAtomType"}}
	}
	S.AtomTypes = append(S.AtomTypes, at)
	return nil
}

// MoleculeType returns the molecule type called name.
func (S *System) MoleculeType(name string) (*MoleculeType, bool) {
	for _, v := range S.MoleculeTypes {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// AddMolecules adds count molecules of the type name at the end of the system.
// If the last run of molecules is of the same type, it is extended.
func (S *System) AddMolecules(name string, count int) {
	if l := len(S.Molecules); l > 0 && S.Molecules[l-1].Name == name {
		S.Molecules[l-1].Count += count
		return
	}
	S.Molecules = append(S.Molecules, MoleculeCount{Name: name, Count: count})
}

// NAtoms returns the total number of atoms in the system, or -1 if a
// molecule type in the molecule list is not defined.
func (S *System) NAtoms() int {
	n := 0
	for _, v := range S.Molecules {
		mt, ok := S.MoleculeType(v.Name)
		if !ok {
			return -1
		}
		n += v.Count * len(mt.Atoms)
	}
	return n
}

// Validate checks the internal consistency of the molecule type:
// atom indices form the run 1..N, and every record refers to existing atoms.
func (M *MoleculeType) Validate() error {
	n := len(M.Atoms)
	in := func(i int) bool { return i >= 1 && i <= n }
	bad := func(what string, v any) error {
		return Error{msg: fmt.Sprintf("molecule type %s: %s %v refers to atoms outside 1-%d", M.Name, what, v, n), deco: []string{"MoleculeType.Validate"}}
	}
	for i, a := range M.Atoms {
		if a.Index != i+1 {
			return Error{msg: fmt.Sprintf("molecule type %s: atom %d has index %d", M.Name, i+1, a.Index), deco: []string{"MoleculeType.Validate"}}
		}
		if a.Name == "" || a.AtomType == "" || a.ResidueName == "" {
			return Error{msg: fmt.Sprintf("molecule type %s: atom %d lacks a name, type or residue name", M.Name, a.Index), deco: []string{"MoleculeType.Validate"}}
		}
	}
	for _, v := range M.Pairs {
		if !in(v.Atoms[0]) || !in(v.Atoms[1]) {
			return bad("pair", v.Atoms)
		}
	}
	for _, v := range M.Bonds {
		if !in(v.Atoms[0]) || !in(v.Atoms[1]) {
			return bad("bond", v.Atoms)
		}
	}
	for _, v := range M.Angles {
		for _, a := range v.Atoms {
			if !in(a) {
				return bad("angle", v.Atoms)
			}
		}
	}
	for _, v := range M.Dihedrals {
		for _, a := range v.Atoms {
			if !in(a) {
				return bad("dihedral", v.Atoms)
			}
		}
		if _, err := v.ToGro(); err != nil {
			return errDecorate(err, "MoleculeType.Validate")
		}
	}
	for _, v := range M.Settles {
		if !in(v.First) || !in(v.First+2) {
			return bad("settle", v.First)
		}
	}
	for _, v := range M.Exclusions {
		if !in(v.First) {
			return bad("exclusion", v.First)
		}
		for _, a := range v.Others {
			if !in(a) {
				return bad("exclusion", v.Others)
			}
		}
	}
	return nil
}

// Validate checks that the system can be written: every molecule type
// is consistent, the atom types used exist, the molecule list refers to known
// molecule types and the number of positions matches the number of atoms.
func (S *System) Validate() error {
	if S.CombinationRule < 1 || S.CombinationRule > 3 {
		return Error{msg: fmt.Sprintf("invalid combination rule %d", S.CombinationRule), deco: []string{"System.Validate"}}
	}
	seen := make(map[string]bool, len(S.MoleculeTypes))
	for _, mt := range S.MoleculeTypes {
		key := sanitize(mt.Name)
		if seen[key] {
			return Error{msg: fmt.Sprintf("molecule type %s defined twice", mt.Name), deco: []string{"System.Validate"}}
		}
		seen[key] = true
		if err := mt.Validate(); err != nil {
			return errDecorate(err, "System.Validate")
		}
		for _, a := range mt.Atoms {
			if _, ok := S.AtomType(a.AtomType); !ok {
				return Error{msg: fmt.Sprintf("atom %d of molecule type %s has undefined type %s", a.Index, mt.Name, a.AtomType), deco: []string{"System.Validate"}}
			}
		}
	}
	for _, m := range S.Molecules {
		if _, ok := S.MoleculeType(m.Name); !ok {
			return Error{msg: fmt.Sprintf("molecule list refers to undefined molecule type %s", m.Name), deco: []string{"System.Validate"}}
		}
		if m.Count < 1 {
			return Error{msg: fmt.Sprintf("%d molecules of type %s", m.Count, m.Name), deco: []string{"System.Validate"}}
		}
	}
	if S.Positions != nil && S.Positions.NVecs() != S.NAtoms() {
		return Error{msg: fmt.Sprintf("%d positions for %d atoms", S.Positions.NVecs(), S.NAtoms()), deco: []string{"System.Validate"}}
	}
	if S.Box != nil && S.Box.NVecs() != 3 {
		return Error{msg: fmt.Sprintf("the box has %d vectors", S.Box.NVecs()), deco: []string{"System.Validate"}}
	}
	return nil
}

// sanitize replaces spaces, which Gromacs would take as field separators.
func sanitize(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
