/*
 * interfaces.go, part of gmxff.
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

// Atomer is the basic interface for a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// MolGraph is what a force-field exporter needs to know about one molecule:
// its atoms and the bonded terms implied by its connectivity.
// All indices are 0-based and local to the molecule.
type MolGraph interface {
	Atomer

	//Name of the molecule, "" if it has none.
	Name() string

	//Each bond once, with the lowest index first.
	Bonds() [][2]int

	//Angles i-j-k, j central, i<k.
	Angles() [][3]int

	//Proper torsions i-j-k-l along bonds, i<l.
	Propers() [][4]int

	//Impropers around trivalent centers with the central atom
	//listed second. All 6 orderings of the outer atoms are given.
	Impropers() [][4]int

	//Pairs of atoms exactly 3 bonds apart, lowest index first.
	Pairs14() [][2]int

	//True if other has the same elements and connectivity.
	IsIsomorphicWith(other MolGraph) bool
}

// TopologyQuerier is a system made of several molecules, with a global
// (topology-wide) atom indexing.
type TopologyQuerier interface {
	NMolecules() int

	//The ith molecule in the topology.
	Molecule(i int) MolGraph

	//Total number of atoms.
	NAtoms() int

	//Topology-wide index of the atom with local index atom in molecule mol.
	AtomIndex(mol, atom int) int

	//Groups of molecules that are identical to each other, ordered
	//by the index of their representative (first) molecule.
	IdenticalMoleculeGroups() []MoleculeGroup
}

// MoleculeGroup is a set of chemically identical molecules in a topology.
type MoleculeGroup struct {
	Representative int //index of the first molecule in the group
	Members        []int
	//AtomMaps[i][a] is the atom in Members[i] that corresponds to atom a
	//of the representative.
	AtomMaps [][]int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call adds the name of the caller, if not empty, and returns the decoration slice.
}

// CError is the error type for the chem package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate is a helper function that decorates the error with the caller's name before returning it,
// if the error implements Error. Otherwise it wraps it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(CError); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
