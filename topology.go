/*
 * topology.go, part of gmxff.
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

import (
	"fmt"
	"sort"
	"strings"
)

// Topology is an ordered set of molecules with a global atom numbering:
// the atoms of molecule 0 come first, then those of molecule 1, and so on.
// It implements TopologyQuerier.
type Topology struct {
	mols    []*Molecule
	offsets []int
	natoms  int
	groups  []MoleculeGroup
}

// NewTopology returns a topology with the given molecules, in that order.
func NewTopology(mols ...*Molecule) *Topology {
	T := &Topology{mols: mols, offsets: make([]int, len(mols))}
	for i, m := range mols {
		T.offsets[i] = T.natoms
		T.natoms += m.Len()
	}
	return T
}

// NMolecules returns the number of molecules in the topology.
func (T *Topology) NMolecules() int { return len(T.mols) }

// Molecule returns the ith molecule. It panics if i is out of range.
func (T *Topology) Molecule(i int) MolGraph { return T.mols[i] }

// NAtoms returns the total number of atoms.
func (T *Topology) NAtoms() int { return T.natoms }

// AtomIndex returns the topology index of the atom with index atom in
// the molecule mol. It panics if either index is out of range.
func (T *Topology) AtomIndex(mol, atom int) int {
	if atom < 0 || atom >= T.mols[mol].Len() {
		panic(fmt.Sprintf("atom %d out of range for molecule %d with %d atoms", atom, mol, T.mols[mol].Len()))
	}
	return T.offsets[mol] + atom
}

// IdenticalMoleculeGroups partitions the molecules in sets of isomorphic ones.
// Groups are ordered by their representative, which is the
// first molecule of the group. Within a group, members are in topology
// order, and the representative is the first member.
// The result is computed once and cached.
func (T *Topology) IdenticalMoleculeGroups() []MoleculeGroup {
	if T.groups != nil {
		return T.groups
	}
	groups := make([]MoleculeGroup, 0)
	bykey := make(map[string][]int) //quick key -> indexes in groups
	for i, m := range T.mols {
		key := formulaKey(m)
		found := false
		for _, g := range bykey[key] {
			rep := T.mols[groups[g].Representative]
			amap, ok := Isomorphism(rep, m)
			if !ok {
				continue
			}
			groups[g].Members = append(groups[g].Members, i)
			groups[g].AtomMaps = append(groups[g].AtomMaps, amap)
			found = true
			break
		}
		if found {
			continue
		}
		identity := make([]int, m.Len())
		for j := range identity {
			identity[j] = j
		}
		bykey[key] = append(bykey[key], len(groups))
		groups = append(groups, MoleculeGroup{Representative: i, Members: []int{i}, AtomMaps: [][]int{identity}})
	}
	T.groups = groups
	return groups
}

// formulaKey is a cheap invariant of the molecule: element counts and number of bonds.
// Isomorphic molecules always share it.
func formulaKey(m MolGraph) string {
	count := make(map[int]int)
	for i := 0; i < m.Len(); i++ {
		count[m.Atom(i).AtomicNumber]++
	}
	z := make([]int, 0, len(count))
	for k := range count {
		z = append(z, k)
	}
	sort.Ints(z)
	var sb strings.Builder
	for _, v := range z {
		fmt.Fprintf(&sb, "%d.%d ", v, count[v])
	}
	fmt.Fprintf(&sb, "b%d", len(m.Bonds()))
	return sb.String()
}
