/*
 * chem.go, part of gmxff.
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

	"gonum.org/v1/gonum/graph/simple"
)

// Atom contains the data of an atom that a force-field exporter needs.
type Atom struct {
	Name         string //"" if the atom has no name.
	Symbol       string
	AtomicNumber int
	Index        int     //0-based index in its molecule
	MolName      string  //residue name, "" if not annotated
	MolID        int     //residue number, meaningful only if MolIDSet
	MolIDSet     bool
	Charge       float64 //partial charge in elementary charges
	ChargeSet    bool    //false if the atom has no partial charge assigned.
}

// Molecule is a named set of bonded atoms. It implements MolGraph.
// The bonded terms are derived from the bonds when first requested
// and cached; a Molecule should not be modified after it is built.
type Molecule struct {
	name  string
	atoms []*Atom
	bonds []*Bond
	g     *simple.UndirectedGraph

	angles    [][3]int
	propers   [][4]int
	impropers [][4]int
	pairs14   [][2]int
	derived   bool
}

// NewMolecule builds a molecule with the given name, atoms and bonds.
// Each bond is a pair of 0-based atom indices. The Index field of the atoms
// is set to their position in atoms, and the element symbol is filled from
// the atomic number if not given. Returns an error for out-of-range or repeated
// bonds, self-bonds, or unknown elements.
func NewMolecule(name string, atoms []*Atom, bonds [][2]int) (*Molecule, error) {
	M := &Molecule{name: name, atoms: atoms, g: simple.NewUndirectedGraph()}
	for i, at := range atoms {
		if at == nil {
			return nil, CError{msg: fmt.Sprintf("nil atom %d in molecule %q", i, name), deco: []string{"NewMolecule"}}
		}
		at.Index = i
		if at.Symbol == "" {
			s, err := Symbol(at.AtomicNumber)
			if err != nil {
				return nil, errDecorate(err, "NewMolecule")
			}
			at.Symbol = s
		}
		M.g.AddNode(simple.Node(i))
	}
	for i, b := range bonds {
		a1, a2 := b[0], b[1]
		if a1 < 0 || a2 < 0 || a1 >= len(atoms) || a2 >= len(atoms) {
			return nil, CError{msg: fmt.Sprintf("bond %d (%d-%d) out of range in molecule %q with %d atoms", i, a1, a2, name, len(atoms)), deco: []string{"NewMolecule"}}
		}
		if a1 == a2 {
			return nil, CError{msg: fmt.Sprintf("bond %d joins atom %d to itself in molecule %q", i, a1, name), deco: []string{"NewMolecule"}}
		}
		if M.g.HasEdgeBetween(int64(a1), int64(a2)) {
			return nil, CError{msg: fmt.Sprintf("bond %d-%d given twice in molecule %q", a1, a2, name), deco: []string{"NewMolecule"}}
		}
		if a1 > a2 {
			a1, a2 = a2, a1
		}
		M.bonds = append(M.bonds, &Bond{Index: i, At1: atoms[a1], At2: atoms[a2]})
		M.g.SetEdge(simple.Edge{F: simple.Node(a1), T: simple.Node(a2)})
	}
	return M, nil
}

// Name returns the name of the molecule.
func (M *Molecule) Name() string { return M.name }

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int { return len(M.atoms) }

// Atom returns the ith atom. Panics if i is out of range.
func (M *Molecule) Atom(i int) *Atom { return M.atoms[i] }

// Bonds returns each bond as a pair of atom indices, lowest index first,
// in the order the bonds were given.
func (M *Molecule) Bonds() [][2]int {
	ret := make([][2]int, 0, len(M.bonds))
	for _, b := range M.bonds {
		ret = append(ret, [2]int{b.At1.Index, b.At2.Index})
	}
	return ret
}

// Angles returns all the angles i-j-k in the molecule, with i<k.
func (M *Molecule) Angles() [][3]int {
	M.derive()
	return M.angles
}

// Propers returns all the proper torsions i-j-k-l in the molecule, with i<l.
func (M *Molecule) Propers() [][4]int {
	M.derive()
	return M.propers
}

// Impropers returns the impropers around every atom with exactly 3 neighbors,
// central atom second.
func (M *Molecule) Impropers() [][4]int {
	M.derive()
	return M.impropers
}

// Pairs14 returns the pairs of atoms whose shortest bond path has exactly 3 bonds.
func (M *Molecule) Pairs14() [][2]int {
	M.derive()
	return M.pairs14
}

func (M *Molecule) derive() {
	if M.derived {
		return
	}
	M.angles = angles(M.g, len(M.atoms))
	M.propers = propers(M.g, len(M.atoms))
	M.impropers = impropers(M.g, len(M.atoms))
	M.pairs14 = pairs14(M.g, len(M.atoms))
	M.derived = true
}

// IsIsomorphicWith returns true if the receiver and other have the same
// elements and connectivity, regardless of atom order.
func (M *Molecule) IsIsomorphicWith(other MolGraph) bool {
	_, ok := Isomorphism(M, other)
	return ok
}
