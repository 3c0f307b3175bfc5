/*
 * bonds.go, part of gmxff.
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
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Bond joins 2 atoms of the same molecule. Index is the position
// of the bond in the molecule's bond list.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
}

// neighbors returns the indexes of the atoms bonded to i, in increasing order.
func neighbors(g *simple.UndirectedGraph, i int) []int {
	nodes := graph.NodesOf(g.From(int64(i)))
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}

// lexical orderings for the enumerations, so results don't depend
// on the graph's map iteration.
func less(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// angles returns every i-j-k with j bonded to both, i<k.
func angles(g *simple.UndirectedGraph, natoms int) [][3]int {
	var ret [][3]int
	for j := 0; j < natoms; j++ {
		n := neighbors(g, j)
		for a := 0; a < len(n); a++ {
			for b := a + 1; b < len(n); b++ {
				ret = append(ret, [3]int{n[a], j, n[b]})
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool { return less(ret[i][:], ret[j][:]) })
	return ret
}

// propers returns every path i-j-k-l with 4 different atoms, i<l.
// Each torsion appears once.
func propers(g *simple.UndirectedGraph, natoms int) [][4]int {
	var ret [][4]int
	for j := 0; j < natoms; j++ {
		nj := neighbors(g, j)
		for _, k := range nj {
			for _, i := range nj {
				if i == k {
					continue
				}
				for _, l := range neighbors(g, k) {
					if l == j || l == i { //l==i is a 3-membered ring
						continue
					}
					if i < l {
						ret = append(ret, [4]int{i, j, k, l})
					}
				}
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool { return less(ret[i][:], ret[j][:]) })
	return ret
}

// the 6 orderings of 3 outer atoms.
var perm3 = [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

// impropers returns, for each atom with exactly 3 bonds, the 6 orderings
// of its neighbors, with the central atom in the second place.
func impropers(g *simple.UndirectedGraph, natoms int) [][4]int {
	var ret [][4]int
	for c := 0; c < natoms; c++ {
		n := neighbors(g, c)
		if len(n) != 3 {
			continue
		}
		for _, p := range perm3 {
			ret = append(ret, [4]int{n[p[0]], c, n[p[1]], n[p[2]]})
		}
	}
	sort.Slice(ret, func(i, j int) bool { return less(ret[i][:], ret[j][:]) })
	return ret
}

// pairs14 returns the pairs of atoms whose shortest path along bonds is
// exactly 3 bonds long. Atoms in small rings can be connected by several
// paths, only the shortest counts.
func pairs14(g *simple.UndirectedGraph, natoms int) [][2]int {
	var ret [][2]int
	for i := 0; i < natoms; i++ {
		var bf traverse.BreadthFirst
		bf.Walk(g, g.Node(int64(i)), func(n graph.Node, depth int) bool {
			if depth > 3 {
				return true
			}
			if j := int(n.ID()); depth == 3 && j > i {
				ret = append(ret, [2]int{i, j})
			}
			return false
		})
	}
	sort.Slice(ret, func(i, j int) bool { return less(ret[i][:], ret[j][:]) })
	return ret
}
