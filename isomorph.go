/*
 * isomorph.go, part of gmxff.
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

// wlRounds is the number of label-refinement rounds done before the
// exhaustive search. More rounds rarely help for molecules.
const wlRounds = 3

// adjacency returns, for each atom of m, the set of atoms bonded to it.
func adjacency(m MolGraph) []map[int]bool {
	adj := make([]map[int]bool, m.Len())
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	for _, b := range m.Bonds() {
		adj[b[0]][b[1]] = true
		adj[b[1]][b[0]] = true
	}
	return adj
}

// refine assigns each atom of both molecules a label that depends on its element
// and on the labels of its neighbors (Weisfeiler-Lehman). Labels are comparable
// across the two molecules, as both share the same dictionary.
func refine(a, b MolGraph, adja, adjb []map[int]bool) ([]int, []int) {
	dict := make(map[string]int)
	label := func(s string) int {
		if l, ok := dict[s]; ok {
			return l
		}
		dict[s] = len(dict)
		return dict[s]
	}
	la := make([]int, a.Len())
	lb := make([]int, b.Len())
	for i := range la {
		la[i] = label(fmt.Sprintf("%d:%d", a.Atom(i).AtomicNumber, len(adja[i])))
	}
	for i := range lb {
		lb[i] = label(fmt.Sprintf("%d:%d", b.Atom(i).AtomicNumber, len(adjb[i])))
	}
	step := func(l []int, adj []map[int]bool) []int {
		ret := make([]int, len(l))
		for i := range l {
			nl := make([]int, 0, len(adj[i]))
			for j := range adj[i] {
				nl = append(nl, l[j])
			}
			sort.Ints(nl)
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d|", l[i])
			for _, v := range nl {
				fmt.Fprintf(&sb, "%d,", v)
			}
			ret[i] = label(sb.String())
		}
		return ret
	}
	for r := 0; r < wlRounds; r++ {
		la, lb = step(la, adja), step(lb, adjb)
	}
	return la, lb
}

// Isomorphism returns a mapping from the atoms of a to the atoms of b
// (map[i] is the atom of b that corresponds to atom i of a) that preserves
// elements and bonds, and true. If the molecules are not isomorphic, it returns
// nil and false. If the identity is a valid mapping, the identity is returned.
func Isomorphism(a, b MolGraph) ([]int, bool) {
	n := a.Len()
	if n != b.Len() {
		return nil, false
	}
	ba, bb := a.Bonds(), b.Bonds()
	if len(ba) != len(bb) {
		return nil, false
	}
	adja, adjb := adjacency(a), adjacency(b)
	la, lb := refine(a, b, adja, adjb)
	if !sameLabels(la, lb) {
		return nil, false
	}
	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	if consistent(identity, adja, adjb, la, lb) {
		return identity, true
	}
	//exhaustive search, visiting the atoms of a in breadth-first order so
	//each new atom tends to have a neighbor already mapped.
	order := bfsOrder(adja, n)
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = -1
	}
	used := make([]bool, n)
	var match func(pos int) bool
	match = func(pos int) bool {
		if pos == n {
			return true
		}
		i := order[pos]
		for j := 0; j < n; j++ {
			if used[j] || la[i] != lb[j] {
				continue
			}
			ok := true
			for k := range adja[i] {
				if mapping[k] >= 0 && !adjb[j][mapping[k]] {
					ok = false
					break
				}
			}
			//atoms not bonded in a must not be bonded in b. Counting
			//mapped neighbors on both sides is enough for that.
			if ok {
				mappedA, mappedB := 0, 0
				for k := range adja[i] {
					if mapping[k] >= 0 {
						mappedA++
					}
				}
				for k := range adjb[j] {
					if used[k] {
						mappedB++
					}
				}
				ok = mappedA == mappedB
			}
			if !ok {
				continue
			}
			mapping[i] = j
			used[j] = true
			if match(pos + 1) {
				return true
			}
			mapping[i] = -1
			used[j] = false
		}
		return false
	}
	if !match(0) {
		return nil, false
	}
	return mapping, true
}

func sameLabels(la, lb []int) bool {
	sa := append([]int(nil), la...)
	sb := append([]int(nil), lb...)
	sort.Ints(sa)
	sort.Ints(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// consistent returns true if mapping preserves labels and bonds.
func consistent(mapping []int, adja, adjb []map[int]bool, la, lb []int) bool {
	for i, j := range mapping {
		if la[i] != lb[j] || len(adja[i]) != len(adjb[j]) {
			return false
		}
		for k := range adja[i] {
			if !adjb[j][mapping[k]] {
				return false
			}
		}
	}
	return true
}

// bfsOrder returns all atoms, each connected component in breadth-first order
// starting from its lowest index.
func bfsOrder(adj []map[int]bool, n int) []int {
	seen := make([]bool, n)
	ret := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		seen[s] = true
		queue := []int{s}
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			ret = append(ret, i)
			nb := make([]int, 0, len(adj[i]))
			for k := range adj[i] {
				nb = append(nb, k)
			}
			sort.Ints(nb)
			for _, k := range nb {
				if !seen[k] {
					seen[k] = true
					queue = append(queue, k)
				}
			}
		}
	}
	return ret
}
