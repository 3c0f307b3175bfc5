/*
 * index.go, part of gmxff.
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

package convert

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/gmxff/interchange"
	"github.com/rmera/gmxff/units"
)

// keyIndex looks up the entries of a collection's key map by atom tuple.
// A nil *keyIndex stands for an absent collection, and matches nothing.
type keyIndex struct {
	name string
	c    *interchange.Collection
	m    map[string][]interchange.KeyMapEntry
}

func tuple(atoms []int) string {
	s := make([]string, len(atoms))
	for i, v := range atoms {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, " ")
}

// newKeyIndex indexes the collection name of ic. It returns nil
// if there is no such collection.
func newKeyIndex(ic *interchange.Interchange, name string) *keyIndex {
	c, ok := ic.Collection(name)
	if !ok {
		return nil
	}
	K := &keyIndex{name: name, c: c, m: make(map[string][]interchange.KeyMapEntry, len(c.KeyMap))}
	for _, e := range c.KeyMap {
		t := tuple(e.Key.AtomIndices)
		K.m[t] = append(K.m[t], e)
	}
	for _, v := range K.m {
		sort.SliceStable(v, func(i, j int) bool { return v[i].Key.Mult < v[j].Key.Mult })
	}
	return K
}

// match returns the entries for exactly these atoms, in this order, sorted by Mult.
func (K *keyIndex) match(atoms ...int) []interchange.KeyMapEntry {
	if K == nil {
		return nil
	}
	return K.m[tuple(atoms)]
}

// potential returns the parameters the entry e points to.
func (K *keyIndex) potential(e interchange.KeyMapEntry) (interchange.Potential, error) {
	p, ok := K.c.Potential(e.Potential)
	if !ok {
		return p, LookupError{Collection: K.name, Key: e.Key.AtomIndices, Param: "potential " + e.Potential.ID, deco: []string{"keyIndex.potential"}}
	}
	return p, nil
}

// single returns the potential assigned to a single atom.
func (K *keyIndex) single(atom int) (interchange.Potential, error) {
	m := K.match(atom)
	if len(m) == 0 {
		return interchange.Potential{}, LookupError{Collection: K.name, Key: []int{atom}, deco: []string{"keyIndex.single"}}
	}
	return K.potential(m[0])
}

// param returns the parameter name of p in the unit target.
func (K *keyIndex) param(p interchange.Potential, e interchange.KeyMapEntry, name, target string) (float64, error) {
	q, ok := p.Param(name)
	if !ok {
		return 0, LookupError{Collection: K.name, Key: e.Key.AtomIndices, Param: name, deco: []string{"keyIndex.param"}}
	}
	v, err := q.In(target)
	if err != nil {
		return 0, errDecorate(err, "keyIndex.param "+K.name+" "+name)
	}
	return v, nil
}

// intParam returns the dimensionless parameter name, truncated to an integer.
func (K *keyIndex) intParam(p interchange.Potential, e interchange.KeyMapEntry, name string) (int, error) {
	v, err := K.param(p, e, name, units.Dimensionless)
	return int(v), err
}
