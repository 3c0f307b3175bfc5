/*
 * terms.go, part of gmxff.
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
	"fmt"
	"math"

	"github.com/rmera/gmxff/interchange"
	"github.com/rmera/gmxff/top"
	"github.com/rmera/gmxff/units"
)

// global returns the topology indices of the local atoms of molecule rep.
func (c *converter) global(rep int, local ...int) []int {
	ret := make([]int, len(local))
	for i, v := range local {
		ret[i] = c.ic.Topology.AtomIndex(rep, v)
	}
	return ret
}

// bondTerms returns the harmonic bonds of mol. A bond is matched with its
// atoms in either order.
func (c *converter) bondTerms(rep int, mol interchange.Molecule) ([]top.Bond, error) {
	bonds := mol.Bonds()
	if len(bonds) == 0 {
		return nil, nil
	}
	if c.bonds == nil {
		return nil, UnsupportedExportError{msg: fmt.Sprintf("molecule %d has bonds but there is no %s collection", rep, interchange.Bonds), deco: []string{"bondTerms"}}
	}
	ret := make([]top.Bond, 0, len(bonds))
	for _, b := range bonds {
		if b[0] > b[1] {
			b[0], b[1] = b[1], b[0]
		}
		g := c.global(rep, b[0], b[1])
		m := c.bonds.match(g[0], g[1])
		if len(m) == 0 {
			m = c.bonds.match(g[1], g[0])
		}
		if len(m) == 0 {
			return nil, MissingBondError{Atoms: [2]int{g[0], g[1]}, deco: []string{"bondTerms"}}
		}
		p, err := c.bonds.potential(m[0])
		if err != nil {
			return nil, errDecorate(err, "bondTerms")
		}
		length, err := c.bonds.param(p, m[0], "length", units.Nanometer)
		if err != nil {
			return nil, errDecorate(err, "bondTerms")
		}
		k, err := c.bonds.param(p, m[0], "k", units.KJPerMolNm2)
		if err != nil {
			return nil, errDecorate(err, "bondTerms")
		}
		ret = append(ret, top.Bond{Atoms: [2]int{b[0] + 1, b[1] + 1}, Length: length, K: k})
	}
	return ret, nil
}

// angleTerms returns the harmonic angles of mol. Only the atom order the
// molecule gives is matched.
func (c *converter) angleTerms(rep int, mol interchange.Molecule) ([]top.Angle, error) {
	angles := mol.Angles()
	if len(angles) == 0 {
		return nil, nil
	}
	if c.angles == nil {
		return nil, UnsupportedExportError{msg: fmt.Sprintf("molecule %d has angles but there is no %s collection", rep, interchange.Angles), deco: []string{"angleTerms"}}
	}
	ret := make([]top.Angle, 0, len(angles))
	for _, a := range angles {
		g := c.global(rep, a[:]...)
		m := c.angles.match(g...)
		if len(m) == 0 {
			return nil, MissingAngleError{Atoms: [3]int{g[0], g[1], g[2]}, deco: []string{"angleTerms"}}
		}
		p, err := c.angles.potential(m[0])
		if err != nil {
			return nil, errDecorate(err, "angleTerms")
		}
		theta, err := c.angles.param(p, m[0], "angle", units.Degree)
		if err != nil {
			return nil, errDecorate(err, "angleTerms")
		}
		k, err := c.angles.param(p, m[0], "k", units.KJPerMolRad2)
		if err != nil {
			return nil, errDecorate(err, "angleTerms")
		}
		ret = append(ret, top.Angle{Atoms: [3]int{a[0] + 1, a[1] + 1, a[2] + 1}, Angle: theta, K: k})
	}
	return ret, nil
}

// periodic reads the phase, force constant and periodicity of a periodic
// torsion entry. k is divided by idivf. If idivf is absent, it is 1
// unless required is set.
func (c *converter) periodic(K *keyIndex, e interchange.KeyMapEntry, required bool) (phi, k float64, n int, err error) {
	p, err := K.potential(e)
	if err != nil {
		return
	}
	if phi, err = K.param(p, e, "phase", units.Degree); err != nil {
		return
	}
	if k, err = K.param(p, e, "k", units.KilojoulePerMole); err != nil {
		return
	}
	if n, err = K.intParam(p, e, "periodicity"); err != nil {
		return
	}
	idivf := 1
	if _, ok := p.Param("idivf"); ok || required {
		if idivf, err = K.intParam(p, e, "idivf"); err != nil {
			return
		}
	}
	if idivf == 0 {
		err = UnsupportedExportError{msg: fmt.Sprintf("%s: idivf of 0 for atoms %v", K.name, e.Key.AtomIndices), deco: []string{"periodic"}}
		return
	}
	k /= float64(idivf)
	return
}

// dihedralTerms returns the dihedrals of mol: one periodic record per
// matched proper torsion term, one Ryckaert-Bellemans record per matched
// RB term and one periodic improper per matched improper term.
// Every proper must match at least one term.
func (c *converter) dihedralTerms(rep int, mol interchange.Molecule) ([]top.Dihedral, error) {
	var ret []top.Dihedral
	for _, d := range mol.Propers() {
		g := c.global(rep, d[:]...)
		local := [4]int{d[0] + 1, d[1] + 1, d[2] + 1, d[3] + 1}
		pm := c.propers.match(g...)
		rm := c.rb.match(g...)
		if len(pm)+len(rm) == 0 {
			return nil, MissingTorsionError{Atoms: [4]int{g[0], g[1], g[2], g[3]}, deco: []string{"dihedralTerms"}}
		}
		for _, e := range pm {
			phi, k, n, err := c.periodic(c.propers, e, false)
			if err != nil {
				return nil, errDecorate(err, "dihedralTerms")
			}
			ret = append(ret, top.NewPeriodicProper(local, phi, k, n))
		}
		for _, e := range rm {
			p, err := c.rb.potential(e)
			if err != nil {
				return nil, errDecorate(err, "dihedralTerms")
			}
			var cs [6]float64
			for i := range cs {
				if cs[i], err = c.rb.param(p, e, fmt.Sprintf("C%d", i), units.KilojoulePerMole); err != nil {
					return nil, errDecorate(err, "dihedralTerms")
				}
			}
			ret = append(ret, top.NewRyckaertBellemans(local, cs))
		}
	}
	if c.impropers == nil {
		return ret, nil
	}
	// Impropers come with the central atom second, but are assigned
	// with it first. The records keep the central atom second.
	for _, d := range mol.Impropers() {
		g := c.global(rep, d[1], d[0], d[2], d[3])
		for _, e := range c.impropers.match(g...) {
			phi, k, n, err := c.periodic(c.impropers, e, true)
			if err != nil {
				return nil, errDecorate(err, "dihedralTerms")
			}
			ret = append(ret, top.NewPeriodicImproper([4]int{d[0] + 1, d[1] + 1, d[2] + 1, d[3] + 1}, phi, k, n))
		}
	}
	return ret, nil
}

// constraint returns the constrained distance between 2 atoms, in nm, and
// whether they are constrained at all.
func (c *converter) constraint(a, b int) (float64, bool, error) {
	m := c.constraints.match(a, b)
	if len(m) == 0 {
		m = c.constraints.match(b, a)
	}
	if len(m) == 0 {
		return 0, false, nil
	}
	p, err := c.constraints.potential(m[0])
	if err != nil {
		return 0, true, errDecorate(err, "constraint")
	}
	d, err := c.constraints.param(p, m[0], "distance", units.Nanometer)
	if err != nil {
		return 0, true, errDecorate(err, "constraint")
	}
	return d, true, nil
}

// rigidWater returns the settle for mol if it is a 3-site water with all
// its distances constrained, and nil otherwise. The oxygen must be the
// first atom.
func (c *converter) rigidWater(rep int, mol interchange.Molecule) (*top.Settle, error) {
	if c.constraints == nil || mol.Len() != 3 || len(mol.Bonds()) != 2 {
		return nil, nil
	}
	o := -1
	for i := 0; i < 3; i++ {
		switch mol.Atom(i).AtomicNumber {
		case 8:
			if o >= 0 {
				return nil, nil
			}
			o = i
		case 1:
		default:
			return nil, nil
		}
	}
	if o < 0 {
		return nil, nil
	}
	for _, b := range mol.Bonds() {
		if b[0] != o && b[1] != o {
			return nil, nil
		}
	}
	g := c.global(rep, 0, 1, 2)
	var d [3]float64
	for i, p := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
		v, ok, err := c.constraint(g[p[0]], g[p[1]])
		if err != nil {
			return nil, errDecorate(err, "rigidWater")
		}
		if !ok {
			return nil, nil
		}
		d[i] = v
	}
	if o != 0 {
		return nil, UnsupportedExportError{msg: fmt.Sprintf("rigid water %d: the oxygen must be the first atom", rep), deco: []string{"rigidWater"}}
	}
	if math.Abs(d[0]-d[1]) > 1e-6 {
		return nil, UnsupportedExportError{msg: fmt.Sprintf("rigid water %d: different O-H distances %g and %g", rep, d[0], d[1]), deco: []string{"rigidWater"}}
	}
	return &top.Settle{First: 1, DOH: d[0], DHH: d[2]}, nil
}
