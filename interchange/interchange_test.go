/*
 * interchange_test.go, part of gmxff.
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

package interchange

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/gmxff/zio"
)

func TestReadJSON(Te *testing.T) {
	I, err := ReadFile("testdata/water.json")
	if err != nil {
		Te.Fatal(err)
	}
	if I.Topology.NMolecules() != 2 || I.Topology.NAtoms() != 6 {
		Te.Fatalf("expected 2 molecules and 6 atoms, got %d and %d", I.Topology.NMolecules(), I.Topology.NAtoms())
	}
	h2 := I.Topology.Molecule(0).Atom(2)
	if h2.AtomicNumber != 1 || !h2.ChargeSet || h2.Charge != 0.417 {
		Te.Errorf("atom from element symbol not built right: %+v", h2)
	}
	groups := I.Topology.IdenticalMoleculeGroups()
	if len(groups) != 1 || len(groups[0].Members) != 2 {
		Te.Errorf("both waters should be in one group, got %+v", groups)
	}
	bonds, ok := I.Collection(Bonds)
	if !ok {
		Te.Fatal("no Bonds collection")
	}
	if m := bonds.Match(2, 0); len(m) != 1 || m[0].Potential.ID != "[#1:1]-[#8X2H2+0:2]-[#1]" {
		Te.Errorf("bond 2-0 not matched: %v", m)
	}
	if m := bonds.Match(0, 2); m != nil {
		Te.Errorf("Match must not reverse keys, got %v", m)
	}
	el, _ := I.Collection(Electrostatics)
	q, ok := el.Charge(3)
	if !ok || q.Value != -0.834 {
		Te.Errorf("charge of atom 3: %v %v", q, ok)
	}
	if _, ok := el.Charge(17); ok {
		Te.Error("charge found for a missing atom")
	}
	pos, err := I.Positions.InNm()
	if err != nil {
		Te.Fatal(err)
	}
	if v := pos.Vec(4); math.Abs(v[0]-0.59572) > 1e-12 {
		Te.Errorf("position not converted to nm: %v", v)
	}
	box, err := I.Box.InNm()
	if err != nil {
		Te.Fatal(err)
	}
	if !box.IsDiagonal() || math.Abs(box.At(1, 1)-2) > 1e-12 {
		Te.Errorf("bad box %v", box)
	}
}

func TestReadYAML(Te *testing.T) {
	I, err := ReadFile("testdata/argon.yaml")
	if err != nil {
		Te.Fatal(err)
	}
	vdw, ok := I.Collection(VdW)
	if !ok || vdw.MixingRule != "geometric" || vdw.Type != VdW {
		Te.Errorf("vdW collection not read right: %+v", vdw)
	}
	if I.Box != nil {
		Te.Error("no box given, but one was read")
	}
	if I.Topology.Molecule(1).Atom(0).AtomicNumber != 18 {
		Te.Error("argon not recognized")
	}
}

func TestReadCompressed(Te *testing.T) {
	data, err := os.ReadFile("testdata/water.json")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "water.json.gz")
	f, err := zio.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	f.Write(data)
	if err := f.Close(); err != nil {
		Te.Fatal(err)
	}
	I, err := ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if I.Name != "two waters" {
		Te.Errorf("got name %q", I.Name)
	}
}

func TestMatchOrder(Te *testing.T) {
	C := &Collection{KeyMap: []KeyMapEntry{
		{Key: TopologyKey{AtomIndices: []int{0, 1, 2, 3}, Mult: 2}, Potential: PotentialKey{ID: "t1", Mult: 2}},
		{Key: TopologyKey{AtomIndices: []int{3, 2, 1, 0}, Mult: 0}, Potential: PotentialKey{ID: "t2"}},
		{Key: TopologyKey{AtomIndices: []int{0, 1, 2, 3}, Mult: 0}, Potential: PotentialKey{ID: "t1"}},
		{Key: TopologyKey{AtomIndices: []int{0, 1, 2, 3}, Mult: 1}, Potential: PotentialKey{ID: "t1", Mult: 1}},
	}}
	var got []int
	for _, e := range C.Match(0, 1, 2, 3) {
		got = append(got, e.Key.Mult)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		Te.Errorf("matches not ordered by mult (-want +got):\n%s", diff)
	}
}

func TestReadErrors(Te *testing.T) {
	cases := map[string]string{
		"unknown field": `{"nombre": "x"}`,
		"bad bond":      `{"topology": {"molecules": [{"name": "A", "atoms": [{"atomic_number": 6}], "bonds": [[0, 1]]}]}}`,
		"bad key": `{"topology": {"molecules": [{"name": "A", "atoms": [{"atomic_number": 6}]}]},
			"collections": {"vdW": {"key_map": [{"key": {"atom_indices": [4]}, "potential": {"id": "x"}}]}}}`,
		"position count": `{"topology": {"molecules": [{"name": "A", "atoms": [{"atomic_number": 6}]}]},
			"positions": {"unit": "nanometer", "values": [[0, 0, 0], [1, 1, 1]]}}`,
		"position unit": `{"topology": {"molecules": [{"name": "A", "atoms": [{"atomic_number": 6}]}]},
			"positions": {"unit": "kelvin", "values": [[0, 0, 0]]}}`,
		"element mismatch": `{"topology": {"molecules": [{"name": "A", "atoms": [{"atomic_number": 6, "element": "N"}]}]}}`,
	}
	for name, in := range cases {
		if _, err := Read(strings.NewReader(in), JSON); err == nil {
			Te.Errorf("%s: expected an error", name)
		}
	}
	_, err := Read(bytes.NewReader([]byte(`{"nombre": "x"}`)), JSON)
	var ierr Error
	if !errors.As(err, &ierr) {
		Te.Errorf("expected an interchange.Error, got %T", err)
	}
	if _, err := ReadFile("testdata/water.xml"); err == nil {
		Te.Error("expected an error for an unknown extension")
	}
}

func TestResidueNumber(Te *testing.T) {
	in := `{"topology": {"molecules": [{"name": "A", "atoms": [
		{"atomic_number": 6, "residue_name": "ALA", "residue_number": 0},
		{"atomic_number": 6}]}]}}`
	I, err := Read(strings.NewReader(in), JSON)
	if err != nil {
		Te.Fatal(err)
	}
	mol := I.Topology.Molecule(0)
	if a := mol.Atom(0); !a.MolIDSet || a.MolID != 0 {
		Te.Errorf("explicit residue number 0 not kept: %+v", a)
	}
	if a := mol.Atom(1); a.MolIDSet {
		Te.Errorf("residue number set for an atom without one: %+v", a)
	}
}
