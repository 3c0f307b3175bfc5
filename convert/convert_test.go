/*
 * convert_test.go, part of gmxff.
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
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	chem "github.com/rmera/gmxff"
	"github.com/rmera/gmxff/interchange"
	"github.com/rmera/gmxff/top"
	"github.com/rmera/gmxff/units"
	"go.uber.org/zap/zaptest"
)

type params map[string]units.Quantity

var (
	bondParams  = params{"length": units.Q(0.15, "nanometer"), "k": units.Q(300000, "kJ/mol/nm^2")}
	angleParams = params{"angle": units.Q(109.5, "degree"), "k": units.Q(100, "kilocalorie / mole / radian ** 2")}
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9*math.Max(1, math.Abs(b))
}

func molecule(Te *testing.T, name string, z []int, bonds [][2]int) *chem.Molecule {
	Te.Helper()
	atoms := make([]*chem.Atom, len(z))
	for i, v := range z {
		atoms[i] = &chem.Atom{AtomicNumber: v}
	}
	m, err := chem.NewMolecule(name, atoms, bonds)
	if err != nil {
		Te.Fatal(err)
	}
	return m
}

func water(Te *testing.T) *chem.Molecule {
	return molecule(Te, "WAT", []int{8, 1, 1}, [][2]int{{0, 1}, {0, 2}})
}

func collection(ic *interchange.Interchange, name string) *interchange.Collection {
	c := &interchange.Collection{Type: name, Potentials: map[interchange.PotentialKey]interchange.Potential{}}
	ic.Collections[name] = c
	return c
}

// assign gives the parameters p to the atoms, through a potential key with the id and mult.
func assign(c *interchange.Collection, id string, mult int, p params, atoms ...int) {
	pk := interchange.PotentialKey{ID: id, Mult: mult}
	c.Potentials[pk] = interchange.Potential{Parameters: p}
	c.KeyMap = append(c.KeyMap, interchange.KeyMapEntry{Key: interchange.TopologyKey{AtomIndices: atoms, Mult: mult}, Potential: pk})
}

// newIC returns an interchange over mols where every atom has Lennard-Jones
// parameters and a charge assigned.
func newIC(mixing string, mols ...*chem.Molecule) *interchange.Interchange {
	T := chem.NewTopology(mols...)
	ic := &interchange.Interchange{Topology: T, Collections: map[string]*interchange.Collection{}}
	vdw := collection(ic, interchange.VdW)
	vdw.MixingRule, vdw.Scale14 = mixing, 0.5
	el := collection(ic, interchange.Electrostatics)
	el.Scale14 = 0.8333333333
	for i := 0; i < T.NAtoms(); i++ {
		assign(vdw, "lj", 0, params{"sigma": units.Q(3.4, "angstrom"), "epsilon": units.Q(0.1, "kilocalorie_per_mole")}, i)
		assign(el, "q", 0, params{"charge": units.Q(0, "elementary_charge")}, i)
	}
	return ic
}

// parameterize assigns the same bond and angle parameters to every
// bond and angle in ic, in the order the molecules give them.
func parameterize(ic *interchange.Interchange) {
	T := ic.Topology
	b := collection(ic, interchange.Bonds)
	a := collection(ic, interchange.Angles)
	for m := 0; m < T.NMolecules(); m++ {
		mol := T.Molecule(m)
		for _, v := range mol.Bonds() {
			assign(b, "b", 0, bondParams, T.AtomIndex(m, v[0]), T.AtomIndex(m, v[1]))
		}
		for _, v := range mol.Angles() {
			assign(a, "a", 0, angleParams, T.AtomIndex(m, v[0]), T.AtomIndex(m, v[1]), T.AtomIndex(m, v[2]))
		}
	}
}

func TestDiatomic(Te *testing.T) {
	ic := newIC("geometric", molecule(Te, "DI", []int{6, 6}, [][2]int{{0, 1}}))
	parameterize(ic)
	S, err := ToSystem(ic, WithLogger(zaptest.NewLogger(Te)))
	if err != nil {
		Te.Fatal(err)
	}
	if S.Name != DefaultName || S.CombinationRule != 3 || !S.GenPairs || S.FudgeLJ != 0.5 {
		Te.Errorf("wrong defaults: %+v", S)
	}
	if len(S.AtomTypes) != 2 || S.AtomTypes[0].Name != "DI_0" || S.AtomTypes[1].Name != "DI_1" {
		Te.Fatalf("wrong atom types %v", S.AtomTypes)
	}
	for _, at := range S.AtomTypes {
		if !near(at.Sigma, 0.34) || !near(at.Epsilon, 0.4184) || at.Charge != 0 || at.ParticleType != "A" || at.AtomicNumber != 6 {
			Te.Errorf("wrong atom type %+v", at)
		}
	}
	var b bytes.Buffer
	if err := S.WriteTop(&b); err != nil {
		Te.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"     1\t     3\tyes   \t0.500000\t0.833333\n",
		"     1     2     1          0.150000     300000.000000\n",
		"DI\t1\n",
	} {
		if !strings.Contains(out, want) {
			Te.Errorf("%q not in the topology:\n%s", want, out)
		}
	}
}

func TestBondReversal(Te *testing.T) {
	ic := newIC("geometric", molecule(Te, "DI", []int{6, 6}, [][2]int{{1, 0}}))
	assign(collection(ic, interchange.Bonds), "b", 0, bondParams, 1, 0)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	want := []top.Bond{{Atoms: [2]int{1, 2}, Length: 0.15, K: 300000}}
	if diff := cmp.Diff(want, S.MoleculeTypes[0].Bonds, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("bonds differ (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(Te *testing.T) {
	ic := newIC("lorentz-berthelot", molecule(Te, "HOH", []int{8, 1, 1}, [][2]int{{0, 1}, {0, 2}}))
	parameterize(ic)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	var b bytes.Buffer
	if err := S.WriteTop(&b); err != nil {
		Te.Fatal(err)
	}
	R, err := top.ReadTop(&b)
	if err != nil {
		Te.Fatal(err)
	}
	if R.NAtoms() != 3 || R.CombinationRule != 2 {
		Te.Fatalf("read %d atoms and combination rule %d", R.NAtoms(), R.CombinationRule)
	}
	mt := R.MoleculeTypes[0]
	if diff := cmp.Diff(S.MoleculeTypes[0].Bonds, mt.Bonds, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		Te.Errorf("bonds differ (-want +got):\n%s", diff)
	}
	want := []top.Angle{{Atoms: [3]int{2, 1, 3}, Angle: 109.5, K: 418.4}}
	if diff := cmp.Diff(want, mt.Angles, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		Te.Errorf("angles differ (-want +got):\n%s", diff)
	}
}

// formaldehyde, with the carbon as the central atom of the impropers.
func TestImproper(Te *testing.T) {
	ic := newIC("geometric", molecule(Te, "CHO", []int{6, 8, 1, 1}, [][2]int{{0, 1}, {0, 2}, {0, 3}}))
	parameterize(ic)
	imp := collection(ic, interchange.ImproperTorsions)
	assign(imp, "[*:1]~[#6X3:2](~[*:3])~[*:4]", 0, params{
		"phase":       units.Q(180, "degree"),
		"k":           units.Q(1.1, "kilocalorie_per_mole"),
		"periodicity": units.Q(2, "dimensionless"),
		"idivf":       units.Q(3, ""),
	}, 0, 1, 2, 3)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	want := []top.Dihedral{top.NewPeriodicImproper([4]int{2, 1, 3, 4}, 180, 1.1*4.184/3, 2)}
	if diff := cmp.Diff(want, S.MoleculeTypes[0].Dihedrals, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("impropers differ (-want +got):\n%s", diff)
	}
	delete(imp.Potentials[interchange.PotentialKey{ID: "[*:1]~[#6X3:2](~[*:3])~[*:4]"}].Parameters, "idivf")
	if _, err := ToSystem(ic); !errors.As(err, new(LookupError)) {
		Te.Errorf("improper without idivf: got %v", err)
	}
}

func TestPropers(Te *testing.T) {
	ic := newIC("geometric", molecule(Te, "BUT", []int{6, 6, 6, 6}, [][2]int{{0, 1}, {1, 2}, {2, 3}}))
	parameterize(ic)
	_, err := ToSystem(ic)
	var merr MissingTorsionError
	if !errors.As(err, &merr) || !errors.Is(err, ErrMissingParameterMatch) || merr.Atoms != [4]int{0, 1, 2, 3} {
		Te.Fatalf("expected a missing torsion error for 0 1 2 3, got %v", err)
	}
	pt := collection(ic, interchange.ProperTorsions)
	assign(pt, "t", 1, params{"phase": units.Q(0, "degree"), "k": units.Q(2, "kilojoule_per_mole"), "periodicity": units.Q(1, "")}, 0, 1, 2, 3)
	assign(pt, "t", 0, params{"phase": units.Q(180, "degree"), "k": units.Q(1, "kilocalorie_per_mole"), "periodicity": units.Q(3, ""), "idivf": units.Q(2, "")}, 0, 1, 2, 3)
	rb := collection(ic, interchange.RBTorsions)
	assign(rb, "rb", 0, params{
		"C0": units.Q(1, "kJ/mol"), "C1": units.Q(2, "kJ/mol"), "C2": units.Q(3, "kJ/mol"),
		"C3": units.Q(4, "kJ/mol"), "C4": units.Q(0, "kJ/mol"), "C5": units.Q(1, "kcal/mol"),
	}, 0, 1, 2, 3)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	atoms := [4]int{1, 2, 3, 4}
	want := []top.Dihedral{
		top.NewPeriodicProper(atoms, 180, 4.184/2, 3),
		top.NewPeriodicProper(atoms, 0, 2, 1),
		top.NewRyckaertBellemans(atoms, [6]float64{1, 2, 3, 4, 0, 4.184}),
	}
	mt := S.MoleculeTypes[0]
	if diff := cmp.Diff(want, mt.Dihedrals, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("dihedrals differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]top.Pair{{Atoms: [2]int{1, 4}}}, mt.Pairs); diff != "" {
		Te.Errorf("pairs differ (-want +got):\n%s", diff)
	}
	//the key map is matched only forward for propers.
	pt.KeyMap = pt.KeyMap[:0]
	rb.KeyMap = rb.KeyMap[:0]
	assign(pt, "t", 0, params{"phase": units.Q(0, "degree"), "k": units.Q(2, "kilojoule_per_mole"), "periodicity": units.Q(1, "")}, 3, 2, 1, 0)
	if _, err := ToSystem(ic); !errors.As(err, &merr) {
		Te.Errorf("reversed proper matched: %v", err)
	}
}

func TestMissingTerms(Te *testing.T) {
	ar := molecule(Te, "AR", []int{18}, nil)
	ic := newIC("geometric", ar, molecule(Te, "DI", []int{6, 6}, [][2]int{{0, 1}}))
	_, err := ToSystem(ic)
	if !errors.Is(err, ErrUnsupportedConfiguration) {
		Te.Errorf("no bonds collection: got %v", err)
	}
	collection(ic, interchange.Bonds)
	_, err = ToSystem(ic)
	var berr MissingBondError
	if !errors.As(err, &berr) || !errors.Is(err, ErrMissingParameterMatch) || berr.Atoms != [2]int{1, 2} {
		Te.Errorf("expected a missing bond error for 1 2, got %v", err)
	}

	ic = newIC("geometric", ar, water(Te))
	parameterize(ic)
	a := ic.Collections[interchange.Angles]
	a.KeyMap = []interchange.KeyMapEntry{{Key: interchange.TopologyKey{AtomIndices: []int{3, 1, 2}}, Potential: interchange.PotentialKey{ID: "a"}}}
	_, err = ToSystem(ic)
	var aerr MissingAngleError
	if !errors.As(err, &aerr) || !errors.Is(err, ErrMissingParameterMatch) || aerr.Atoms != [3]int{2, 1, 3} {
		Te.Errorf("expected a missing angle error for 2 1 3, got %v", err)
	}
}

func TestGlobals(Te *testing.T) {
	for rule, want := range map[string]int{"Lorentz-Berthelot": 2, "lorentz-berthelot": 2, "geometric": 3} {
		S, err := ToSystem(newIC(rule, molecule(Te, "AR", []int{18}, nil)), WithName("argon"))
		if err != nil {
			Te.Fatal(err)
		}
		if S.CombinationRule != want || S.Name != "argon" || S.FudgeQQ != 0.8333333333 {
			Te.Errorf("mixing rule %s: got %+v", rule, S)
		}
	}
	ic := newIC("arithmetic", molecule(Te, "AR", []int{18}, nil))
	if _, err := ToSystem(ic); !errors.Is(err, ErrUnsupportedConfiguration) {
		Te.Errorf("unknown mixing rule: got %v", err)
	}
	for _, c := range []string{interchange.VdW, interchange.Electrostatics} {
		ic := newIC("geometric", molecule(Te, "AR", []int{18}, nil))
		delete(ic.Collections, c)
		var uerr UnsupportedExportError
		if _, err := ToSystem(ic); !errors.As(err, &uerr) {
			Te.Errorf("no %s collection: got %v", c, err)
		}
	}
	if _, err := ToSystem(nil); !errors.Is(err, ErrUnsupportedConfiguration) {
		Te.Errorf("nil interchange: got %v", err)
	}
}

func TestLookup(Te *testing.T) {
	ic := newIC("geometric", molecule(Te, "AR", []int{18}, nil), molecule(Te, "NE", []int{10}, nil))
	vdw := ic.Collections[interchange.VdW]
	vdw.KeyMap = vdw.KeyMap[:1]
	_, err := ToSystem(ic)
	var lerr LookupError
	if !errors.As(err, &lerr) || lerr.Collection != interchange.VdW || !cmp.Equal(lerr.Key, []int{1}) {
		Te.Errorf("expected a vdW lookup error for atom 1, got %v", err)
	}
	ic = newIC("geometric", molecule(Te, "AR", []int{18}, nil))
	el := ic.Collections[interchange.Electrostatics]
	el.Potentials[interchange.PotentialKey{ID: "q"}] = interchange.Potential{Parameters: params{}}
	if _, err := ToSystem(ic); !errors.As(err, &lerr) || lerr.Param != "charge" {
		Te.Errorf("expected a missing charge error, got %v", err)
	}
}

func TestAtoms(Te *testing.T) {
	m := water(Te)
	m.Atom(0).Name = "OW"
	m.Atom(1).Charge, m.Atom(1).ChargeSet = 0.417, true
	ic := newIC("geometric", molecule(Te, "AR", []int{18}, nil), m)
	parameterize(ic)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	want := []top.Atom{
		{Index: 1, Name: "OW", AtomType: "WAT_0", ResidueIndex: 2, ResidueName: "WAT", ChargeGroup: 1, Mass: 15.99943},
		{Index: 2, Name: "H", AtomType: "WAT_1", ResidueIndex: 2, ResidueName: "WAT", ChargeGroup: 1, Charge: 0.417, Mass: 1.007947},
		{Index: 3, Name: "H", AtomType: "WAT_2", ResidueIndex: 2, ResidueName: "WAT", ChargeGroup: 1, Mass: 1.007947},
	}
	if diff := cmp.Diff(want, S.MoleculeTypes[1].Atoms, cmpopts.EquateApprox(0, 1e-2)); diff != "" {
		Te.Errorf("atoms differ (-want +got):\n%s", diff)
	}

	m = water(Te)
	for i := 0; i < 3; i++ {
		m.Atom(i).MolName, m.Atom(i).MolID, m.Atom(i).MolIDSet = "HOH", 7, true
	}
	S, err = ToSystem(newIC("geometric", m))
	if err == nil {
		Te.Fatal("water without bond parameters converted")
	}
	ic = newIC("geometric", m)
	parameterize(ic)
	if S, err = ToSystem(ic); err != nil {
		Te.Fatal(err)
	}
	if a := S.MoleculeTypes[0].Atoms[2]; a.ResidueName != "HOH" || a.ResidueIndex != 7 {
		Te.Errorf("residue annotations not used: %+v", a)
	}

	m = water(Te)
	for i := 0; i < 3; i++ {
		m.Atom(i).MolName, m.Atom(i).MolID, m.Atom(i).MolIDSet = "HOH", 0, true
	}
	ic = newIC("geometric", molecule(Te, "AR", []int{18}, nil), m)
	parameterize(ic)
	if S, err = ToSystem(ic); err != nil {
		Te.Fatal(err)
	}
	if a := S.MoleculeTypes[1].Atoms[0]; a.ResidueIndex != 0 {
		Te.Errorf("explicit residue number 0 replaced by %d", a.ResidueIndex)
	}

	m = water(Te)
	m.Atom(1).MolName = "HOH"
	ic = newIC("geometric", m)
	parameterize(ic)
	var ierr InconsistentMetadataError
	if _, err := ToSystem(ic); !errors.As(err, &ierr) || !errors.Is(err, ErrInconsistentMetadata) || ierr.Molecule != "WAT" {
		Te.Errorf("partial residue names: got %v", err)
	}
}

func TestMoleculeRuns(Te *testing.T) {
	methane := molecule(Te, "", []int{6, 1, 1, 1, 1}, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}})
	ic := newIC("geometric", water(Te), methane, water(Te), water(Te))
	parameterize(ic)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	want := []top.MoleculeCount{{Name: "WAT", Count: 1}, {Name: "MOL1", Count: 1}, {Name: "WAT", Count: 2}}
	if diff := cmp.Diff(want, S.Molecules); diff != "" {
		Te.Errorf("molecules differ (-want +got):\n%s", diff)
	}
	if S.NAtoms() != ic.Topology.NAtoms() {
		Te.Errorf("%d atoms in the system, %d in the topology", S.NAtoms(), ic.Topology.NAtoms())
	}
	names := make(map[string]bool)
	for _, at := range S.AtomTypes {
		names[at.Name] = true
	}
	if len(S.AtomTypes) != 8 || len(names) != 8 {
		Te.Errorf("expected 8 distinct atom types, got %d (%d distinct)", len(S.AtomTypes), len(names))
	}
	if len(S.MoleculeTypes[1].Angles) != 6 {
		Te.Errorf("methane has %d angles", len(S.MoleculeTypes[1].Angles))
	}
}

func TestTemplateNames(Te *testing.T) {
	ic := newIC("geometric", molecule(Te, "X", []int{18}, nil), molecule(Te, "X", []int{10}, nil))
	if _, err := ToSystem(ic); !errors.Is(err, ErrUnsupportedConfiguration) {
		Te.Errorf("2 molecule types called X: got %v", err)
	}
}

func TestAtomOrder(Te *testing.T) {
	hoh := func() *chem.Molecule {
		return molecule(Te, "WAT", []int{1, 8, 1}, [][2]int{{0, 1}, {1, 2}})
	}
	ic := newIC("geometric", water(Te), hoh(), water(Te), hoh())
	parameterize(ic)
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	want := []top.MoleculeCount{{Name: "WAT", Count: 1}, {Name: "WAT_1", Count: 1}, {Name: "WAT", Count: 1}, {Name: "WAT_1", Count: 1}}
	if diff := cmp.Diff(want, S.Molecules); diff != "" {
		Te.Errorf("molecules differ (-want +got):\n%s", diff)
	}
	if len(S.MoleculeTypes) != 2 || len(S.AtomTypes) != 6 {
		Te.Fatalf("expected 2 molecule types and 6 atom types, got %d and %d", len(S.MoleculeTypes), len(S.AtomTypes))
	}
	mt := S.MoleculeTypes[1]
	if a := mt.Atoms[0]; a.AtomType != "WAT_1_0" || a.Mass > 2 || a.ResidueIndex != 2 {
		Te.Errorf("first atom of the reordered water: %+v", a)
	}
	if diff := cmp.Diff([]top.Bond{{Atoms: [2]int{1, 2}}, {Atoms: [2]int{2, 3}}}, mt.Bonds, cmpopts.IgnoreFields(top.Bond{}, "Length", "K")); diff != "" {
		Te.Errorf("bonds of the reordered water (-want +got):\n%s", diff)
	}
	if S.NAtoms() != ic.Topology.NAtoms() {
		Te.Errorf("%d atoms in the system, %d in the topology", S.NAtoms(), ic.Topology.NAtoms())
	}
}

func TestSettles(Te *testing.T) {
	ic := newIC("lorentz-berthelot", water(Te), water(Te))
	parameterize(ic)
	c := collection(ic, interchange.Constraints)
	oh := params{"distance": units.Q(0.9572, "angstrom")}
	hh := params{"distance": units.Q(1.5139, "angstrom")}
	for _, w := range []int{0, 3} {
		assign(c, "oh", 0, oh, w, w+1)
		assign(c, "oh", 0, oh, w+2, w)
	}
	//only H-bond constraints: a flexible water.
	S, err := ToSystem(ic)
	if err != nil {
		Te.Fatal(err)
	}
	if mt := S.MoleculeTypes[0]; len(mt.Settles) != 0 || len(mt.Bonds) != 2 || len(mt.Angles) != 1 {
		Te.Fatalf("water with H-bond constraints converted to %+v", mt)
	}
	for _, w := range []int{0, 3} {
		assign(c, "hh", 0, hh, w+1, w+2)
	}
	if S, err = ToSystem(ic); err != nil {
		Te.Fatal(err)
	}
	mt := S.MoleculeTypes[0]
	if diff := cmp.Diff([]top.Settle{{First: 1, DOH: 0.09572, DHH: 0.15139}}, mt.Settles, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("settles differ (-want +got):\n%s", diff)
	}
	if len(mt.Bonds) != 0 || len(mt.Angles) != 0 || len(mt.Exclusions) != 3 {
		Te.Errorf("rigid water with %d bonds, %d angles and %d exclusions", len(mt.Bonds), len(mt.Angles), len(mt.Exclusions))
	}
	var b bytes.Buffer
	if err := S.WriteTop(&b); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(b.String(), "[ settles ]\n;i  funct   dOH  dHH\n     1\t     1\t") || !strings.Contains(b.String(), "[ bonds ]\n;ai    aj   funct r k\n\n") {
		Te.Errorf("wrong sections in rigid water topology:\n%s", b.String())
	}
}

func TestWaterFile(Te *testing.T) {
	ic, err := interchange.ReadFile("../interchange/testdata/water.json")
	if err != nil {
		Te.Fatal(err)
	}
	S, err := ToSystem(ic, WithName(ic.Name))
	if err != nil {
		Te.Fatal(err)
	}
	if len(S.MoleculeTypes) != 1 || S.MoleculeTypes[0].Name != "WAT" {
		Te.Fatalf("wrong molecule types %v", S.MoleculeTypes)
	}
	if diff := cmp.Diff([]top.MoleculeCount{{Name: "WAT", Count: 2}}, S.Molecules); diff != "" {
		Te.Errorf("molecules differ (-want +got):\n%s", diff)
	}
	mt := S.MoleculeTypes[0]
	wantb := []top.Bond{
		{Atoms: [2]int{1, 2}, Length: 0.09572, K: 462750.4},
		{Atoms: [2]int{1, 3}, Length: 0.09572, K: 462750.4},
	}
	if diff := cmp.Diff(wantb, mt.Bonds, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		Te.Errorf("bonds differ (-want +got):\n%s", diff)
	}
	wanta := []top.Angle{{Atoms: [3]int{2, 1, 3}, Angle: 104.52, K: 418.4}}
	if diff := cmp.Diff(wanta, mt.Angles, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		Te.Errorf("angles differ (-want +got):\n%s", diff)
	}
	if !near(mt.Atoms[0].Charge, -0.834) || !near(mt.Atoms[2].Charge, 0.417) {
		Te.Errorf("wrong charges in %+v", mt.Atoms)
	}
	if S.Positions.NVecs() != 6 || S.Box == nil || !near(S.Box.At(0, 0), 2) {
		Te.Errorf("positions or box not converted")
	}
	var b bytes.Buffer
	if err := S.WriteGro(&b); err != nil {
		Te.Fatal(err)
	}
	g, err := top.ReadGro(&b)
	if err != nil {
		Te.Fatal(err)
	}
	if len(g.Atoms) != 6 || g.Atoms[3].ResidueIndex != 2 || g.Title != "two waters" {
		Te.Errorf("wrong gro file: %+v", g)
	}
}

func TestPairs(Te *testing.T) {
	butane := molecule(Te, "BUT", []int{6, 6, 6, 6}, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	c := &converter{S: &top.System{GenPairs: true}}
	p, err := c.pairs(butane)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]top.Pair{{Atoms: [2]int{1, 4}}}, p); diff != "" {
		Te.Errorf("pairs differ (-want +got):\n%s", diff)
	}
	c.S.GenPairs = false
	if _, err := c.pairs(butane); !errors.Is(err, ErrUnsupportedConfiguration) {
		Te.Errorf("explicit pair parameters: got %v", err)
	}
	if p, err := c.pairs(water(Te)); err != nil || len(p) != 0 {
		Te.Errorf("water has no 1-4 pairs, got %v, %v", p, err)
	}
}
