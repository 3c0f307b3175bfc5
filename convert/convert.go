/*
 * convert.go, part of gmxff.
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

// Package convert builds a Gromacs system (package top) from a parameterized
// interchange. Chemically identical molecules share one molecule type, and
// every atom of a molecule type gets its own atom type.
package convert

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/gmxff"
	"github.com/rmera/gmxff/interchange"
	"github.com/rmera/gmxff/top"
	"github.com/rmera/gmxff/units"
	"go.uber.org/zap"
)

// DefaultName is the name of the system if none is given.
const DefaultName = "FOO"

type options struct {
	name string
	log  *zap.Logger
}

// Option changes the behavior of ToSystem.
type Option func(*options)

// WithName sets the name of the system.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger for debug tracing. The default logs nothing.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// converter keeps what's needed to build the templates of one interchange.
type converter struct {
	ic  *interchange.Interchange
	S   *top.System
	log *zap.Logger

	vdw, elec, bonds, angles, propers, rb, impropers, constraints *keyIndex
}

// ToSystem converts ic into a Gromacs system. It returns an error,
// and no system, if anything in ic can't be converted or any bonded
// term lacks parameters. ic is not modified.
func ToSystem(ic *interchange.Interchange, opts ...Option) (*top.System, error) {
	o := options{name: DefaultName, log: zap.NewNop()}
	for _, f := range opts {
		f(&o)
	}
	if ic == nil || ic.Topology == nil {
		return nil, UnsupportedExportError{msg: "no topology to export", deco: []string{"ToSystem"}}
	}
	S, err := globals(ic, o.name)
	if err != nil {
		return nil, errDecorate(err, "ToSystem")
	}
	c := &converter{
		ic:          ic,
		S:           S,
		log:         o.log,
		vdw:         newKeyIndex(ic, interchange.VdW),
		elec:        newKeyIndex(ic, interchange.Electrostatics),
		bonds:       newKeyIndex(ic, interchange.Bonds),
		angles:      newKeyIndex(ic, interchange.Angles),
		propers:     newKeyIndex(ic, interchange.ProperTorsions),
		rb:          newKeyIndex(ic, interchange.RBTorsions),
		impropers:   newKeyIndex(ic, interchange.ImproperTorsions),
		constraints: newKeyIndex(ic, interchange.Constraints),
	}
	groups, variant := byAtomOrder(ic.Topology.IdenticalMoleculeGroups())
	names, err := templateNames(ic.Topology, groups, variant)
	if err != nil {
		return nil, errDecorate(err, "ToSystem")
	}
	owner := make([]int, ic.Topology.NMolecules())
	for i, g := range groups {
		for _, m := range g.Members {
			owner[m] = i
		}
		mt, err := c.template(g.Representative, names[i])
		if err != nil {
			return nil, errDecorate(err, "ToSystem")
		}
		S.MoleculeTypes = append(S.MoleculeTypes, mt)
		c.log.Debug("molecule type",
			zap.String("name", mt.Name),
			zap.Int("representative", g.Representative),
			zap.Int("instances", len(g.Members)),
			zap.Int("atoms", len(mt.Atoms)),
			zap.Int("pairs", len(mt.Pairs)),
			zap.Int("bonds", len(mt.Bonds)),
			zap.Int("angles", len(mt.Angles)),
			zap.Int("dihedrals", len(mt.Dihedrals)),
			zap.Int("settles", len(mt.Settles)))
	}
	for i := range owner {
		S.AddMolecules(names[owner[i]], 1)
	}
	if S.Positions, err = ic.Positions.InNm(); err != nil {
		return nil, errDecorate(err, "ToSystem")
	}
	if S.Box, err = ic.Box.InNm(); err != nil {
		return nil, errDecorate(err, "ToSystem")
	}
	c.log.Debug("system", zap.String("name", S.Name), zap.Int("atom types", len(S.AtomTypes)), zap.Int("molecule runs", len(S.Molecules)))
	return S, nil
}

// globals returns an empty system with the nonbonded settings of ic.
func globals(ic *interchange.Interchange, name string) (*top.System, error) {
	vdw, ok := ic.Collection(interchange.VdW)
	if !ok {
		return nil, UnsupportedExportError{msg: "no vdW collection", deco: []string{"globals"}}
	}
	S := &top.System{Name: name, NonbondedFunction: 1, GenPairs: true, FudgeLJ: vdw.Scale14}
	switch strings.ToLower(vdw.MixingRule) {
	case "lorentz-berthelot":
		S.CombinationRule = 2
	case "geometric":
		S.CombinationRule = 3
	default:
		return nil, UnsupportedExportError{msg: fmt.Sprintf("mixing rule %q", vdw.MixingRule), deco: []string{"globals"}}
	}
	el, ok := ic.Collection(interchange.Electrostatics)
	if !ok {
		return nil, UnsupportedExportError{msg: "no Electrostatics collection", deco: []string{"globals"}}
	}
	S.FudgeQQ = el.Scale14
	return S, nil
}

// byAtomOrder splits the groups of identical molecules so the members of
// each group list their atoms in the same order, as instances of one molecule
// type must. The part of a group with the original representative comes
// first; variant is true for the other parts. The result is ordered by
// representative.
func byAtomOrder(groups []chem.MoleculeGroup) ([]chem.MoleculeGroup, []bool) {
	type part struct {
		g       chem.MoleculeGroup
		variant bool
	}
	var parts []part
	for _, g := range groups {
		byorder := make(map[string]int) //atom map -> index in parts
		for j, m := range g.Members {
			key := fmt.Sprint(g.AtomMaps[j])
			if k, ok := byorder[key]; ok {
				parts[k].g.Members = append(parts[k].g.Members, m)
				parts[k].g.AtomMaps = append(parts[k].g.AtomMaps, parts[k].g.AtomMaps[0])
				continue
			}
			identity := make([]int, len(g.AtomMaps[j]))
			for a := range identity {
				identity[a] = a
			}
			byorder[key] = len(parts)
			parts = append(parts, part{g: chem.MoleculeGroup{Representative: m, Members: []int{m}, AtomMaps: [][]int{identity}}, variant: j != 0})
		}
	}
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].g.Representative < parts[j].g.Representative })
	ret := make([]chem.MoleculeGroup, len(parts))
	variant := make([]bool, len(parts))
	for i, p := range parts {
		ret[i], variant[i] = p.g, p.variant
	}
	return ret, variant
}

// templateNames returns the molecule type name for each group. Unnamed
// molecules are called MOL plus the index of the representative. Groups
// that only differ from an earlier one in their atom order get the index
// of their representative appended to the name.
func templateNames(T interchange.Topology, groups []chem.MoleculeGroup, variant []bool) ([]string, error) {
	names := make([]string, len(groups))
	seen := make(map[string]int, len(groups))
	for i, g := range groups {
		name := T.Molecule(g.Representative).Name()
		if name == "" {
			name = "MOL" + strconv.Itoa(g.Representative)
		} else if variant[i] {
			name += "_" + strconv.Itoa(g.Representative)
		}
		key := sanitize(name)
		if prev, ok := seen[key]; ok {
			return nil, UnsupportedExportError{msg: fmt.Sprintf("molecules %d and %d are different but both are called %q", groups[prev].Representative, g.Representative, name), deco: []string{"templateNames"}}
		}
		seen[key] = i
		names[i] = name
	}
	return names, nil
}

func sanitize(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// typeName is the name of the atom type of atom i of the molecule type molName.
func typeName(molName string, i int) string {
	return sanitize(molName) + "_" + strconv.Itoa(i)
}

// template builds the molecule type for the molecule rep, called name,
// and adds the atom types of its atoms to the system.
func (c *converter) template(rep int, name string) (*top.MoleculeType, error) {
	mol := c.ic.Topology.Molecule(rep)
	mt := top.NewMoleculeType(name)
	for i := 0; i < mol.Len(); i++ {
		at, err := c.atomType(rep, i, name)
		if err != nil {
			return nil, errDecorate(err, "template")
		}
		if err := c.S.AddAtomType(at); err != nil {
			return nil, errDecorate(err, "template")
		}
	}
	var err error
	if mt.Atoms, err = atoms(mol, rep, name); err != nil {
		return nil, errDecorate(err, "template")
	}
	if mt.Pairs, err = c.pairs(mol); err != nil {
		return nil, errDecorate(err, "template")
	}
	water, err := c.rigidWater(rep, mol)
	if err != nil {
		return nil, errDecorate(err, "template")
	}
	if water != nil {
		mt.Settles = []top.Settle{*water}
		mt.Exclusions = []top.Exclusion{
			{First: 1, Others: []int{2, 3}},
			{First: 2, Others: []int{1, 3}},
			{First: 3, Others: []int{1, 2}},
		}
	} else {
		if mt.Bonds, err = c.bondTerms(rep, mol); err != nil {
			return nil, errDecorate(err, "template")
		}
		if mt.Angles, err = c.angleTerms(rep, mol); err != nil {
			return nil, errDecorate(err, "template")
		}
	}
	if mt.Dihedrals, err = c.dihedralTerms(rep, mol); err != nil {
		return nil, errDecorate(err, "template")
	}
	return mt, nil
}

// atomType returns the type of atom i of the molecule rep, with the
// Lennard-Jones parameters assigned to it. The charge goes in the atoms
// section, so the type's is 0, but the atom must have one assigned.
func (c *converter) atomType(rep, i int, molName string) (*top.AtomType, error) {
	g := c.ic.Topology.AtomIndex(rep, i)
	p, err := c.vdw.single(g)
	if err != nil {
		return nil, errDecorate(err, "atomType")
	}
	e := c.vdw.match(g)[0]
	sigma, err := c.vdw.param(p, e, "sigma", units.Nanometer)
	if err != nil {
		return nil, errDecorate(err, "atomType")
	}
	epsilon, err := c.vdw.param(p, e, "epsilon", units.KilojoulePerMole)
	if err != nil {
		return nil, errDecorate(err, "atomType")
	}
	q, err := c.elec.single(g)
	if err != nil {
		return nil, errDecorate(err, "atomType")
	}
	if _, ok := q.Param("charge"); !ok {
		return nil, LookupError{Collection: interchange.Electrostatics, Key: []int{g}, Param: "charge", deco: []string{"atomType"}}
	}
	at := c.ic.Topology.Molecule(rep).Atom(i)
	mass, err := chem.Mass(at.AtomicNumber)
	if err != nil {
		return nil, errDecorate(err, "atomType")
	}
	return &top.AtomType{
		Name:         typeName(molName, i),
		AtomicNumber: at.AtomicNumber,
		Mass:         mass,
		ParticleType: "A",
		Sigma:        sigma,
		Epsilon:      epsilon,
	}, nil
}

// atoms returns the atoms of the molecule type for mol, which is the
// molecule rep of the topology and is called name.
// Residue names must be given for all atoms or for none. In the latter case,
// the residue is named after the molecule.
func atoms(mol interchange.Molecule, rep int, name string) ([]top.Atom, error) {
	named := 0
	for i := 0; i < mol.Len(); i++ {
		if mol.Atom(i).MolName != "" {
			named++
		}
	}
	if named != 0 && named != mol.Len() {
		return nil, InconsistentMetadataError{Molecule: name, msg: fmt.Sprintf("%d of %d atoms have residue names; if some atoms have residue names, all atoms must have residue names", named, mol.Len()), deco: []string{"atoms"}}
	}
	ret := make([]top.Atom, 0, mol.Len())
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		mass, err := chem.Mass(a.AtomicNumber)
		if err != nil {
			return nil, errDecorate(err, "atoms")
		}
		A := top.Atom{
			Index:        i + 1,
			Name:         a.Name,
			AtomType:     typeName(name, i),
			ResidueIndex: rep + 1,
			ResidueName:  a.MolName,
			ChargeGroup:  1,
			Mass:         mass,
		}
		if A.Name == "" {
			A.Name = a.Symbol
		}
		if A.ResidueName == "" {
			A.ResidueName = name
		}
		if a.MolIDSet {
			A.ResidueIndex = a.MolID
		}
		if a.ChargeSet {
			A.Charge = a.Charge
		}
		ret = append(ret, A)
	}
	return ret, nil
}

// pairs returns the 1-4 pairs of mol, each once, lowest index first.
func (c *converter) pairs(mol interchange.Molecule) ([]top.Pair, error) {
	var ret []top.Pair
	seen := make(map[[2]int]bool)
	for _, p := range mol.Pairs14() {
		if p[0] > p[1] {
			p[0], p[1] = p[1], p[0]
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		if !c.S.GenPairs {
			return nil, UnsupportedExportError{msg: "explicit 1-4 pair parameters are not implemented", deco: []string{"pairs"}}
		}
		ret = append(ret, top.Pair{Atoms: [2]int{p[0] + 1, p[1] + 1}})
	}
	return ret, nil
}
