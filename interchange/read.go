/*
 * read.go, part of gmxff.
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
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gmxff"
	"github.com/rmera/gmxff/units"
	v3 "github.com/rmera/gmxff/v3"
	"github.com/rmera/gmxff/zio"
	"gopkg.in/yaml.v3"
)

// Format of an interchange file.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFromName guesses the format from the file extension, ignoring
// a compression suffix.
func FormatFromName(name string) (Format, error) {
	base, _ := zio.Base(name)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, Error{msg: fmt.Sprintf("can't tell the format of %q from its extension", name), deco: []string{"FormatFromName"}}
}

// The on-disk representation. Maps with struct keys can't be
// serialized, so potentials are stored as a list.
type fileAtom struct {
	Name          string          `json:"name" yaml:"name"`
	AtomicNumber  int             `json:"atomic_number" yaml:"atomic_number"`
	Element       string          `json:"element" yaml:"element"`
	PartialCharge *units.Quantity `json:"partial_charge" yaml:"partial_charge"`
	ResidueName   string          `json:"residue_name" yaml:"residue_name"`
	ResidueNumber *int            `json:"residue_number" yaml:"residue_number"`
}

type fileMolecule struct {
	Name  string     `json:"name" yaml:"name"`
	Atoms []fileAtom `json:"atoms" yaml:"atoms"`
	Bonds [][2]int   `json:"bonds" yaml:"bonds"`
}

type filePotential struct {
	Key        PotentialKey              `json:"key" yaml:"key"`
	Parameters map[string]units.Quantity `json:"parameters" yaml:"parameters"`
}

type fileCollection struct {
	Type       string          `json:"type" yaml:"type"`
	Expression string          `json:"expression" yaml:"expression"`
	Scale14    float64         `json:"scale_14" yaml:"scale_14"`
	MixingRule string          `json:"mixing_rule" yaml:"mixing_rule"`
	KeyMap     []KeyMapEntry   `json:"key_map" yaml:"key_map"`
	Potentials []filePotential `json:"potentials" yaml:"potentials"`
}

type fileCoords struct {
	Unit   string       `json:"unit" yaml:"unit"`
	Values [][3]float64 `json:"values" yaml:"values"`
}

type file struct {
	Name     string `json:"name" yaml:"name"`
	Topology struct {
		Molecules []fileMolecule `json:"molecules" yaml:"molecules"`
	} `json:"topology" yaml:"topology"`
	Collections map[string]fileCollection `json:"collections" yaml:"collections"`
	Positions   *fileCoords               `json:"positions" yaml:"positions"`
	Box         *fileCoords               `json:"box" yaml:"box"`
}

// ReadFile reads an interchange from the file name. The format is taken from
// the extension (.json, .yaml or .yml), and the file can be compressed
// with gzip (.gz) or zstandard (.zst).
func ReadFile(name string) (*Interchange, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	f, err := zio.Open(name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	defer f.Close()
	I, err := Read(f, format)
	if err != nil {
		return nil, errDecorate(err, "ReadFile "+name)
	}
	return I, nil
}

// Read reads an interchange in the given format from r.
func Read(r io.Reader, format Format) (*Interchange, error) {
	var in file
	var err error
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&in)
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&in)
	default:
		return nil, Error{msg: fmt.Sprintf("unknown format %d", format), deco: []string{"Read"}}
	}
	if err != nil {
		return nil, Error{msg: "can't decode interchange: " + err.Error(), deco: []string{"Read"}}
	}
	return in.build()
}

func (in *file) build() (*Interchange, error) {
	I := &Interchange{Name: in.Name, Collections: make(map[string]*Collection, len(in.Collections))}
	mols := make([]*chem.Molecule, 0, len(in.Topology.Molecules))
	for i, fm := range in.Topology.Molecules {
		atoms := make([]*chem.Atom, len(fm.Atoms))
		for j, fa := range fm.Atoms {
			at, err := fa.atom()
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("build: molecule %d atom %d", i, j))
			}
			atoms[j] = at
		}
		m, err := chem.NewMolecule(fm.Name, atoms, fm.Bonds)
		if err != nil {
			return nil, errDecorate(err, "build")
		}
		mols = append(mols, m)
	}
	I.Topology = chem.NewTopology(mols...)
	for name, fc := range in.Collections {
		c := &Collection{
			Type:       fc.Type,
			Expression: fc.Expression,
			KeyMap:     fc.KeyMap,
			Potentials: make(map[PotentialKey]Potential, len(fc.Potentials)),
			Scale14:    fc.Scale14,
			MixingRule: fc.MixingRule,
		}
		if c.Type == "" {
			c.Type = name
		}
		for _, p := range fc.Potentials {
			if _, ok := c.Potentials[p.Key]; ok {
				return nil, Error{msg: fmt.Sprintf("potential %v given twice in collection %s", p.Key, name), deco: []string{"build"}}
			}
			c.Potentials[p.Key] = Potential{Parameters: p.Parameters}
		}
		for _, e := range c.KeyMap {
			for _, a := range e.Key.AtomIndices {
				if a < 0 || a >= I.Topology.NAtoms() {
					return nil, Error{msg: fmt.Sprintf("key %v in collection %s refers to atom %d, but the topology has %d atoms", e.Key, name, a, I.Topology.NAtoms()), deco: []string{"build"}}
				}
			}
		}
		I.Collections[name] = c
	}
	var err error
	if in.Positions != nil {
		if len(in.Positions.Values) != I.Topology.NAtoms() {
			return nil, Error{msg: fmt.Sprintf("%d positions for %d atoms", len(in.Positions.Values), I.Topology.NAtoms()), deco: []string{"build"}}
		}
		if I.Positions, err = in.Positions.coords(); err != nil {
			return nil, errDecorate(err, "build")
		}
	}
	if in.Box != nil {
		if len(in.Box.Values) != 3 {
			return nil, Error{msg: fmt.Sprintf("the box needs 3 vectors, got %d", len(in.Box.Values)), deco: []string{"build"}}
		}
		if I.Box, err = in.Box.coords(); err != nil {
			return nil, errDecorate(err, "build")
		}
	}
	return I, nil
}

func (fa fileAtom) atom() (*chem.Atom, error) {
	at := &chem.Atom{
		Name:         fa.Name,
		AtomicNumber: fa.AtomicNumber,
		MolName:      fa.ResidueName,
	}
	if fa.ResidueNumber != nil {
		at.MolID, at.MolIDSet = *fa.ResidueNumber, true
	}
	if fa.Element != "" {
		z, err := chem.AtomicNumber(fa.Element)
		if err != nil {
			return nil, errDecorate(err, "atom")
		}
		if at.AtomicNumber != 0 && at.AtomicNumber != z {
			return nil, Error{msg: fmt.Sprintf("element %s doesn't match atomic number %d", fa.Element, at.AtomicNumber), deco: []string{"atom"}}
		}
		at.AtomicNumber = z
	}
	if fa.PartialCharge != nil {
		q, err := fa.PartialCharge.In(units.ElementaryCharge)
		if err != nil {
			return nil, errDecorate(err, "atom")
		}
		at.Charge = q
		at.ChargeSet = true
	}
	return at, nil
}

func (fc *fileCoords) coords() (*Coordinates, error) {
	data := make([]float64, 0, 3*len(fc.Values))
	for _, v := range fc.Values {
		data = append(data, v[:]...)
	}
	m, err := v3.NewMatrix(data)
	if err != nil {
		return nil, errDecorate(err, "coords")
	}
	if !units.Q(1, fc.Unit).Compatible(units.Nanometer) {
		return nil, Error{msg: fmt.Sprintf("coordinates have unit %q, which is not a length", fc.Unit), deco: []string{"coords"}}
	}
	return &Coordinates{Values: m, Unit: fc.Unit}, nil
}
