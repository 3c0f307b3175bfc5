/*
 * gro.go, part of gmxff.
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

package top

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/gmxff/v3"
)

// DefaultGroPrecision is the number of decimals used for positions in .gro files.
const DefaultGroPrecision = 6

type groOptions struct {
	prec  int
	title string
}

// GroOption changes how a .gro file is written.
type GroOption func(*groOptions)

// GroPrecision sets the number of decimals for positions. Each field
// is prec+5 characters wide, as Gromacs expects.
func GroPrecision(prec int) GroOption {
	return func(o *groOptions) {
		if prec > 0 {
			o.prec = prec
		}
	}
}

// GroTitle sets the title line of the .gro file. The default is the system name.
func GroTitle(title string) GroOption {
	return func(o *groOptions) { o.title = title }
}

// GroAtom is the per-atom information in a .gro file, other than the position.
type GroAtom struct {
	ResidueIndex int
	ResidueName  string
	Name         string
	Index        int
}

// Gro is the content of a .gro file.
type Gro struct {
	Title     string
	Atoms     []GroAtom
	Positions *v3.Matrix //nm
	Box       *v3.Matrix //nm, one vector per row
}

// trunc cuts s to the n characters a .gro field can hold.
func trunc(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// WriteGro writes the atoms and positions of the system to w in .gro format.
// Residues are numbered consecutively over the whole system. The box line
// has 3 values for a rectangular box, 9 otherwise, and zeros if there is no box.
func (S *System) WriteGro(w io.Writer, opts ...GroOption) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errDecorate(recovered(r), "WriteGro")
		}
	}()
	o := groOptions{prec: DefaultGroPrecision, title: S.Name}
	for _, f := range opts {
		f(&o)
	}
	qerr(S.Validate())
	if S.Positions == nil {
		qerr(Error{msg: "the system has no positions", deco: []string{"WriteGro"}})
	}
	natoms := S.NAtoms()
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(o.title, "\n", " ") + "\n")
	b.WriteString(sf("%d\n", natoms))
	posfmt := sf("%%%d.%df", o.prec+5, o.prec)
	line := "%5d%-5s%5s%5d" + posfmt + posfmt + posfmt + "\n"
	global := 0
	residue := 0
	for _, m := range S.Molecules {
		mt, _ := S.MoleculeType(m.Name)
		for c := 0; c < m.Count; c++ {
			prevres := 0
			for i, a := range mt.Atoms {
				if i == 0 || a.ResidueIndex != prevres {
					residue++
					prevres = a.ResidueIndex
				}
				p := S.Positions.Vec(global)
				global++
				b.WriteString(sf(line, residue%100000, trunc(sanitize(a.ResidueName), 5), trunc(sanitize(a.Name), 5), global%100000, p[0], p[1], p[2]))
			}
		}
	}
	box := v3.Zeros(3)
	if S.Box != nil {
		box = S.Box
	}
	bfmt := sf("%%%d.%df", o.prec+6, o.prec+1)
	for i := 0; i < 3; i++ {
		b.WriteString(sf(bfmt, box.At(i, i)))
	}
	if !box.IsDiagonal() {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i != j {
					b.WriteString(sf(bfmt, box.At(i, j)))
				}
			}
		}
	}
	b.WriteString("\n")
	_, err = io.WriteString(w, b.String())
	qerr(err)
	return nil
}

// ReadGro reads a .gro file from r. Positions and box are in nm.
// Velocities, if present, are ignored.
func ReadGro(r io.Reader) (*Gro, error) {
	in := bufio.NewReader(r)
	G := new(Gro)
	readline := func() (string, error) {
		s, err := in.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		return strings.TrimRight(s, "\r\n"), err
	}
	var err error
	if G.Title, err = readline(); err != nil {
		return nil, Error{msg: "can't read title: " + err.Error(), deco: []string{"ReadGro"}}
	}
	s, err := readline()
	if err != nil {
		return nil, Error{msg: "can't read the number of atoms: " + err.Error(), deco: []string{"ReadGro"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || natoms <= 0 {
		return nil, Error{msg: fmt.Sprintf("bad atom count %q", s), deco: []string{"ReadGro"}}
	}
	G.Atoms = make([]GroAtom, 0, natoms)
	G.Positions = v3.Zeros(natoms)
	for i := 0; i < natoms; i++ {
		s, err = readline()
		if err != nil {
			return nil, Error{msg: fmt.Sprintf("file ends at atom %d of %d", i+1, natoms), deco: []string{"ReadGro"}}
		}
		if len(s) < 20 {
			return nil, Error{msg: fmt.Sprintf("atom line %d too short: %q", i+1, s), deco: []string{"ReadGro"}}
		}
		ints, err := parseints(strings.TrimSpace(s[:5]), strings.TrimSpace(s[15:20]))
		if err != nil {
			return nil, Error{msg: fmt.Sprintf("atom line %d: %s", i+1, err.Error()), deco: []string{"ReadGro"}}
		}
		f := fi(s[20:])
		if len(f) < 3 {
			return nil, Error{msg: fmt.Sprintf("atom line %d has no position: %q", i+1, s), deco: []string{"ReadGro"}}
		}
		pos, err := parsefloats(f[:3]...)
		if err != nil {
			return nil, Error{msg: fmt.Sprintf("atom line %d: %s", i+1, err.Error()), deco: []string{"ReadGro"}}
		}
		G.Atoms = append(G.Atoms, GroAtom{ResidueIndex: ints[0], ResidueName: strings.TrimSpace(s[5:10]), Name: strings.TrimSpace(s[10:15]), Index: ints[1]})
		G.Positions.SetVec(i, [3]float64{pos[0], pos[1], pos[2]})
	}
	if s, err = readline(); err != nil {
		return nil, Error{msg: "no box line", deco: []string{"ReadGro"}}
	}
	bv, err := parsefloats(fi(s)...)
	if err != nil || (len(bv) != 3 && len(bv) != 9) {
		return nil, Error{msg: fmt.Sprintf("bad box line %q", s), deco: []string{"ReadGro"}}
	}
	G.Box = v3.Zeros(3)
	for i := 0; i < 3; i++ {
		G.Box.Set(i, i, bv[i])
	}
	if len(bv) == 9 {
		k := 3
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i != j {
					G.Box.Set(i, j, bv[k])
					k++
				}
			}
		}
	}
	return G, nil
}
