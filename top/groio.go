/*
 * groio.go, part of gmxff.
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
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// reader keeps the state of a topology being read.
type reader struct {
	S             *System
	currentHeader string
	current       *MoleculeType
	c6c12         bool //comb-rule 1: atom types are given as C6/C12
}

// ReadTop reads a Gromacs topology from r. Comments are discarded, and
// the #ifdef, #ifndef, #else and #endif directives are honored with the
// given defines. Other directives, including #include, are ignored.
// Sections other than the ones WriteTop produces are skipped.
// With comb-rule 1, atom types are converted from C6/C12 to sigma/epsilon.
func ReadTop(r io.Reader, defines ...string) (*System, error) {
	in := bufio.NewReader(r)
	R := &reader{S: new(System)}
	h := newTopHeader()
	read := newCond()
	var err error
	var s string
	nline := 0
	for s, err = in.ReadString('\n'); err == nil || (err == io.EOF && s != ""); s, err = in.ReadString('\n') {
		nline++
		s = cleanString(s)
		if s == "" || !read.read(s, defines) {
			if err == io.EOF {
				break
			}
			continue
		}
		if h.Is(s) {
			R.currentHeader = h.Which(s)
			if R.currentHeader == "" {
				R.currentHeader = "skip " + h.Name(s)
			}
		} else if err2 := R.line(s); err2 != nil {
			var ferr InvalidFunctionalFormError
			if errors.As(err2, &ferr) {
				return nil, errDecorate(ferr, "ReadTop")
			}
			return nil, Error{msg: fmt.Sprintf("couldn't read section %s, line %d: %q: %s", R.currentHeader, nline, s, err2.Error()), deco: []string{"ReadTop"}}
		}
		if err == io.EOF {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, Error{msg: err.Error(), deco: []string{"ReadTop"}}
	}
	return R.S, nil
}

// line reads one non-header line in the current section.
func (R *reader) line(s string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	f := fi(s)
	S := R.S
	if R.current == nil {
		switch R.currentHeader {
		case "atoms", "pairs", "bonds", "angles", "dihedrals", "settles", "exclusions":
			return fmt.Errorf("section %s outside a molecule type", R.currentHeader)
		}
	}
	switch R.currentHeader {
	case "defaults":
		ints, err := parseints(f[:2]...)
		qerr(err)
		S.NonbondedFunction, S.CombinationRule = ints[0], ints[1]
		R.c6c12 = S.CombinationRule == 1
		if len(f) > 2 {
			S.GenPairs = strings.ToLower(f[2]) == "yes"
		}
		if len(f) > 4 {
			fl, err := parsefloats(f[3:5]...)
			qerr(err)
			S.FudgeLJ, S.FudgeQQ = fl[0], fl[1]
		}
	case "atomtypes":
		at, err := atomTypeFromGro(f, R.c6c12)
		qerr(err)
		qerr(S.AddAtomType(at))
	case "moleculetype":
		R.current = NewMoleculeType(f[0])
		if len(f) > 1 {
			R.current.NrExcl, err = strconv.Atoi(f[1])
			qerr(err)
		}
		S.MoleculeTypes = append(S.MoleculeTypes, R.current)
	case "atoms":
		a, err := R.atomFromGro(f)
		qerr(err)
		R.current.Atoms = append(R.current.Atoms, a)
	case "pairs":
		ints, err := parseints(f[:2]...)
		qerr(err)
		R.current.Pairs = append(R.current.Pairs, Pair{Atoms: [2]int{ints[0], ints[1]}})
	case "bonds":
		ints, err := parseints(f[:3]...)
		qerr(err)
		if ints[2] != 1 {
			return fmt.Errorf("unsupported bond function %d", ints[2])
		}
		fl, err := parsefloats(f[3:5]...)
		qerr(err)
		R.current.Bonds = append(R.current.Bonds, Bond{Atoms: [2]int{ints[0], ints[1]}, Length: fl[0], K: fl[1]})
	case "angles":
		ints, err := parseints(f[:4]...)
		qerr(err)
		if ints[3] != 1 {
			return fmt.Errorf("unsupported angle function %d", ints[3])
		}
		fl, err := parsefloats(f[4:6]...)
		qerr(err)
		R.current.Angles = append(R.current.Angles, Angle{Atoms: [3]int{ints[0], ints[1], ints[2]}, Angle: fl[0], K: fl[1]})
	case "dihedrals":
		d, err := dihedralFromGro(f)
		qerr(err)
		R.current.Dihedrals = append(R.current.Dihedrals, d)
	case "settles":
		ints, err := parseints(f[:2]...)
		qerr(err)
		fl, err := parsefloats(f[2:4]...)
		qerr(err)
		R.current.Settles = append(R.current.Settles, Settle{First: ints[0], DOH: fl[0], DHH: fl[1]})
	case "exclusions":
		ints, err := parseints(f...)
		qerr(err)
		R.current.Exclusions = append(R.current.Exclusions, Exclusion{First: ints[0], Others: ints[1:]})
	case "system":
		if S.Name != "" {
			S.Name += " "
		}
		S.Name += s
	case "molecules":
		n, err := strconv.Atoi(f[1])
		qerr(err)
		S.Molecules = append(S.Molecules, MoleculeCount{Name: f[0], Count: n})
	}
	return nil
}

// Reads the fields of an atomtypes line. The bonding type and the atomic number
// columns are optional, and are told apart by the position of the particle type.
func atomTypeFromGro(f []string, c6c12 bool) (*AtomType, error) {
	pt := len(f) - 3
	if pt < 3 || pt > 5 || !strings.Contains("ASVD", f[pt]) || len(f[pt]) != 1 {
		return nil, fmt.Errorf("can't find the particle type in %v", f)
	}
	A := &AtomType{Name: f[0], ParticleType: f[pt]}
	switch pt {
	case 4:
		if z, err := strconv.Atoi(f[1]); err == nil {
			A.AtomicNumber = z
		} else {
			A.BondingType = f[1]
		}
	case 5:
		A.BondingType = f[1]
		z, err := strconv.Atoi(f[2])
		if err != nil {
			return nil, err
		}
		A.AtomicNumber = z
	}
	fl, err := parsefloats(f[pt-2], f[pt-1], f[pt+1], f[pt+2])
	if err != nil {
		return nil, err
	}
	A.Mass, A.Charge = fl[0], fl[1]
	A.Sigma, A.Epsilon = fl[2], fl[3]
	if c6c12 {
		A.Sigma, A.Epsilon = c6c12ToSigmaEpsilon(fl[2], fl[3])
	}
	return A, nil
}

// c6c12ToSigmaEpsilon converts Lennard-Jones parameters. Both are 0 if C6 or C12 are.
func c6c12ToSigmaEpsilon(c6, c12 float64) (sigma, epsilon float64) {
	if c6 == 0 || c12 == 0 {
		return 0, 0
	}
	return math.Pow(c12/c6, 1.0/6.0), c6 * c6 / (4 * c12)
}

// Reads an atoms line. The mass is optional, and taken from the atom type if not given.
func (R *reader) atomFromGro(f []string) (Atom, error) {
	var A Atom
	if len(f) < 7 {
		return A, fmt.Errorf("atom line with %d fields", len(f))
	}
	ints, err := parseints(f[0], f[2], f[5])
	if err != nil {
		return A, err
	}
	A.Index, A.ResidueIndex, A.ChargeGroup = ints[0], ints[1], ints[2]
	A.AtomType, A.ResidueName, A.Name = f[1], f[3], f[4]
	if A.Charge, err = strconv.ParseFloat(f[6], 64); err != nil {
		return A, err
	}
	if len(f) > 7 {
		A.Mass, err = strconv.ParseFloat(f[7], 64)
		return A, err
	}
	at, ok := R.S.AtomType(A.AtomType)
	if !ok {
		return A, fmt.Errorf("no mass given, and atom type %s is not defined", A.AtomType)
	}
	A.Mass = at.Mass
	return A, nil
}

// Reads a dihedrals line. Function 9 is read as function 1, since WriteTop
// writes each term of a multi-term proper in its own line.
func dihedralFromGro(f []string) (Dihedral, error) {
	var D Dihedral
	ints, err := parseints(f[:5]...)
	if err != nil {
		return D, err
	}
	atoms := [4]int{ints[0], ints[1], ints[2], ints[3]}
	switch fn := DihedralFunc(ints[4]); fn {
	case PeriodicProper, PeriodicImproper, 9:
		fl, err := parsefloats(f[5:7]...)
		if err != nil {
			return D, err
		}
		mult, err := strconv.Atoi(f[7])
		if err != nil {
			return D, err
		}
		if fn == PeriodicImproper {
			return NewPeriodicImproper(atoms, fl[0], fl[1], mult), nil
		}
		return NewPeriodicProper(atoms, fl[0], fl[1], mult), nil
	case RyckaertBellemans:
		fl, err := parsefloats(f[5:]...)
		if err != nil {
			return D, err
		}
		if len(fl) != 6 {
			return D, fmt.Errorf("R-B term detected but read %d parameters instead of the 6 expected", len(fl))
		}
		var c [6]float64
		copy(c[:], fl)
		return NewRyckaertBellemans(atoms, c), nil
	default:
		return D, InvalidFunctionalFormError{Func: fn, Atoms: atoms, deco: []string{"dihedralFromGro"}}
	}
}
