/*
 * write.go, part of gmxff.
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
	"fmt"
	"io"
	"strings"
)

var sf = fmt.Sprintf

type groer interface {
	ToGro() (string, error)
}

// printGro writes each element of g with its ToGro method.
func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

// section writes a section header, its column comment, the records and a blank line.
func section[G ~[]E, E groer](r io.StringWriter, name, comment string, g G) {
	_, err := r.WriteString(sf("[ %s ]\n;%s\n", name, comment))
	qerr(err)
	qerr(printGro(r, g))
	_, err = r.WriteString("\n")
	qerr(err)
}

func (A *AtomType) ToGro() (string, error) {
	var b strings.Builder
	b.WriteString(sf("%-11s \t", sanitize(A.Name)))
	if A.BondingType != "" {
		b.WriteString(sf("%s\t", sanitize(A.BondingType)))
	}
	b.WriteString(sf("%6d\t%.16g\t%.16f\t%-5s\t%.16g\t%.16g\n", A.AtomicNumber, A.Mass, A.Charge, A.ParticleType, A.Sigma, A.Epsilon))
	return b.String(), nil
}

func (A Atom) ToGro() (string, error) {
	return sf("%6d %-6s%8d %-8s %-6s%6d%18.6f%18.6f\n", A.Index, sanitize(A.AtomType), A.ResidueIndex, sanitize(A.ResidueName), sanitize(A.Name), A.ChargeGroup, A.Charge, A.Mass), nil
}

func (P Pair) ToGro() (string, error) {
	return sf("%6d\t%6d\t%6d\n", P.Atoms[0], P.Atoms[1], 1), nil
}

func (B Bond) ToGro() (string, error) {
	return sf("%6d%6d%6d%18.6f%18.6f\n", B.Atoms[0], B.Atoms[1], 1, B.Length, B.K), nil
}

func (A Angle) ToGro() (string, error) {
	return sf("%6d%6d%6d%6d%18.6f%18.6f\n", A.Atoms[0], A.Atoms[1], A.Atoms[2], 1, A.Angle, A.K), nil
}

// ToGro writes the dihedral with the fields its function type needs. It
// returns an InvalidFunctionalFormError if the function type is not supported.
func (D Dihedral) ToGro() (string, error) {
	a := D.Atoms
	ret := sf("%6d%6d%6d%6d%6d", a[0], a[1], a[2], a[3], int(D.Func))
	switch D.Func {
	case PeriodicProper, PeriodicImproper:
		ret += sf("%18.6f%18.6f%18d", D.Phi, D.K, D.Multiplicity)
	case RyckaertBellemans:
		for _, c := range D.C {
			ret += sf("%18.6f", c)
		}
	default:
		return "", InvalidFunctionalFormError{Func: D.Func, Atoms: D.Atoms, deco: []string{"Dihedral.ToGro"}}
	}
	return ret + "\n", nil
}

func (S Settle) ToGro() (string, error) {
	return sf("%6d\t%6d\t%18.6f\t%18.6f\n", S.First, 1, S.DOH, S.DHH), nil
}

func (E Exclusion) ToGro() (string, error) {
	var b strings.Builder
	b.WriteString(sf("%6d", E.First))
	for _, v := range E.Others {
		b.WriteString(sf("%6d", v))
	}
	b.WriteString("\n")
	return b.String(), nil
}

func (M MoleculeCount) ToGro() (string, error) {
	return sf("%s\t%d\n", sanitize(M.Name), M.Count), nil
}

// WriteTop writes the system in Gromacs topology format to w.
// The system is validated and the whole topology is built in memory before
// anything is written, so on error nothing reaches w.
func (S *System) WriteTop(w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errDecorate(recovered(r), "WriteTop")
		}
	}()
	qerr(S.Validate())
	var b strings.Builder
	genpairs := "no"
	if S.GenPairs {
		genpairs = "yes"
	}
	b.WriteString("[ defaults ]\n; nbfunc\tcomb-rule\tgen-pairs\tfudgeLJ\tfudgeQQ\n")
	b.WriteString(sf("%6d\t%6d\t%-6s\t%8.6f\t%8.6f\n\n", S.NonbondedFunction, S.CombinationRule, genpairs, S.FudgeLJ, S.FudgeQQ))

	section(&b, "atomtypes", "type, bondingtype, atomic_number, mass, charge, ptype, sigma, epsilon", S.AtomTypes)

	for _, mt := range S.MoleculeTypes {
		b.WriteString(sf("[ moleculetype ]\n; name\tnrexcl\n%s\t%10d\n\n", sanitize(mt.Name), mt.NrExcl))
		section(&b, "atoms", "index, atom type, resnum, resname, name, cgnr, charge, mass", mt.Atoms)
		section(&b, "pairs", "ai    aj   funct", mt.Pairs)
		section(&b, "bonds", "ai    aj   funct r k", mt.Bonds)
		section(&b, "angles", "ai    aj   ak   funct theta  k", mt.Angles)
		section(&b, "dihedrals", "ai    aj   ak   al   funct phi  k", mt.Dihedrals)
		section(&b, "settles", "i  funct   dOH  dHH", mt.Settles)
		section(&b, "exclusions", "ai    aj", mt.Exclusions)
	}
	b.WriteString("\n")
	b.WriteString(sf("[ system ]\n;name\n%s\n\n", S.Name))
	section(&b, "molecules", "name\tnumber", S.Molecules)
	_, err = io.WriteString(w, b.String())
	qerr(err)
	return nil
}
