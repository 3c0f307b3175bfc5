/*
 * inspect.go, part of gmxff.
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

package main

import (
	"fmt"
	"io"

	"github.com/rmera/gmxff/top"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInspectCommand(a *app) *cobra.Command {
	var defines []string
	cmd := &cobra.Command{
		Use:   "inspect FILE.top",
		Short: "Summarize a Gromacs topology",
		Long: "inspect reads a topology (optionally gzip or zstd compressed) and prints its\n" +
			"atom types, molecule types and molecule counts. #include is not followed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			S, err := top.ReadTopFile(args[0], defines...)
			if err != nil {
				return err
			}
			a.log.Debug("topology read", zap.String("file", args[0]), zap.Strings("defines", defines))
			return summary(cmd.OutOrStdout(), S)
		},
	}
	cmd.Flags().StringSliceVarP(&defines, "define", "D", nil, "names defined for #ifdef blocks")
	return cmd
}

// summary prints the contents of S to w.
func summary(w io.Writer, S *top.System) error {
	natoms := S.NAtoms()
	if natoms < 0 {
		return fmt.Errorf("the molecule list refers to undefined molecule types")
	}
	p := func(format string, v ...any) { fmt.Fprintf(w, format, v...) }
	p("system: %s\n", S.Name)
	p("combination rule: %d, generate pairs: %t, fudgeLJ: %g, fudgeQQ: %g\n", S.CombinationRule, S.GenPairs, S.FudgeLJ, S.FudgeQQ)
	p("atom types: %d\n", len(S.AtomTypes))
	p("molecule types: %d\n", len(S.MoleculeTypes))
	for _, mt := range S.MoleculeTypes {
		p("  %-12s atoms %5d  bonds %5d  angles %5d  dihedrals %5d  settles %d\n", mt.Name, len(mt.Atoms), len(mt.Bonds), len(mt.Angles), len(mt.Dihedrals), len(mt.Settles))
	}
	p("molecules:\n")
	for _, m := range S.Molecules {
		p("  %-12s %d\n", m.Name, m.Count)
	}
	p("total atoms: %d\n", natoms)
	return nil
}
