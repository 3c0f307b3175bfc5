/*
 * export.go, part of gmxff.
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
	"path/filepath"
	"strings"

	"github.com/rmera/gmxff/convert"
	"github.com/rmera/gmxff/interchange"
	"github.com/rmera/gmxff/top"
	"github.com/rmera/gmxff/zio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// outputNames returns the default .top and .gro names for the input file:
// its name without compression suffix and extension, plus the suffix for
// the compression, if any.
func outputNames(input, compression string) (string, string) {
	base, _ := zio.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	suffix := ""
	if compression != "" {
		suffix = "." + compression
	}
	return base + ".top" + suffix, base + ".gro" + suffix
}

func newExportCommand(a *app) *cobra.Command {
	var topName, groName string
	cmd := &cobra.Command{
		Use:   "export INPUT",
		Short: "Write the Gromacs topology and coordinates for an interchange file",
		Long: "export reads an interchange file (.json, .yaml or .yml, optionally ending in .gz or .zst),\n" +
			"converts it and writes a .top file and, if the interchange has positions, a .gro file.\n" +
			"Files are only created if the whole conversion succeeds.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd, args[0], topName, groName)
		},
	}
	f := cmd.Flags()
	f.StringVar(&topName, "top", "", "topology file to write (default: INPUT with a .top extension)")
	f.StringVar(&groName, "gro", "", "coordinate file to write (default: INPUT with a .gro extension)")
	f.String("name", "", "system name (default: the interchange's name, or FOO)")
	f.Int("gro-precision", top.DefaultGroPrecision, "decimals for the positions in the .gro file")
	f.String("compression", "", "compression for the default output names: gz or zst")
	_ = a.v.BindPFlag("name", f.Lookup("name"))
	_ = a.v.BindPFlag("gro_precision", f.Lookup("gro-precision"))
	_ = a.v.BindPFlag("compression", f.Lookup("compression"))
	return cmd
}

func (a *app) export(cmd *cobra.Command, input, topName, groName string) error {
	ic, err := interchange.ReadFile(input)
	if err != nil {
		return err
	}
	name := a.cfg.Name
	if name == "" {
		name = ic.Name
	}
	a.log.Info("converting", zap.String("input", input), zap.String("system", name))
	S, err := convert.ToSystem(ic, convert.WithName(name), convert.WithLogger(a.log))
	if err != nil {
		return err
	}
	deftop, defgro := outputNames(input, a.cfg.Compression)
	if topName == "" {
		topName = deftop
	}
	if groName == "" {
		groName = defgro
	}
	if err := top.WriteTopFile(topName, S); err != nil {
		return err
	}
	a.log.Info("topology written", zap.String("file", topName), zap.Int("atoms", S.NAtoms()))
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", topName)
	if S.Positions == nil {
		a.log.Warn("the interchange has no positions, no coordinate file written")
		return nil
	}
	if err := top.WriteGroFile(groName, S, top.GroPrecision(a.cfg.GroPrecision)); err != nil {
		return err
	}
	a.log.Info("coordinates written", zap.String("file", groName))
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", groName)
	return nil
}
