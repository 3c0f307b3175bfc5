/*
 * files.go, part of gmxff.
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
	"github.com/rmera/gmxff/zio"
)

// WriteTopFile writes the system to the topology file name. The file is
// compressed if its name ends in .gz or .zst. Nothing is written to name
// unless the whole topology can be written.
func WriteTopFile(name string, S *System) error {
	f, err := zio.Create(name)
	if err != nil {
		return errDecorate(err, "WriteTopFile")
	}
	if err = S.WriteTop(f); err != nil {
		f.Abort()
		return errDecorate(err, "WriteTopFile")
	}
	return errDecorate(f.Close(), "WriteTopFile")
}

// WriteGroFile writes the coordinates of the system to the .gro file name,
// in the same way WriteTopFile writes the topology.
func WriteGroFile(name string, S *System, opts ...GroOption) error {
	f, err := zio.Create(name)
	if err != nil {
		return errDecorate(err, "WriteGroFile")
	}
	if err = S.WriteGro(f, opts...); err != nil {
		f.Abort()
		return errDecorate(err, "WriteGroFile")
	}
	return errDecorate(f.Close(), "WriteGroFile")
}

// ReadTopFile reads the topology file name, which may be compressed.
func ReadTopFile(name string, defines ...string) (*System, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, errDecorate(err, "ReadTopFile")
	}
	defer f.Close()
	S, err := ReadTop(f, defines...)
	return S, errDecorate(err, "ReadTopFile")
}

// ReadGroFile reads the .gro file name, which may be compressed.
func ReadGroFile(name string) (*Gro, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, errDecorate(err, "ReadGroFile")
	}
	defer f.Close()
	G, err := ReadGro(f)
	return G, errDecorate(err, "ReadGroFile")
}
