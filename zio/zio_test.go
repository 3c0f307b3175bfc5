/*
 * zio_test.go, part of gmxff.
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

package zio

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"plain.top", "packed.top.gz", "packed.gro.zst"} {
		path := filepath.Join(dir, name)
		f, err := Create(path)
		if err != nil {
			Te.Fatal(err)
		}
		if _, err := io.WriteString(f, "[ system ]\nwater\n"); err != nil {
			Te.Fatal(err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			Te.Errorf("%s exists before Close", name)
		}
		if err := f.Close(); err != nil {
			Te.Fatal(err)
		}
		r, err := Open(path)
		if err != nil {
			Te.Fatal(err)
		}
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			Te.Fatal(err)
		}
		if string(b) != "[ system ]\nwater\n" {
			Te.Errorf("%s: read back %q", name, b)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		Te.Errorf("temporary files left behind: %v", entries)
	}
}

func TestAbort(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "out.top")
	f, err := Create(path)
	if err != nil {
		Te.Fatal(err)
	}
	io.WriteString(f, "half a file")
	f.Abort()
	if err := f.Close(); err != nil {
		Te.Errorf("Close after Abort: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		Te.Errorf("aborted write left files: %v", entries)
	}
}

func TestBase(Te *testing.T) {
	cases := map[string][2]string{
		"a.json":     {"a.json", ""},
		"a.json.gz":  {"a.json", Gzip},
		"a.YAML.ZST": {"a.YAML", Zstd},
	}
	for in, want := range cases {
		b, s := Base(in)
		if b != want[0] || s != want[1] {
			Te.Errorf("Base(%q) = %q, %q; want %q, %q", in, b, s, want[0], want[1])
		}
	}
}

func TestMode(Te *testing.T) {
	dir := Te.TempDir()
	write := func(name string) os.FileMode {
		Te.Helper()
		f, err := Create(name)
		if err != nil {
			Te.Fatal(err)
		}
		io.WriteString(f, "[ system ]\nwater\n")
		if err := f.Close(); err != nil {
			Te.Fatal(err)
		}
		fi, err := os.Stat(name)
		if err != nil {
			Te.Fatal(err)
		}
		return fi.Mode().Perm()
	}
	fresh := filepath.Join(dir, "fresh.top")
	if m := write(fresh); m != Mode {
		Te.Errorf("new file has mode %v, want %v", m, Mode)
	}
	old := filepath.Join(dir, "old.gro.gz")
	if err := os.WriteFile(old, nil, 0o600); err != nil {
		Te.Fatal(err)
	}
	if err := os.Chmod(old, 0o640); err != nil {
		Te.Fatal(err)
	}
	if m := write(old); m != 0o640 {
		Te.Errorf("replaced file has mode %v, want %v", m, os.FileMode(0o640))
	}
}
