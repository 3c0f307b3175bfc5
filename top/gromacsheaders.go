/*
 * gromacsheaders.go, part of gmxff.
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
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Utility functions

var fi = strings.Fields

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		i, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\r\n\t ")
}

// the sections this package reads.
var sections = []string{
	"defaults",
	"atomtypes",
	"moleculetype",
	"atoms",
	"pairs",
	"bonds",
	"angles",
	"dihedrals",
	"settles",
	"exclusions",
	"system",
	"molecules",
}

type topHeader struct {
	wany *regexp.Regexp
	spec map[string]*regexp.Regexp
}

func newTopHeader() *topHeader {
	T := new(topHeader)
	T.wany = regexp.MustCompile(`^\[\p{Zs}*(\S+)\p{Zs}*\]$`)
	T.spec = make(map[string]*regexp.Regexp, len(sections))
	for _, v := range sections {
		T.spec[v] = regexp.MustCompile(`^\[\p{Zs}*` + v + `\p{Zs}*\]$`)
	}
	return T
}

// Returns true if the line is a Gromacs header. It discards comments.
func (T *topHeader) Is(line string) bool {
	return T.wany.MatchString(cleanString(line))
}

// Returns a string indicating which Gromacs top file header
// the line is, or an empty string if the line is not a header, or
// is a header for a section this package doesn't read.
func (T *topHeader) Which(line string) string {
	line = cleanString(line)
	if !T.wany.MatchString(line) {
		return ""
	}
	for k, v := range T.spec {
		if v.MatchString(line) {
			return k
		}
	}
	return ""
}

// Name returns the name of the header in line, even if it is not one
// of the sections this package reads.
func (T *topHeader) Name(line string) string {
	m := T.wany.FindStringSubmatch(cleanString(line))
	if m == nil {
		return ""
	}
	return m[1]
}

type cond struct {
	reading bool
}

func newCond() *cond {
	c := new(cond)
	c.reading = true
	return c
}

// read handles the conditional parts of gromacs topologies,
// depending on the defined flags, which should be in 'defines'.
// It returns false if the line should be skipped.
func (c *cond) read(line string, defines []string) bool {
	if strings.HasPrefix(line, "#ifdef") || strings.HasPrefix(line, "#ifndef") {
		f := fi(line)
		def := len(f) > 1 && slices.Contains(defines, f[1])
		c.reading = def == strings.HasPrefix(line, "#ifdef")
		return false
	}
	if strings.HasPrefix(line, "#else") {
		c.reading = !c.reading
		return false
	}
	if strings.HasPrefix(line, "#endif") {
		c.reading = true
		return false
	}
	if strings.HasPrefix(line, "#") { //other directives are ignored
		return false
	}
	return c.reading
}
