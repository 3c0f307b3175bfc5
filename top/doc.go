/*
 * doc.go, part of gmxff.
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

/*
Top is a package for building, writing and reading Gromacs systems: the
force-field topology (.top) and the coordinates (.gro). Not to be
confused with the topology of the chem package, which holds the molecular
graph.

A System holds Lennard-Jones atom types, molecule types with their
atoms, pairs, bonds, angles, dihedrals, settles and exclusions, and the
ordered list of molecules. Dihedrals are periodic propers (function 1),
Ryckaert-Bellemans (3) or periodic impropers (4). Other Gromacs terms,
virtual sites and constraints other than settles are not supported.
*/
package top
