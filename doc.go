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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package chem is the molecular topology layer of gmxff. It provides atom and
molecule structures, a topology made of several molecules with a global
atom numbering, and the connectivity-derived terms a force-field exporter
needs:

	Bonds, angles (i-j-k), proper torsions (i-j-k-l) and impropers
	around trivalent atoms, enumerated in a deterministic order.

	1-4 pairs, that is, atoms exactly 3 bonds apart, found by a
	breadth-first search on the molecule graph.

	Partition of the molecules of a topology into sets of identical
	(isomorphic) molecules, with the atom correspondence between them.

	Element data (symbols and masses).

Molecules are stored as gonum undirected graphs. The interfaces in this
package (MolGraph, TopologyQuerier) are what the rest of gmxff uses, so
other topology sources can be plugged in.
*/
package chem
