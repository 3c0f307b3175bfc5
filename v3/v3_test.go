/*
 * v3_test.go, part of gmxff.
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

package v3

import (
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if v := A.Vec(1); v != [3]float64{4, 5, 6} {
		Te.Errorf("unexpected second vector %v", v)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
}

func TestScaled(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3})
	B := A.Scaled(0.1)
	if B.At(0, 2) < 0.2999999 || B.At(0, 2) > 0.3000001 {
		Te.Errorf("scaling failed: %v", B)
	}
	if A.At(0, 2) != 3 {
		Te.Error("Scaled modified the receiver")
	}
}

func TestIsDiagonal(Te *testing.T) {
	box := Zeros(3)
	box.SetVec(0, [3]float64{2, 0, 0})
	box.SetVec(1, [3]float64{0, 2, 0})
	box.SetVec(2, [3]float64{0, 0, 2})
	if !box.IsDiagonal() {
		Te.Error("rectangular box not recognized")
	}
	box.Set(1, 0, 0.5)
	if box.IsDiagonal() {
		Te.Error("triclinic box taken as rectangular")
	}
}
