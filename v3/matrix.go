/*
 * matrix.go, part of gmxff.
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
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //everything equal or less than this is considered zero.

// Matrix is a set of vectors in 3D space. Within the package it is understood that a
// "vector" is a row vector, i.e. the cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix wraps a gonum Dense with 3 columns. It panics if A doesn't have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Vec returns a copy of the ith vector of F as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	for j := 0; j < 3; j++ {
		F.Set(i, j, v[j])
	}
}

// Scaled returns a new matrix with every element of F multiplied by factor.
// F is not modified.
func (F *Matrix) Scaled(factor float64) *Matrix {
	ret := Zeros(F.NVecs())
	ret.Scale(factor, F.Dense)
	return ret
}

// IsDiagonal returns true if F is a 3x3 matrix whose off-diagonal
// elements are all zero. Used to tell rectangular periodic boxes apart.
func (F *Matrix) IsDiagonal() bool {
	if F.NVecs() != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && math.Abs(F.At(i, j)) > appzero {
				return false
			}
		}
	}
	return true
}

func (F *Matrix) String() string {
	r := F.NVecs()
	b := make([]string, 0, r)
	for i := 0; i < r; i++ {
		b = append(b, fmt.Sprintf("[%8.4f %8.4f %8.4f]", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	return strings.Join(b, "\n")
}

// Error is the error type for the package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("gmxff/v3: A Matrix should have 3 columns")
	ErrIndexOutOfRange = PanicMsg("gmxff/v3: index out of range")
)
