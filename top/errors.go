/*
 * errors.go, part of gmxff.
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
	"errors"
	"fmt"
)

// Error is the error type for the top package.
type Error struct {
	msg  string
	deco []string
}

func (err Error) Error() string {
	return fmt.Sprintf("top: %s", err.msg)
}

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// ErrInvalidFunctionalForm is matched, with errors.Is, by InvalidFunctionalFormError.
var ErrInvalidFunctionalForm = errors.New("invalid functional form")

// InvalidFunctionalFormError means a record with a function type that can't
// be written was found. It signals a programming error in whatever built the system.
type InvalidFunctionalFormError struct {
	Func  DihedralFunc
	Atoms [4]int
	deco  []string
}

func (err InvalidFunctionalFormError) Error() string {
	return fmt.Sprintf("top: invalid dihedral function %d for atoms %v", int(err.Func), err.Atoms)
}

func (err InvalidFunctionalFormError) Is(target error) bool {
	return target == ErrInvalidFunctionalForm
}

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err InvalidFunctionalFormError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate adds caller to the decoration of the errors of this package.
// Other errors are wrapped.
func errDecorate(err error, caller string) error {
	switch e := err.(type) {
	case nil:
		return nil
	case Error:
		e.deco = append(e.deco, caller)
		return e
	case InvalidFunctionalFormError:
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}

// qerr panics with err if it is not nil. The writing functions
// recover it and return it as a regular error.
func qerr(err error) {
	if err != nil {
		panic(err)
	}
}

// recovered turns a value recovered from a qerr panic back into an error.
// Anything else is a real panic, and is re-raised.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	panic(r)
}
