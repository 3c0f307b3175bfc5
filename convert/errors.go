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

package convert

import (
	"errors"
	"fmt"
)

// Sentinels for the classes of conversion failure. Use errors.Is.
var (
	ErrUnsupportedConfiguration = errors.New("unsupported export configuration")
	ErrMissingParameterMatch    = errors.New("missing parameter match")
	ErrInconsistentMetadata     = errors.New("inconsistent metadata")
)

// UnsupportedExportError is returned when the interchange uses something
// that can't be expressed in a Gromacs topology, or that is not implemented.
type UnsupportedExportError struct {
	msg  string
	deco []string
}

func (err UnsupportedExportError) Error() string {
	return "convert: unsupported export: " + err.msg
}

func (err UnsupportedExportError) Is(target error) bool { return target == ErrUnsupportedConfiguration }

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err UnsupportedExportError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// MissingBondError means no parameters were assigned to a bond.
// Atoms are topology indices.
type MissingBondError struct {
	Atoms [2]int
	deco  []string
}

func (err MissingBondError) Error() string {
	return fmt.Sprintf("convert: failed to find parameters for bond with topology indices %v", err.Atoms)
}

func (err MissingBondError) Is(target error) bool { return target == ErrMissingParameterMatch }

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err MissingBondError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// MissingAngleError means no parameters were assigned to an angle.
// Atoms are topology indices.
type MissingAngleError struct {
	Atoms [3]int
	deco  []string
}

func (err MissingAngleError) Error() string {
	return fmt.Sprintf("convert: failed to find parameters for angle with topology indices %v", err.Atoms)
}

func (err MissingAngleError) Is(target error) bool { return target == ErrMissingParameterMatch }

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err MissingAngleError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// MissingTorsionError means a proper torsion matched neither periodic
// nor Ryckaert-Bellemans parameters. Atoms are topology indices.
type MissingTorsionError struct {
	Atoms [4]int
	deco  []string
}

func (err MissingTorsionError) Error() string {
	return fmt.Sprintf("convert: failed to find parameters for proper torsion with topology indices %v", err.Atoms)
}

func (err MissingTorsionError) Is(target error) bool { return target == ErrMissingParameterMatch }

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err MissingTorsionError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// InconsistentMetadataError is returned when the per-atom annotations of
// a molecule are only partially given.
type InconsistentMetadataError struct {
	Molecule string
	msg      string
	deco     []string
}

func (err InconsistentMetadataError) Error() string {
	return fmt.Sprintf("convert: molecule %s: %s", err.Molecule, err.msg)
}

func (err InconsistentMetadataError) Is(target error) bool { return target == ErrInconsistentMetadata }

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err InconsistentMetadataError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// LookupError means a key or parameter that a well-formed interchange
// always has is missing. Key holds topology indices, Param the parameter
// name, if the key was found but the parameter wasn't.
type LookupError struct {
	Collection string
	Key        []int
	Param      string
	deco       []string
}

func (err LookupError) Error() string {
	if err.Param != "" {
		return fmt.Sprintf("convert: %s collection: no parameter %q for atoms %v", err.Collection, err.Param, err.Key)
	}
	return fmt.Sprintf("convert: %s collection: no key for atoms %v", err.Collection, err.Key)
}

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err LookupError) Decorate(dec string) []string {
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
	case UnsupportedExportError:
		e.deco = append(e.deco, caller)
		return e
	case MissingBondError:
		e.deco = append(e.deco, caller)
		return e
	case MissingAngleError:
		e.deco = append(e.deco, caller)
		return e
	case MissingTorsionError:
		e.deco = append(e.deco, caller)
		return e
	case InconsistentMetadataError:
		e.deco = append(e.deco, caller)
		return e
	case LookupError:
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
