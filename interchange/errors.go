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

package interchange

import "fmt"

// Error is the error type for the interchange package.
type Error struct {
	msg  string
	deco []string
}

func (err Error) Error() string {
	return fmt.Sprintf("interchange: %s", err.msg)
}

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate adds caller to the decoration of err if err is an Error.
// Other errors are wrapped.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
