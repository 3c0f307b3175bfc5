/*
 * zio.go, part of gmxff.
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

// Package zio opens and creates files that may be compressed, choosing
// the compression from the file name: ".gz" for gzip, ".zst" for zstandard,
// anything else is read and written as is.
// Files created with this package are written to a temporary file in the
// same directory and only renamed to their final name on a successful Close,
// so a failed write never leaves a partial file behind.
package zio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression suffixes.
const (
	Gzip = ".gz"
	Zstd = ".zst"
)

// Base returns name without a compression suffix, and the suffix ("" if none).
func Base(name string) (string, string) {
	low := strings.ToLower(name)
	for _, s := range []string{Gzip, Zstd} {
		if strings.HasSuffix(low, s) {
			return name[:len(name)-len(s)], s
		}
	}
	return name, ""
}

// zstd's Decoder.Close doesn't return an error.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// reader closes both the decompressor and the file.
type reader struct {
	io.Reader
	z io.Closer
	f *os.File
}

func (r *reader) Close() error {
	var err error
	if r.z != nil {
		err = r.z.Close()
	}
	if err2 := r.f.Close(); err == nil {
		err = err2
	}
	return err
}

// Open opens name for reading, decompressing it if its suffix says so.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{msg: err.Error(), fileName: name, deco: []string{"Open"}}
	}
	buf := bufio.NewReader(f)
	_, suffix := Base(name)
	switch suffix {
	case Gzip:
		z, err := gzip.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, Error{msg: "can't read gzip header: " + err.Error(), fileName: name, deco: []string{"Open"}}
		}
		return &reader{Reader: z, z: z, f: f}, nil
	case Zstd:
		z, err := zstd.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, Error{msg: "can't start zstd decoder: " + err.Error(), fileName: name, deco: []string{"Open"}}
		}
		return &reader{Reader: z, z: zstdReadCloser{z}, f: f}, nil
	default:
		return &reader{Reader: buf, f: f}, nil
	}
}

// File is a file being written. Writes go to a temporary file
// that Close renames to the final name.
type File struct {
	name string
	tmp  *os.File
	buf  *bufio.Writer
	z    io.WriteCloser //nil if not compressed
	w    io.Writer
	done bool
}

// Create starts writing the file name, compressed according to its suffix.
func Create(name string) (*File, error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return nil, Error{msg: err.Error(), fileName: name, deco: []string{"Create"}}
	}
	F := &File{name: name, tmp: tmp, buf: bufio.NewWriter(tmp)}
	F.w = F.buf
	_, suffix := Base(name)
	switch suffix {
	case Gzip:
		F.z = gzip.NewWriter(F.buf)
	case Zstd:
		F.z, err = zstd.NewWriter(F.buf)
		if err != nil {
			F.Abort()
			return nil, Error{msg: "can't start zstd encoder: " + err.Error(), fileName: name, deco: []string{"Create"}}
		}
	}
	if F.z != nil {
		F.w = F.z
	}
	return F, nil
}

// Name returns the final name of the file.
func (F *File) Name() string { return F.name }

func (F *File) Write(p []byte) (int, error) {
	return F.w.Write(p)
}

// Mode is the permission of created files, unless they replace an
// existing file, whose permissions are kept.
const Mode os.FileMode = 0o644

func targetMode(name string) os.FileMode {
	if fi, err := os.Stat(name); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return Mode
}

// Close flushes all data and renames the temporary file to the final name.
// If anything fails, the temporary file is removed and the final
// name is left untouched.
func (F *File) Close() error {
	if F.done {
		return nil
	}
	if F.z != nil {
		if err := F.z.Close(); err != nil {
			F.Abort()
			return Error{msg: err.Error(), fileName: F.name, deco: []string{"Close"}}
		}
	}
	if err := F.buf.Flush(); err != nil {
		F.Abort()
		return Error{msg: err.Error(), fileName: F.name, deco: []string{"Close"}}
	}
	if err := F.tmp.Chmod(targetMode(F.name)); err != nil {
		F.Abort()
		return Error{msg: err.Error(), fileName: F.name, deco: []string{"Close"}}
	}
	if err := F.tmp.Close(); err != nil {
		F.Abort()
		return Error{msg: err.Error(), fileName: F.name, deco: []string{"Close"}}
	}
	if err := os.Rename(F.tmp.Name(), F.name); err != nil {
		os.Remove(F.tmp.Name())
		F.done = true
		return Error{msg: err.Error(), fileName: F.name, deco: []string{"Close"}}
	}
	F.done = true
	return nil
}

// Abort discards everything written. It is safe to call after Close.
func (F *File) Abort() {
	if F.done {
		return
	}
	F.tmp.Close()
	os.Remove(F.tmp.Name())
	F.done = true
}

// Error is the error type for this package.
type Error struct {
	msg      string
	fileName string
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("%s: %s", err.fileName, err.msg)
}

// FileName returns the name of the file involved in the error.
func (err Error) FileName() string { return err.fileName }

// Decorate adds dec to the decoration slice of the error and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
