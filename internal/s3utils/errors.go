/*
   Licensed under the MIT License <http://opensource.org/licenses/MIT>.

   Copyright © 2023-2025 Seagate Technology LLC and/or its Affiliates
   Copyright © 2020-2025 Microsoft Corporation. All rights reserved.

   Permission is hereby granted, free of charge, to any person obtaining a copy
   of this software and associated documentation files (the "Software"), to deal
   in the Software without restriction, including without limitation the rights
   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
   copies of the Software, and to permit persons to whom the Software is
   furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in all
   copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE
*/

package s3utils

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPartCount is returned when a split is asked for fewer than one part.
	ErrInvalidPartCount = errors.New("total parts must be at least 1")

	// ErrInvalidChunkSize is returned for a negative chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidPartSpec is returned for a part list entry with a non-positive size or a negative count.
	ErrInvalidPartSpec = errors.New("invalid part descriptor")
)

// IOError wraps a filesystem failure seen while reading a source file or writing a manifest.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func newIOError(op string, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// SizeMismatchError is returned by a strict precalculated split when the part list
// does not describe the source file exactly.
type SizeMismatchError struct {
	Path      string
	FileSize  int64
	Requested int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("part list describes %d bytes but %s has %d bytes", e.Requested, e.Path, e.FileSize)
}
