// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stream defines the byte source and byte sink contracts that hashing
// taps decorate, together with adapters for io.Reader/io.Writer and an
// in-memory implementation.
//
// End of stream is reported as io.EOF. Partial transfers are legal: a read or
// write may move fewer bytes than requested and reports the actual count.
package stream

import "io"

// Disposable is implemented by values that own resources which must be
// released exactly once.
type Disposable interface {
	// Dispose releases the value's resources. The first call returns true;
	// later calls do nothing and return false.
	Dispose() (bool, error)

	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}

// ByteReadStream is a readable byte source.
type ByteReadStream interface {
	io.Reader
	io.ByteReader

	// ReadRange reads up to length bytes into p[start:start+length] and
	// returns the number of bytes read.
	ReadRange(p []byte, start, length int) (int, error)

	Disposable
}

// ByteWriteStream is a writable byte sink.
type ByteWriteStream interface {
	io.Writer
	io.ByteWriter

	// WriteRange writes p[start:start+length] and returns the number of bytes
	// the sink accepted, which may be fewer than length.
	WriteRange(p []byte, start, length int) (int, error)

	Disposable
}

// maxEmptyReads bounds how many (0, nil) results ReadByte tolerates before
// reporting io.ErrNoProgress.
const maxEmptyReads = 100

// readOneByte reads a single byte from r, retrying reads that return no data
// and no error.
func readOneByte(r io.Reader) (byte, error) {
	var b [1]byte
	for i := 0; i < maxEmptyReads; i++ {
		n, err := r.Read(b[:])
		if n == 1 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}
