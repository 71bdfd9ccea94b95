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

package stream

import (
	"io"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/utils"
)

var _ ByteReadStream = (*ReaderStream)(nil)

// ReaderStream adapts an io.Reader to ByteReadStream.
//
// A read that returns data together with an error is split: the data is
// returned with a nil error and the error is reported by the next call.
// Every call therefore either transfers bytes or fails, never both.
type ReaderStream struct {
	r        io.Reader
	err      error
	disposed bool
}

// NewReaderStream wraps r. If r implements io.Closer it is closed on Dispose.
func NewReaderStream(r io.Reader) (*ReaderStream, error) {
	if r == nil {
		return nil, hasherr.InvalidArgument("NewReaderStream", "reader cannot be nil")
	}
	return &ReaderStream{r: r}, nil
}

// Read implements io.Reader.
func (s *ReaderStream) Read(p []byte) (int, error) {
	if s.disposed {
		return 0, hasherr.Disposed("Read")
	}
	if s.err != nil {
		return 0, s.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := s.r.Read(p)
	if n > 0 && err != nil {
		s.err = err
		err = nil
	}
	return n, err
}

// ReadByte implements io.ByteReader. It returns io.EOF at end of stream.
func (s *ReaderStream) ReadByte() (byte, error) {
	if s.disposed {
		return 0, hasherr.Disposed("ReadByte")
	}
	return readOneByte(s)
}

// ReadRange reads up to length bytes into p[start:start+length].
func (s *ReaderStream) ReadRange(p []byte, start, length int) (int, error) {
	if err := utils.ValidateRange("ReadRange", "p", p, start, length); err != nil {
		return 0, err
	}
	if s.disposed {
		return 0, hasherr.Disposed("ReadRange")
	}
	return s.Read(p[start : start+length])
}

// Dispose closes the wrapped reader if it is an io.Closer.
func (s *ReaderStream) Dispose() (bool, error) {
	if s.disposed {
		return false, nil
	}
	s.disposed = true
	if c, ok := s.r.(io.Closer); ok {
		return true, c.Close()
	}
	return true, nil
}

// IsDisposed reports whether Dispose has been called.
func (s *ReaderStream) IsDisposed() bool {
	return s.disposed
}

// Close implements io.Closer.
func (s *ReaderStream) Close() error {
	_, err := s.Dispose()
	return err
}
