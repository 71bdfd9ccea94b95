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

var (
	_ ByteReadStream  = (*MemoryStream)(nil)
	_ ByteWriteStream = (*MemoryStream)(nil)
)

// MemoryStream is a byte stream backed by a slice. Written bytes are appended
// and become readable in FIFO order; reading an empty stream returns io.EOF.
type MemoryStream struct {
	buf      []byte
	off      int
	disposed bool
}

// NewMemoryStream returns a stream whose readable content starts as a copy of data.
func NewMemoryStream(data []byte) *MemoryStream {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MemoryStream{buf: buf}
}

// Len returns the number of unread bytes.
func (s *MemoryStream) Len() int {
	return len(s.buf) - s.off
}

// Bytes returns a copy of the unread bytes.
func (s *MemoryStream) Bytes() []byte {
	out := make([]byte, s.Len())
	copy(out, s.buf[s.off:])
	return out
}

// Read implements io.Reader.
func (s *MemoryStream) Read(p []byte) (int, error) {
	if s.disposed {
		return 0, hasherr.Disposed("Read")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.off >= len(s.buf) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.off:])
	s.off += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (s *MemoryStream) ReadByte() (byte, error) {
	if s.disposed {
		return 0, hasherr.Disposed("ReadByte")
	}
	if s.off >= len(s.buf) {
		return 0, io.EOF
	}
	b := s.buf[s.off]
	s.off++
	return b, nil
}

// ReadRange reads up to length bytes into p[start:start+length].
func (s *MemoryStream) ReadRange(p []byte, start, length int) (int, error) {
	if err := utils.ValidateRange("ReadRange", "p", p, start, length); err != nil {
		return 0, err
	}
	return s.Read(p[start : start+length])
}

// Write implements io.Writer.
func (s *MemoryStream) Write(p []byte) (int, error) {
	if s.disposed {
		return 0, hasherr.Disposed("Write")
	}
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (s *MemoryStream) WriteByte(c byte) error {
	if s.disposed {
		return hasherr.Disposed("WriteByte")
	}
	s.buf = append(s.buf, c)
	return nil
}

// WriteRange appends p[start:start+length].
func (s *MemoryStream) WriteRange(p []byte, start, length int) (int, error) {
	if err := utils.ValidateRange("WriteRange", "p", p, start, length); err != nil {
		return 0, err
	}
	return s.Write(p[start : start+length])
}

// Dispose drops the buffered content.
func (s *MemoryStream) Dispose() (bool, error) {
	if s.disposed {
		return false, nil
	}
	s.disposed = true
	s.buf = nil
	s.off = 0
	return true, nil
}

// IsDisposed reports whether Dispose has been called.
func (s *MemoryStream) IsDisposed() bool {
	return s.disposed
}

// Close implements io.Closer.
func (s *MemoryStream) Close() error {
	_, err := s.Dispose()
	return err
}
