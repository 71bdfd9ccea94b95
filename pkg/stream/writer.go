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

var _ ByteWriteStream = (*WriterStream)(nil)

// WriterStream adapts an io.Writer to ByteWriteStream.
type WriterStream struct {
	w        io.Writer
	disposed bool
}

// NewWriterStream wraps w. If w implements io.Closer it is closed on Dispose.
func NewWriterStream(w io.Writer) (*WriterStream, error) {
	if w == nil {
		return nil, hasherr.InvalidArgument("NewWriterStream", "writer cannot be nil")
	}
	return &WriterStream{w: w}, nil
}

// Write implements io.Writer.
func (s *WriterStream) Write(p []byte) (int, error) {
	if s.disposed {
		return 0, hasherr.Disposed("Write")
	}
	return s.w.Write(p)
}

// WriteByte implements io.ByteWriter.
func (s *WriterStream) WriteByte(c byte) error {
	if s.disposed {
		return hasherr.Disposed("WriteByte")
	}
	n, err := s.w.Write([]byte{c})
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

// WriteRange writes p[start:start+length].
func (s *WriterStream) WriteRange(p []byte, start, length int) (int, error) {
	if err := utils.ValidateRange("WriteRange", "p", p, start, length); err != nil {
		return 0, err
	}
	return s.Write(p[start : start+length])
}

// Dispose closes the wrapped writer if it is an io.Closer.
func (s *WriterStream) Dispose() (bool, error) {
	if s.disposed {
		return false, nil
	}
	s.disposed = true
	if c, ok := s.w.(io.Closer); ok {
		return true, c.Close()
	}
	return true, nil
}

// IsDisposed reports whether Dispose has been called.
func (s *WriterStream) IsDisposed() bool {
	return s.disposed
}

// Close implements io.Closer.
func (s *WriterStream) Close() error {
	_, err := s.Dispose()
	return err
}
