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

// Package tap provides stream decorators that feed every byte passing through
// them into a hash function.
//
// A tap never buffers, reorders or alters the payload. It owns both the hash
// function and the wrapped stream: disposing the tap disposes the hash
// function first and then the stream. Errors from the wrapped stream,
// including io.EOF, are returned unchanged.
package tap

import (
	"errors"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/engines/memory"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/stream"
	"github.com/danschultequb/hashtap/pkg/utils"
)

var _ stream.ByteReadStream = (*ReadTap)(nil)

// ReadTap is a ByteReadStream that hashes every byte read through it.
type ReadTap struct {
	source   stream.ByteReadStream
	hasher   hashengines.HashFunction
	disposed bool
}

// NewReadTap wraps source, feeding the bytes it delivers into hasher.
// The tap takes ownership of both.
func NewReadTap(source stream.ByteReadStream, hasher hashengines.HashFunction) (*ReadTap, error) {
	if source == nil {
		return nil, hasherr.InvalidArgument("NewReadTap", "source cannot be nil")
	}
	if hasher == nil {
		return nil, hasherr.InvalidArgument("NewReadTap", "hasher cannot be nil")
	}
	return &ReadTap{source: source, hasher: hasher}, nil
}

// NewReadTapFunc wraps source with a hash function created by factory.
//
// If the factory fails its error is returned as-is and source is left
// undisposed, still owned by the caller.
func NewReadTapFunc(source stream.ByteReadStream, factory hashengines.Factory) (*ReadTap, error) {
	if source == nil {
		return nil, hasherr.InvalidArgument("NewReadTapFunc", "source cannot be nil")
	}
	if factory == nil {
		return nil, hasherr.InvalidArgument("NewReadTapFunc", "factory cannot be nil")
	}
	h, err := factory()
	if err != nil {
		return nil, err
	}
	return NewReadTap(source, h)
}

// NewReadTapFor wraps source with a hash function for the named algorithm.
func NewReadTapFor(source stream.ByteReadStream, algorithm string) (*ReadTap, error) {
	if source == nil {
		return nil, hasherr.InvalidArgument("NewReadTapFor", "source cannot be nil")
	}
	factory, err := hashengines.Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	return NewReadTapFunc(source, factory)
}

// NewMD5ReadTap wraps source with an MD5 hash function.
func NewMD5ReadTap(source stream.ByteReadStream) (*ReadTap, error) {
	return NewReadTapFunc(source, memory.MD5)
}

// NewSHA1ReadTap wraps source with a SHA-1 hash function.
func NewSHA1ReadTap(source stream.ByteReadStream) (*ReadTap, error) {
	return NewReadTapFunc(source, memory.SHA1)
}

// NewSHA256ReadTap wraps source with a SHA-256 hash function.
func NewSHA256ReadTap(source stream.ByteReadStream) (*ReadTap, error) {
	return NewReadTapFunc(source, memory.SHA256)
}

// Algorithm returns the canonical name of the tap's hash algorithm.
func (t *ReadTap) Algorithm() string {
	return t.hasher.Algorithm()
}

// ReadByte reads one byte from the source and feeds it to the hash function.
// On failure, including io.EOF, nothing is fed.
func (t *ReadTap) ReadByte() (byte, error) {
	if t.disposed {
		return 0, hasherr.Disposed("ReadByte")
	}
	b, err := t.source.ReadByte()
	if err != nil {
		return b, err
	}
	if err := t.hasher.FeedByte(b); err != nil {
		return b, err
	}
	return b, nil
}

// Read implements io.Reader. Exactly the n bytes the source delivered are fed,
// and (n, err) is returned as the source reported it.
func (t *ReadTap) Read(p []byte) (int, error) {
	if t.disposed {
		return 0, hasherr.Disposed("Read")
	}
	n, err := t.source.Read(p)
	if n > 0 {
		if ferr := t.hasher.FeedRange(p, 0, n); ferr != nil {
			return n, ferr
		}
	}
	return n, err
}

// ReadRange reads up to length bytes into p[start:start+length] and feeds
// p[start:start+n], where n is the count the source reported.
func (t *ReadTap) ReadRange(p []byte, start, length int) (int, error) {
	if err := utils.ValidateRange("ReadRange", "p", p, start, length); err != nil {
		return 0, err
	}
	if t.disposed {
		return 0, hasherr.Disposed("ReadRange")
	}
	n, err := t.source.ReadRange(p, start, length)
	if n > 0 {
		if ferr := t.hasher.FeedRange(p, start, n); ferr != nil {
			return n, ferr
		}
	}
	return n, err
}

// TakeDigest returns the digest of the bytes read since the tap was created
// or since the previous TakeDigest, and resets the hash function. The source
// is not touched.
func (t *ReadTap) TakeDigest() (digests.Digest, error) {
	if t.disposed {
		return digests.Digest{}, hasherr.Disposed("TakeDigest")
	}
	return t.hasher.Finalize()
}

// Dispose disposes the hash function and then the source. Both are attempted
// even if the first fails. Only the first call returns true.
func (t *ReadTap) Dispose() (bool, error) {
	if t.disposed {
		return false, nil
	}
	t.disposed = true
	return true, disposeBoth(t.hasher, t.source)
}

// IsDisposed reports whether Dispose has been called.
func (t *ReadTap) IsDisposed() bool {
	return t.disposed
}

// Close implements io.Closer.
func (t *ReadTap) Close() error {
	_, err := t.Dispose()
	return err
}

func disposeBoth(hasher, s stream.Disposable) error {
	_, herr := hasher.Dispose()
	_, serr := s.Dispose()
	return errors.Join(herr, serr)
}
