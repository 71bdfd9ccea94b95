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

package tap

import (
	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/engines/memory"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/stream"
	"github.com/danschultequb/hashtap/pkg/utils"
)

var _ stream.ByteWriteStream = (*WriteTap)(nil)

// WriteTap is a ByteWriteStream that hashes every byte the destination
// accepts.
type WriteTap struct {
	destination stream.ByteWriteStream
	hasher      hashengines.HashFunction
	disposed    bool
}

// NewWriteTap wraps destination, feeding the bytes it accepts into hasher.
// The tap takes ownership of both.
func NewWriteTap(destination stream.ByteWriteStream, hasher hashengines.HashFunction) (*WriteTap, error) {
	if destination == nil {
		return nil, hasherr.InvalidArgument("NewWriteTap", "destination cannot be nil")
	}
	if hasher == nil {
		return nil, hasherr.InvalidArgument("NewWriteTap", "hasher cannot be nil")
	}
	return &WriteTap{destination: destination, hasher: hasher}, nil
}

// NewWriteTapFunc wraps destination with a hash function created by factory.
// A failing factory leaves destination undisposed.
func NewWriteTapFunc(destination stream.ByteWriteStream, factory hashengines.Factory) (*WriteTap, error) {
	if destination == nil {
		return nil, hasherr.InvalidArgument("NewWriteTapFunc", "destination cannot be nil")
	}
	if factory == nil {
		return nil, hasherr.InvalidArgument("NewWriteTapFunc", "factory cannot be nil")
	}
	h, err := factory()
	if err != nil {
		return nil, err
	}
	return NewWriteTap(destination, h)
}

// NewWriteTapFor wraps destination with a hash function for the named algorithm.
func NewWriteTapFor(destination stream.ByteWriteStream, algorithm string) (*WriteTap, error) {
	if destination == nil {
		return nil, hasherr.InvalidArgument("NewWriteTapFor", "destination cannot be nil")
	}
	factory, err := hashengines.Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	return NewWriteTapFunc(destination, factory)
}

// NewMD5WriteTap wraps destination with an MD5 hash function.
func NewMD5WriteTap(destination stream.ByteWriteStream) (*WriteTap, error) {
	return NewWriteTapFunc(destination, memory.MD5)
}

// NewSHA1WriteTap wraps destination with a SHA-1 hash function.
func NewSHA1WriteTap(destination stream.ByteWriteStream) (*WriteTap, error) {
	return NewWriteTapFunc(destination, memory.SHA1)
}

// NewSHA256WriteTap wraps destination with a SHA-256 hash function.
func NewSHA256WriteTap(destination stream.ByteWriteStream) (*WriteTap, error) {
	return NewWriteTapFunc(destination, memory.SHA256)
}

// Algorithm returns the canonical name of the tap's hash algorithm.
func (t *WriteTap) Algorithm() string {
	return t.hasher.Algorithm()
}

// WriteByte writes one byte and feeds it once the destination accepted it.
func (t *WriteTap) WriteByte(c byte) error {
	if t.disposed {
		return hasherr.Disposed("WriteByte")
	}
	if err := t.destination.WriteByte(c); err != nil {
		return err
	}
	return t.hasher.FeedByte(c)
}

// Write implements io.Writer. Only the n bytes the destination accepted are fed.
func (t *WriteTap) Write(p []byte) (int, error) {
	if t.disposed {
		return 0, hasherr.Disposed("Write")
	}
	n, err := t.destination.Write(p)
	if n > 0 {
		if ferr := t.hasher.FeedRange(p, 0, n); ferr != nil {
			return n, ferr
		}
	}
	return n, err
}

// WriteRange writes p[start:start+length] and feeds p[start:start+n], where
// n is the count the destination accepted.
func (t *WriteTap) WriteRange(p []byte, start, length int) (int, error) {
	if err := utils.ValidateRange("WriteRange", "p", p, start, length); err != nil {
		return 0, err
	}
	if t.disposed {
		return 0, hasherr.Disposed("WriteRange")
	}
	n, err := t.destination.WriteRange(p, start, length)
	if n > 0 {
		if ferr := t.hasher.FeedRange(p, start, n); ferr != nil {
			return n, ferr
		}
	}
	return n, err
}

// TakeDigest returns the digest of the bytes written since the tap was
// created or since the previous TakeDigest, and resets the hash function.
func (t *WriteTap) TakeDigest() (digests.Digest, error) {
	if t.disposed {
		return digests.Digest{}, hasherr.Disposed("TakeDigest")
	}
	return t.hasher.Finalize()
}

// Dispose disposes the hash function and then the destination. Only the
// first call returns true.
func (t *WriteTap) Dispose() (bool, error) {
	if t.disposed {
		return false, nil
	}
	t.disposed = true
	return true, disposeBoth(t.hasher, t.destination)
}

// IsDisposed reports whether Dispose has been called.
func (t *WriteTap) IsDisposed() bool {
	return t.disposed
}

// Close implements io.Closer.
func (t *WriteTap) Close() error {
	_, err := t.Dispose()
	return err
}
