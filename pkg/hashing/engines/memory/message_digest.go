//
// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memory

import (
	"hash"
	"io"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/utils"
)

// Ensure MessageDigestHasher implements HashFunction at compile time.
var (
	_ hashengines.HashFunction = (*MessageDigestHasher)(nil)
	_ io.Writer                = (*MessageDigestHasher)(nil)
)

// HashFactoryFunc is a function that creates a new hash.Hash instance.
type HashFactoryFunc func() (hash.Hash, error)

// MessageDigestHasher adapts any hash.Hash to the HashFunction contract.
//
// The wrapped hash.Hash is replaced by a fresh instance on every Finalize and
// Reset, and dropped on Dispose, so no partial state about earlier input is
// kept around.
type MessageDigestHasher struct {
	name     string
	size     int
	factory  HashFactoryFunc
	h        hash.Hash
	disposed bool
}

// NewMessageDigestHasher creates a hasher for the algorithm called name whose
// digests are size bytes long.
func NewMessageDigestHasher(name string, size int, factory HashFactoryFunc) (*MessageDigestHasher, error) {
	if name == "" {
		return nil, hasherr.InvalidArgument("NewMessageDigestHasher", "algorithm cannot be empty")
	}
	if factory == nil {
		return nil, hasherr.InvalidArgument("NewMessageDigestHasher", "factory cannot be nil")
	}

	h, err := factory()
	if err != nil {
		return nil, err
	}

	return &MessageDigestHasher{
		name:    name,
		size:    size,
		factory: factory,
		h:       h,
	}, nil
}

// Algorithm returns the canonical name of the hash algorithm.
func (e *MessageDigestHasher) Algorithm() string {
	return e.name
}

// DigestSize returns the size, in bytes, of digests produced by this hasher.
func (e *MessageDigestHasher) DigestSize() int {
	return e.size
}

// FeedByte appends a single byte.
func (e *MessageDigestHasher) FeedByte(b byte) error {
	if e.disposed {
		return hasherr.Disposed("FeedByte")
	}
	// hash.Hash.Write never returns an error per the interface contract
	_, _ = e.h.Write([]byte{b})
	return nil
}

// Feed appends all of p.
func (e *MessageDigestHasher) Feed(p []byte) error {
	if p == nil {
		return hasherr.InvalidArgument("Feed", "p cannot be nil")
	}
	return e.FeedRange(p, 0, len(p))
}

// FeedRange appends p[start:start+length].
func (e *MessageDigestHasher) FeedRange(p []byte, start, length int) error {
	if err := utils.ValidateRange("FeedRange", "p", p, start, length); err != nil {
		return err
	}
	if e.disposed {
		return hasherr.Disposed("FeedRange")
	}
	if length > 0 {
		_, _ = e.h.Write(p[start : start+length])
	}
	return nil
}

// Write implements io.Writer so the hasher can be the destination of io.Copy.
func (e *MessageDigestHasher) Write(p []byte) (int, error) {
	if e.disposed {
		return 0, hasherr.Disposed("Write")
	}
	_, _ = e.h.Write(p)
	return len(p), nil
}

// Finalize returns the digest of everything fed so far and resets the hasher.
func (e *MessageDigestHasher) Finalize() (digests.Digest, error) {
	if e.disposed {
		return digests.Digest{}, hasherr.Disposed("Finalize")
	}

	sum := e.h.Sum(nil)
	e.renew()
	return digests.NewDigest(e.name, sum), nil
}

// Reset discards the in-progress state.
func (e *MessageDigestHasher) Reset() error {
	if e.disposed {
		return hasherr.Disposed("Reset")
	}
	e.renew()
	return nil
}

// Dispose clears the hash state and marks the hasher disposed.
func (e *MessageDigestHasher) Dispose() (bool, error) {
	if e.disposed {
		return false, nil
	}
	e.disposed = true
	e.h.Reset()
	e.h = nil
	return true, nil
}

// IsDisposed reports whether Dispose has been called.
func (e *MessageDigestHasher) IsDisposed() bool {
	return e.disposed
}

// renew swaps in a fresh hash instance. The factory succeeded at
// construction, so a later failure falls back to resetting in place.
func (e *MessageDigestHasher) renew() {
	e.h.Reset()
	if h, err := e.factory(); err == nil {
		e.h = h
	}
}
