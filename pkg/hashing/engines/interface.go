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

// Package hashengines defines the incremental hash function contract and the
// registry that maps algorithm names to hash function factories.
//
// A HashFunction accumulates bytes over any number of Feed calls and produces
// a digest on Finalize, after which it is back in its initial state and can be
// reused for the next message. Implementations are not safe for concurrent
// use; hash independent streams with independent instances.
package hashengines

import (
	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	"github.com/danschultequb/hashtap/pkg/stream"
)

// HashFunction is a stateful function mapping data of any length to a
// fixed-size digest.
//
// Once disposed, every Feed, Finalize and Reset call fails with an
// hasherr.ErrTypeInvalidState error.
type HashFunction interface {
	// Algorithm returns the canonical name of the digest algorithm.
	Algorithm() string

	// DigestSize returns the size in bytes of digests produced by Finalize.
	DigestSize() int

	// FeedByte appends a single byte to the running computation.
	FeedByte(b byte) error

	// Feed appends all of p. p must not be nil.
	Feed(p []byte) error

	// FeedRange appends p[start:start+length]. Arguments are validated before
	// any byte is consumed, so a rejected call leaves the state unchanged.
	FeedRange(p []byte, start, length int) error

	// Finalize returns the digest of every byte fed since creation or the
	// previous Finalize/Reset, and resets the function to its initial state
	// so no trace of the processed input remains.
	Finalize() (digests.Digest, error)

	// Reset discards in-progress state without producing a digest.
	Reset() error

	// Dispose resets the state and marks the function disposed. Only the
	// first call returns true.
	stream.Disposable
}

// Factory creates a new hash function.
type Factory func() (HashFunction, error)

// FinalizeByte feeds b to h and finalizes it.
func FinalizeByte(h HashFunction, b byte) (digests.Digest, error) {
	if err := h.FeedByte(b); err != nil {
		return digests.Digest{}, err
	}
	return h.Finalize()
}

// FinalizeBytes feeds all of p to h and finalizes it.
func FinalizeBytes(h HashFunction, p []byte) (digests.Digest, error) {
	if err := h.Feed(p); err != nil {
		return digests.Digest{}, err
	}
	return h.Finalize()
}

// FinalizeRange feeds p[start:start+length] to h and finalizes it.
func FinalizeRange(h HashFunction, p []byte, start, length int) (digests.Digest, error) {
	if err := h.FeedRange(p, start, length); err != nil {
		return digests.Digest{}, err
	}
	return h.Finalize()
}
