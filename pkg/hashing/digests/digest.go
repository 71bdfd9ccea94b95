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

// Package digests provides the value type produced by finalizing a hash function.
//
// A Digest is a fixed-length, byte-aligned bit sequence tagged with the name
// of the algorithm that produced it. It is immutable: constructors and
// accessors copy the underlying bytes.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

// Digest represents a computed message digest.
type Digest struct {
	algorithm string // Name of the hash algorithm used
	value     []byte // Raw digest bytes
}

// NewDigest creates a new Digest with the specified algorithm and hash value.
//
// The value slice is copied, so later changes to value do not affect the Digest.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// ParseHex builds a Digest from a hexadecimal string in either case.
func ParseHex(algorithm, s string) (Digest, error) {
	value, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Digest{}, hasherr.InvalidArgument("ParseHex", "malformed hex digest %q: %v", s, err)
	}
	if len(value) == 0 {
		return Digest{}, hasherr.InvalidArgument("ParseHex", "digest cannot be empty")
	}
	return Digest{algorithm: algorithm, value: value}, nil
}

// Algorithm returns the name of the hash algorithm used to compute this digest.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return len(d.value)
}

// BitLen returns the number of bits in the digest.
func (d Digest) BitLen() int {
	return len(d.value) * 8
}

// Bit returns bit i of the digest (0 or 1), counting from the most
// significant bit of the first byte. It panics if i is out of range.
func (d Digest) Bit(i int) byte {
	if i < 0 || i >= d.BitLen() {
		panic(fmt.Sprintf("digests: bit index %d out of range [0, %d)", i, d.BitLen()))
	}
	return (d.value[i/8] >> (7 - uint(i%8))) & 1
}

// IsZero reports whether d is the zero Digest (no value).
func (d Digest) IsZero() bool {
	return len(d.value) == 0
}

// Hex returns the uppercase hexadecimal encoding of the digest value,
// two characters per byte with no separators.
func (d Digest) Hex() string {
	return strings.ToUpper(hex.EncodeToString(d.value))
}

// String returns the digest as "ALGORITHM:HEX", or just HEX when unnamed.
func (d Digest) String() string {
	if d.algorithm == "" {
		return d.Hex()
	}
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether two digests hold the same bits.
//
// Algorithm names are compared only when both digests carry one, so a
// Digest parsed from user input without a name still matches a computed one.
func (d Digest) Equal(other Digest) bool {
	if d.algorithm != "" && other.algorithm != "" && d.algorithm != other.algorithm {
		return false
	}
	return bytes.Equal(d.value, other.value)
}
