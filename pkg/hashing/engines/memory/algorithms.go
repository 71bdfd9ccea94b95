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

// Package memory provides in-memory hash functions backed by hash.Hash
// implementations and registers them with the hashengines registry.
package memory

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha512"
	"hash"

	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Canonical algorithm names.
const (
	AlgorithmMD5        = "MD5"
	AlgorithmSHA1       = "SHA-1"
	AlgorithmSHA256     = "SHA-256"
	AlgorithmSHA512     = "SHA-512"
	AlgorithmBLAKE2b256 = "BLAKE2b-256"
	AlgorithmBLAKE2b512 = "BLAKE2b-512"
	AlgorithmSHA3_256   = "SHA3-256"
	AlgorithmSHA3_512   = "SHA3-512"
)

// Factories for the built-in algorithms, usable wherever a
// hashengines.Factory is expected.
var (
	MD5        = asFactory(NewMD5)
	SHA1       = asFactory(NewSHA1)
	SHA256     = asFactory(NewSHA256)
	SHA512     = asFactory(NewSHA512)
	BLAKE2b256 = asFactory(NewBLAKE2b256)
	BLAKE2b512 = asFactory(NewBLAKE2b512)
	SHA3_256   = asFactory(NewSHA3_256)
	SHA3_512   = asFactory(NewSHA3_512)
)

func init() {
	hashengines.MustRegister(AlgorithmMD5, MD5)
	hashengines.MustRegister(AlgorithmSHA1, SHA1)
	hashengines.MustRegister(AlgorithmSHA256, SHA256)
	hashengines.MustRegister(AlgorithmSHA512, SHA512)
	hashengines.MustRegister(AlgorithmBLAKE2b256, BLAKE2b256)
	hashengines.MustRegister(AlgorithmBLAKE2b512, BLAKE2b512)
	hashengines.MustRegister(AlgorithmSHA3_256, SHA3_256)
	hashengines.MustRegister(AlgorithmSHA3_512, SHA3_512)
}

// NewMD5 creates a new MD5 hash function.
func NewMD5() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmMD5, md5.Size, infallible(md5.New))
}

// NewSHA1 creates a new SHA-1 hash function.
func NewSHA1() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmSHA1, sha1.Size, infallible(sha1.New))
}

// NewSHA256 creates a new SHA-256 hash function. The implementation uses
// SIMD instructions when the CPU provides them.
func NewSHA256() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmSHA256, sha256simd.Size, infallible(sha256simd.New))
}

// NewSHA512 creates a new SHA-512 hash function.
func NewSHA512() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmSHA512, sha512.Size, infallible(sha512.New))
}

// NewBLAKE2b256 creates a new unkeyed BLAKE2b-256 hash function.
func NewBLAKE2b256() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmBLAKE2b256, blake2b.Size256, func() (hash.Hash, error) {
		return blake2b.New256(nil)
	})
}

// NewBLAKE2b512 creates a new unkeyed BLAKE2b-512 hash function.
func NewBLAKE2b512() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmBLAKE2b512, blake2b.Size, func() (hash.Hash, error) {
		return blake2b.New512(nil)
	})
}

// NewSHA3_256 creates a new SHA3-256 hash function.
func NewSHA3_256() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmSHA3_256, 32, infallible(sha3.New256))
}

// NewSHA3_512 creates a new SHA3-512 hash function.
func NewSHA3_512() (*MessageDigestHasher, error) {
	return NewMessageDigestHasher(AlgorithmSHA3_512, 64, infallible(sha3.New512))
}

func infallible(newHash func() hash.Hash) HashFactoryFunc {
	return func() (hash.Hash, error) {
		return newHash(), nil
	}
}

// asFactory converts a concrete constructor into a hashengines.Factory,
// returning a nil interface rather than a typed nil on failure.
func asFactory(newHasher func() (*MessageDigestHasher, error)) hashengines.Factory {
	return func() (hashengines.HashFunction, error) {
		h, err := newHasher()
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}
