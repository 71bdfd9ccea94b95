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

package io

import (
	"context"
	"fmt"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/logging"
	"github.com/danschultequb/hashtap/pkg/tracing"
)

var _ FileHasher = (*SimpleFileHasher)(nil)

// SimpleFileHasher hashes an entire file in a single pass, reading it in
// chunkSize pieces through a read tap.
type SimpleFileHasher struct {
	path      string
	factory   hashengines.Factory
	chunkSize int
	logger    logging.Logger
}

// NewSimpleFileHasher constructs a SimpleFileHasher.
//
//   - path: file to hash
//   - factory: creates the hash function; one is created per Compute call
//   - chunkSize: bytes read per call; 0 means DefaultChunkSize
func NewSimpleFileHasher(path string, factory hashengines.Factory, chunkSize int) (*SimpleFileHasher, error) {
	if path == "" {
		return nil, hasherr.InvalidArgument("NewSimpleFileHasher", "file path must be non-empty")
	}
	if factory == nil {
		return nil, hasherr.InvalidArgument("NewSimpleFileHasher", "factory cannot be nil")
	}
	if chunkSize < 0 {
		return nil, hasherr.InvalidArgument("NewSimpleFileHasher", "chunk size must be non-negative, got %d", chunkSize)
	}
	return &SimpleFileHasher{
		path:      path,
		factory:   factory,
		chunkSize: chunkSize,
		logger:    logging.Discard(),
	}, nil
}

// WithLogger sets the logger used for debug output.
func (h *SimpleFileHasher) WithLogger(l logging.Logger) *SimpleFileHasher {
	h.logger = logging.EnsureLogger(l)
	return h
}

// Path returns the file this hasher reads.
func (h *SimpleFileHasher) Path() string {
	return h.path
}

// Compute hashes the file. The file is closed before Compute returns.
func (h *SimpleFileHasher) Compute(ctx context.Context) (digests.Digest, error) {
	var result digests.Digest
	attrs := map[string]interface{}{"path": h.path, "chunk_size": h.chunkSize}
	err := tracing.Run(ctx, "hashtap.HashFile", attrs, func(ctx context.Context) error {
		t, err := openFileTap(h.path, h.factory)
		if err != nil {
			return err
		}
		//nolint:errcheck
		defer t.Dispose()

		d, n, err := drainAll(ctx, t, h.chunkSize)
		if err != nil {
			return fmt.Errorf("read file %q: %w", h.path, err)
		}
		h.logger.WithFields(map[string]interface{}{"path": h.path, "bytes": n}).Debug("hashed file with %s", t.Algorithm())
		result = d
		return nil
	})
	return result, err
}
