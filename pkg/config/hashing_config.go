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

// Package config holds the hashing settings shared by the hashtap commands
// and turns them into file hashers.
package config

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	hashio "github.com/danschultequb/hashtap/pkg/hashing/engines/io"
	"github.com/danschultequb/hashtap/pkg/hashing/engines/memory"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/logging"
)

// Defaults for NewHashingConfig.
const (
	DefaultAlgorithm = memory.AlgorithmSHA256
	DefaultChunkSize = hashio.DefaultChunkSize
)

// HashingConfig determines how files are hashed: which algorithm, how large
// each read is and whether files are split into sections.
type HashingConfig struct {
	// Algorithm name, resolved through the hashengines registry.
	algorithm string

	// Bytes per read (0 = hashio.DefaultChunkSize).
	chunkSize int

	// Section length in bytes (0 = hash each file as a whole).
	sectionSize int64

	// Files hashed at once by HashFiles.
	concurrency int

	logger logging.Logger
}

// FileDigests is the result of hashing one file. Digests holds a single
// entry unless sections are enabled.
type FileDigests struct {
	Path    string
	Digests []digests.Digest
}

// NewHashingConfig creates a configuration with defaults: SHA-256, 8 KiB
// chunks, whole-file digests and one file in flight per available CPU.
//
// Returns a HashingConfig ready for customization via method chaining.
func NewHashingConfig() *HashingConfig {
	return &HashingConfig{
		algorithm:   DefaultAlgorithm,
		chunkSize:   DefaultChunkSize,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logging.Discard(),
	}
}

// SetAlgorithm sets the digest algorithm by name. Any spelling the registry
// accepts is allowed ("SHA-256", "sha256", ...).
func (c *HashingConfig) SetAlgorithm(name string) *HashingConfig {
	c.algorithm = name
	return c
}

// SetChunkSize sets the number of bytes read per call.
func (c *HashingConfig) SetChunkSize(size int) *HashingConfig {
	c.chunkSize = size
	return c
}

// SetSectionSize enables per-section digests of size bytes. 0 disables them.
func (c *HashingConfig) SetSectionSize(size int64) *HashingConfig {
	c.sectionSize = size
	return c
}

// SetConcurrency sets how many files HashFiles hashes at once. Values below
// 1 are rejected by Validate.
func (c *HashingConfig) SetConcurrency(n int) *HashingConfig {
	c.concurrency = n
	return c
}

// SetLogger sets the logger handed to the file hashers.
func (c *HashingConfig) SetLogger(l logging.Logger) *HashingConfig {
	c.logger = logging.EnsureLogger(l)
	return c
}

// Algorithm returns the canonical name of the configured algorithm, or the
// name as given when it is not registered.
func (c *HashingConfig) Algorithm() string {
	if name, ok := hashengines.CanonicalName(c.algorithm); ok {
		return name
	}
	return c.algorithm
}

// ChunkSize returns the configured chunk size.
func (c *HashingConfig) ChunkSize() int {
	return c.chunkSize
}

// SectionSize returns the configured section size.
func (c *HashingConfig) SectionSize() int64 {
	return c.sectionSize
}

// Concurrency returns the number of files HashFiles hashes at once.
func (c *HashingConfig) Concurrency() int {
	return c.concurrency
}

// Validate checks that the algorithm is registered and sizes are not negative.
func (c *HashingConfig) Validate() error {
	if _, err := hashengines.Lookup(c.algorithm); err != nil {
		return err
	}
	if c.chunkSize < 0 {
		return hasherr.InvalidArgument("Validate", "chunk size must be non-negative, got %d", c.chunkSize)
	}
	if c.sectionSize < 0 {
		return hasherr.InvalidArgument("Validate", "section size must be non-negative, got %d", c.sectionSize)
	}
	if c.concurrency < 1 {
		return hasherr.InvalidArgument("Validate", "concurrency must be at least 1, got %d", c.concurrency)
	}
	return nil
}

// Factory returns the hash function factory for the configured algorithm.
func (c *HashingConfig) Factory() (hashengines.Factory, error) {
	return hashengines.Lookup(c.algorithm)
}

// HashFile hashes one file according to the configuration.
func (c *HashingConfig) HashFile(ctx context.Context, path string) (FileDigests, error) {
	factory, err := c.Factory()
	if err != nil {
		return FileDigests{}, err
	}

	if c.sectionSize > 0 {
		h, err := hashio.NewSectionHasher(path, factory, c.sectionSize, c.chunkSize)
		if err != nil {
			return FileDigests{}, err
		}
		sections, err := h.WithLogger(c.logger).Compute(ctx)
		if err != nil {
			return FileDigests{}, err
		}
		return FileDigests{Path: path, Digests: sections}, nil
	}

	h, err := hashio.NewSimpleFileHasher(path, factory, c.chunkSize)
	if err != nil {
		return FileDigests{}, err
	}
	d, err := h.WithLogger(c.logger).Compute(ctx)
	if err != nil {
		return FileDigests{}, err
	}
	return FileDigests{Path: path, Digests: []digests.Digest{d}}, nil
}

// HashFiles validates the configuration and hashes paths with up to
// Concurrency files in flight. Results are in the order of paths. The first
// failure cancels the remaining work and is returned alone.
func (c *HashingConfig) HashFiles(ctx context.Context, paths []string) ([]FileDigests, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hashing configuration: %w", err)
	}

	results := make([]FileDigests, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fd, err := c.HashFile(ctx, path)
			if err != nil {
				return fmt.Errorf("hash %q: %w", path, err)
			}
			c.logger.WithField("path", path).Debug("hashed %d section(s) with %s", len(fd.Digests), c.Algorithm())
			results[i] = fd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
