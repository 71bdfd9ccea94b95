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

// SectionHasher hashes a file as consecutive sections of sectionSize bytes,
// producing one digest per section. The last section may be shorter. A single
// tap reads the whole file; TakeDigest closes each section and starts the next.
type SectionHasher struct {
	path        string
	factory     hashengines.Factory
	sectionSize int64
	chunkSize   int
	logger      logging.Logger
}

// NewSectionHasher constructs a SectionHasher. sectionSize must be positive;
// chunkSize 0 means DefaultChunkSize.
func NewSectionHasher(path string, factory hashengines.Factory, sectionSize int64, chunkSize int) (*SectionHasher, error) {
	if path == "" {
		return nil, hasherr.InvalidArgument("NewSectionHasher", "file path must be non-empty")
	}
	if factory == nil {
		return nil, hasherr.InvalidArgument("NewSectionHasher", "factory cannot be nil")
	}
	if sectionSize <= 0 {
		return nil, hasherr.InvalidArgument("NewSectionHasher", "section size must be strictly positive, got %d", sectionSize)
	}
	if chunkSize < 0 {
		return nil, hasherr.InvalidArgument("NewSectionHasher", "chunk size must be non-negative, got %d", chunkSize)
	}
	return &SectionHasher{
		path:        path,
		factory:     factory,
		sectionSize: sectionSize,
		chunkSize:   chunkSize,
		logger:      logging.Discard(),
	}, nil
}

// WithLogger sets the logger used for per-section debug output.
func (h *SectionHasher) WithLogger(l logging.Logger) *SectionHasher {
	h.logger = logging.EnsureLogger(l)
	return h
}

// SectionSize returns the configured section length in bytes.
func (h *SectionHasher) SectionSize() int64 {
	return h.sectionSize
}

// Compute returns the digests of the file's sections in order. An empty file
// has a single section: the empty input.
func (h *SectionHasher) Compute(ctx context.Context) ([]digests.Digest, error) {
	var sections []digests.Digest
	attrs := map[string]interface{}{"path": h.path, "section_size": h.sectionSize}
	err := tracing.Run(ctx, "hashtap.HashSections", attrs, func(ctx context.Context) error {
		t, err := openFileTap(h.path, h.factory)
		if err != nil {
			return err
		}
		//nolint:errcheck
		defer t.Dispose()

		buf, err := chunkBuffer(h.chunkSize)
		if err != nil {
			return err
		}

		var offset int64
		for {
			n, eof, err := drain(ctx, t, buf, h.sectionSize)
			if err != nil {
				return fmt.Errorf("read file %q at offset %d: %w", h.path, offset+n, err)
			}
			if n == 0 && eof && len(sections) > 0 {
				return nil
			}

			d, err := t.TakeDigest()
			if err != nil {
				return err
			}
			h.logger.WithFields(map[string]interface{}{
				"path":    h.path,
				"section": len(sections),
				"offset":  offset,
				"bytes":   n,
			}).Debug("hashed section %s", d.Hex())

			sections = append(sections, d)
			offset += n
			if eof {
				return nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return sections, nil
}
