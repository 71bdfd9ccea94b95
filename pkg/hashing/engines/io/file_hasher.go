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

// Package io hashes files and byte streams by draining them through hashing
// taps. It is the I/O layer on top of pkg/hashing/tap: nothing here computes
// digests directly.
package io

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/hashing/tap"
	"github.com/danschultequb/hashtap/pkg/stream"
)

// DefaultChunkSize is the read buffer size used when a chunk size of 0 is given.
const DefaultChunkSize = 8192

// FileHasher computes the digest of a file.
type FileHasher interface {
	Compute(ctx context.Context) (digests.Digest, error)
}

// readerOnly hides any Close method, so disposing the wrapping stream leaves
// the caller's reader open.
type readerOnly struct {
	io.Reader
}

// writerOnly hides any Close method of the wrapped writer.
type writerOnly struct {
	io.Writer
}

// HashReader drains r through a read tap and returns the digest together with
// the number of bytes read. r is not closed.
func HashReader(ctx context.Context, r io.Reader, factory hashengines.Factory, chunkSize int) (digests.Digest, int64, error) {
	if r == nil {
		return digests.Digest{}, 0, hasherr.InvalidArgument("HashReader", "reader cannot be nil")
	}
	src, err := stream.NewReaderStream(readerOnly{r})
	if err != nil {
		return digests.Digest{}, 0, err
	}
	t, err := tap.NewReadTapFunc(src, factory)
	if err != nil {
		return digests.Digest{}, 0, err
	}
	//nolint:errcheck
	defer t.Dispose()

	return drainAll(ctx, t, chunkSize)
}

func drainAll(ctx context.Context, t *tap.ReadTap, chunkSize int) (digests.Digest, int64, error) {
	buf, err := chunkBuffer(chunkSize)
	if err != nil {
		return digests.Digest{}, 0, err
	}
	n, _, err := drain(ctx, t, buf, -1)
	if err != nil {
		return digests.Digest{}, n, err
	}
	d, err := t.TakeDigest()
	return d, n, err
}

// openFileTap opens path and wraps it in a read tap that owns the file.
func openFileTap(path string, factory hashengines.Factory) (*tap.ReadTap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %q: %w", path, err)
	}
	src, err := stream.NewReaderStream(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	t, err := tap.NewReadTapFunc(src, factory)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return t, nil
}

// drain reads from r into buf until end of stream or, when limit is not
// negative, until limit bytes have been read. It reports the byte count and
// whether end of stream was reached. ctx is checked before every chunk.
func drain(ctx context.Context, r stream.ByteReadStream, buf []byte, limit int64) (int64, bool, error) {
	var total int64
	for limit < 0 || total < limit {
		if err := ctx.Err(); err != nil {
			return total, false, err
		}

		want := len(buf)
		if limit >= 0 && int64(want) > limit-total {
			want = int(limit - total)
		}

		n, err := r.ReadRange(buf, 0, want)
		total += int64(n)
		if errors.Is(err, io.EOF) {
			return total, true, nil
		}
		if err != nil {
			return total, false, err
		}
	}
	return total, false, nil
}

func chunkBuffer(chunkSize int) ([]byte, error) {
	if chunkSize < 0 {
		return nil, hasherr.InvalidArgument("chunkBuffer", "chunk size must be non-negative, got %d", chunkSize)
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return make([]byte, chunkSize), nil
}
