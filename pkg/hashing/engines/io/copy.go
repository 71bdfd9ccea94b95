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
	"errors"
	"fmt"
	"io"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/danschultequb/hashtap/pkg/hashing/tap"
	"github.com/danschultequb/hashtap/pkg/stream"
	"github.com/danschultequb/hashtap/pkg/tracing"
)

// CopyResult is the outcome of CopyAndHash.
type CopyResult struct {
	// Read is the digest of the bytes read from the source.
	Read digests.Digest
	// Written is the digest of the bytes the destination accepted.
	Written digests.Digest
	// Bytes is the number of bytes copied.
	Bytes int64
}

// CopyAndHash copies src to dst through a read tap and a write tap, hashing
// both sides in the same pass. Neither src nor dst is closed. When both
// factories produce the same algorithm, Read and Written are equal for any
// successful copy.
func CopyAndHash(ctx context.Context, dst io.Writer, src io.Reader, readFactory, writeFactory hashengines.Factory, chunkSize int) (CopyResult, error) {
	if dst == nil {
		return CopyResult{}, hasherr.InvalidArgument("CopyAndHash", "destination cannot be nil")
	}
	if src == nil {
		return CopyResult{}, hasherr.InvalidArgument("CopyAndHash", "source cannot be nil")
	}
	buf, err := chunkBuffer(chunkSize)
	if err != nil {
		return CopyResult{}, err
	}

	var result CopyResult
	err = tracing.Run(ctx, "hashtap.Copy", map[string]interface{}{"chunk_size": len(buf)}, func(ctx context.Context) error {
		in, err := stream.NewReaderStream(readerOnly{src})
		if err != nil {
			return err
		}
		rt, err := tap.NewReadTapFunc(in, readFactory)
		if err != nil {
			return err
		}
		//nolint:errcheck
		defer rt.Dispose()

		out, err := stream.NewWriterStream(writerOnly{dst})
		if err != nil {
			return err
		}
		wt, err := tap.NewWriteTapFunc(out, writeFactory)
		if err != nil {
			return err
		}
		//nolint:errcheck
		defer wt.Dispose()

		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, rerr := rt.Read(buf)
			if n > 0 {
				if err := writeFull(wt, buf[:n]); err != nil {
					return fmt.Errorf("write destination after %d bytes: %w", result.Bytes, err)
				}
				result.Bytes += int64(n)
			}
			if errors.Is(rerr, io.EOF) {
				break
			}
			if rerr != nil {
				return fmt.Errorf("read source after %d bytes: %w", result.Bytes, rerr)
			}
		}

		if result.Read, err = rt.TakeDigest(); err != nil {
			return err
		}
		result.Written, err = wt.TakeDigest()
		return err
	})
	if err != nil {
		return CopyResult{}, err
	}
	return result, nil
}

// writeFull writes all of p using WriteRange, retrying after short writes
// that made progress.
func writeFull(w stream.ByteWriteStream, p []byte) error {
	for off := 0; off < len(p); {
		n, err := w.WriteRange(p, off, len(p)-off)
		off += n
		if err != nil && !(errors.Is(err, io.ErrShortWrite) && n > 0) {
			return err
		}
		if n == 0 && err == nil {
			return io.ErrShortWrite
		}
	}
	return nil
}
