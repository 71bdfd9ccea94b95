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

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danschultequb/hashtap/cmd/hashtap/cli/options"
	hashio "github.com/danschultequb/hashtap/pkg/hashing/engines/io"
	"github.com/danschultequb/hashtap/pkg/tracing"
	"github.com/danschultequb/hashtap/pkg/utils"
)

// Copy creates the copy subcommand.
//
// Returns a *cobra.Command that copies SRC to DST and prints the digest.
func Copy() *cobra.Command {
	o := &options.CopyOptions{}

	long := `Copy SRC to DST, hashing the bytes read and the bytes written.

Both sides are hashed in the same pass, without buffering the content.
Either SRC or DST may be - for standard input or standard output; in that
case the digest line is written to standard error so it does not mix with the
copied data. With --expect, the command exits with status 2 if the digest
differs; DST is still written.`

	cmd := &cobra.Command{
		Use:   "copy [OPTIONS] SRC DST",
		Short: "Copy a file while computing its digest.",
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd, o, args[0], args[1])
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runCopy(cmd *cobra.Command, o *options.CopyOptions, srcName, dstName string) error {
	logger := ro.NewObservability(cmd.ErrOrStderr()).Logger
	cfg := o.HashingConfig().SetLogger(logger)
	if err := cfg.Validate(); err != nil {
		return err
	}
	factory, err := cfg.Factory()
	if err != nil {
		return err
	}

	report := cmd.OutOrStdout()
	if dstName == stdinName {
		report = cmd.ErrOrStderr()
	}

	src := cmd.InOrStdin()
	if srcName != stdinName {
		if err := utils.ValidateFileExists("SRC", srcName); err != nil {
			return err
		}
		f, err := os.Open(srcName)
		if err != nil {
			return fmt.Errorf("open %s: %w", srcName, err)
		}
		//nolint:errcheck
		defer f.Close()
		src = f
	}

	var dst io.Writer = cmd.OutOrStdout()
	var dstFile *os.File
	if dstName != stdinName {
		dstFile, err = os.Create(dstName)
		if err != nil {
			return fmt.Errorf("create %s: %w", dstName, err)
		}
		//nolint:errcheck
		defer dstFile.Close()
		dst = dstFile
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
	defer cancel()

	attrs := map[string]interface{}{
		"hashtap.algorithm": cfg.Algorithm(),
		"hashtap.src":       srcName,
		"hashtap.dst":       dstName,
	}
	return tracing.Run(ctx, "hashtap.CopyCommand", attrs, func(ctx context.Context) error {
		res, err := hashio.CopyAndHash(ctx, dst, src, factory, factory, cfg.ChunkSize())
		if err != nil {
			return fmt.Errorf("copy %s to %s: %w", srcName, dstName, err)
		}
		if dstFile != nil {
			if err := dstFile.Sync(); err != nil {
				return fmt.Errorf("sync %s: %w", dstName, err)
			}
		}
		if !res.Read.Equal(res.Written) {
			return fmt.Errorf("copy %s to %s: read digest %s differs from written digest %s", srcName, dstName, res.Read.Hex(), res.Written.Hex())
		}

		logger.WithFields(map[string]interface{}{"src": srcName, "dst": dstName, "bytes": res.Bytes}).Debugln("copied")
		if _, err := fmt.Fprintf(report, "%s  %s -> %s\n", res.Read.Hex(), srcName, dstName); err != nil {
			return err
		}
		return checkExpected(srcName, o.Expect, res.Read)
	})
}
