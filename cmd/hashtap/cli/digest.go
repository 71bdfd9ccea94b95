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
	"strings"

	"github.com/spf13/cobra"

	"github.com/danschultequb/hashtap/cmd/hashtap/cli/options"
	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	hashio "github.com/danschultequb/hashtap/pkg/hashing/engines/io"
	"github.com/danschultequb/hashtap/pkg/tracing"
	"github.com/danschultequb/hashtap/pkg/utils"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// Digest creates the digest subcommand.
//
// Returns a *cobra.Command printing one "HEX  NAME" line per input.
func Digest() *cobra.Command {
	o := &options.DigestOptions{}

	long := `Print the digest of each FILE, or of standard input.

With no FILE, or when FILE is -, standard input is read. The algorithm is
chosen with --algorithm; names are case-insensitive and ignore '-', '_' and
spaces, so SHA-256, sha256 and Sha_256 are equivalent.

With --section-size, each file is split into consecutive sections of that
many bytes and one line is printed per section, as "HEX  FILE:INDEX".

With --expect, the command exits with status 2 if any digest differs.`

	cmd := &cobra.Command{
		Use:   "digest [OPTIONS] [FILE...]",
		Short: "Print the digest of files or standard input.",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, o, args)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runDigest(cmd *cobra.Command, o *options.DigestOptions, args []string) error {
	logger := ro.NewObservability(cmd.ErrOrStderr()).Logger
	cfg := o.HashingConfig().SetLogger(logger)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{stdinName}
	}

	var files []string
	for _, a := range args {
		if a != stdinName {
			files = append(files, a)
		}
	}
	if err := utils.ValidateMultipleFiles("FILE", files); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
	defer cancel()

	attrs := map[string]interface{}{
		"hashtap.algorithm":    cfg.Algorithm(),
		"hashtap.inputs":       len(args),
		"hashtap.section_size": cfg.SectionSize(),
	}
	return tracing.Run(ctx, "hashtap.Digest", attrs, func(ctx context.Context) error {
		out := cmd.OutOrStdout()
		for _, name := range args {
			var sections []digests.Digest
			if name == stdinName {
				factory, err := cfg.Factory()
				if err != nil {
					return err
				}
				d, n, err := hashio.HashReader(ctx, cmd.InOrStdin(), factory, cfg.ChunkSize())
				if err != nil {
					return fmt.Errorf("hash standard input: %w", err)
				}
				logger.WithField("bytes", n).Debugln("hashed standard input")
				sections = []digests.Digest{d}
			} else {
				fd, err := cfg.HashFile(ctx, name)
				if err != nil {
					return err
				}
				sections = fd.Digests
			}

			if err := printDigests(out, name, sections, cfg.SectionSize() > 0); err != nil {
				return err
			}
			if err := checkExpected(name, o.Expect, sections[0]); err != nil {
				return err
			}
			logger.WithField("path", name).Debug("%s %s", cfg.Algorithm(), sections[0].Hex())
		}
		return nil
	})
}

func printDigests(w io.Writer, name string, sections []digests.Digest, indexed bool) error {
	var b strings.Builder
	for i, d := range sections {
		if indexed {
			fmt.Fprintf(&b, "%s  %s:%d\n", d.Hex(), name, i)
		} else {
			fmt.Fprintf(&b, "%s  %s\n", d.Hex(), name)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
