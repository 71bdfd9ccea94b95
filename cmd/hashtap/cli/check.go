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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/danschultequb/hashtap/cmd/hashtap/cli/options"
	"github.com/danschultequb/hashtap/pkg/config"
	"github.com/danschultequb/hashtap/pkg/logging"
	"github.com/danschultequb/hashtap/pkg/manifest"
	"github.com/danschultequb/hashtap/pkg/tracing"
)

// Check creates the check subcommand.
//
// Returns a *cobra.Command verifying the files listed in checksum manifests.
func Check() *cobra.Command {
	o := &options.CheckOptions{}

	long := `Verify the files listed in each checksum FILE.

A checksum file has one "HEX  NAME" line per file, as printed by
'hashtap digest'. Blank lines and lines starting with # are ignored. Names
are resolved against the current directory. With no FILE, or when FILE is -,
the list is read from standard input.

For each listed file, "NAME: OK", "NAME: FAILED" or "NAME: MISSING" is
printed. The command exits with status 2 if any file failed or is missing.`

	cmd := &cobra.Command{
		Use:   "check [OPTIONS] [FILE...]",
		Short: "Verify files against a checksum list.",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, o, args)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, o *options.CheckOptions, args []string) error {
	logger := ro.NewObservability(cmd.ErrOrStderr()).Logger
	cfg := o.HashingConfig().SetLogger(logger)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{stdinName}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
	defer cancel()

	attrs := map[string]interface{}{
		"hashtap.algorithm": cfg.Algorithm(),
		"hashtap.manifests": len(args),
	}
	return tracing.Run(ctx, "hashtap.Check", attrs, func(ctx context.Context) error {
		total := &CheckError{}
		for _, name := range args {
			expected, err := readManifest(cmd, name, cfg.Algorithm())
			if err != nil {
				return err
			}
			res, err := verifyManifest(ctx, cmd.OutOrStdout(), cfg, expected, o, logger)
			if err != nil {
				return err
			}
			total.Mismatched += res.Mismatched
			total.Missing += res.Missing
		}
		if total.Mismatched > 0 || total.Missing > 0 {
			return total
		}
		return nil
	})
}

func readManifest(cmd *cobra.Command, name, algorithm string) (*manifest.Manifest, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != stdinName {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open checksum file: %w", err)
		}
		//nolint:errcheck
		defer f.Close()
		r = f
	}

	m, err := manifest.Parse(r, algorithm)
	if err != nil {
		return nil, fmt.Errorf("read checksum file %s: %w", name, err)
	}
	return m, nil
}

// verifyManifest hashes every file listed in expected and prints one status
// line per entry.
func verifyManifest(ctx context.Context, out io.Writer, cfg *config.HashingConfig, expected *manifest.Manifest,
	o *options.CheckOptions, logger logging.Logger) (*CheckError, error) {
	var present []string
	for _, path := range expected.Names() {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		present = append(present, path)
	}

	results, err := cfg.HashFiles(ctx, present)
	if err != nil {
		return nil, err
	}
	actual := manifest.NewManifest(expected.Algorithm())
	for _, fd := range results {
		actual.Add(fd.Path, fd.Digests[0])
	}

	diff := manifest.ComputeDiff(actual, expected)
	failed := make(map[string]bool, len(diff.Mismatches))
	for _, m := range diff.Mismatches {
		failed[m.Name] = true
		logger.WithFields(map[string]interface{}{"expected": m.Expected, "actual": m.Actual}).Debug("%s mismatch", m.Name)
	}
	missing := make(map[string]bool, len(diff.Missing))
	for _, name := range diff.Missing {
		missing[name] = true
	}

	res := &CheckError{Mismatched: len(diff.Mismatches)}
	for _, path := range expected.Names() {
		var status string
		switch {
		case failed[path]:
			status = "FAILED"
		case missing[path]:
			if o.IgnoreMissing {
				continue
			}
			res.Missing++
			status = "MISSING"
		case o.Quiet:
			continue
		default:
			status = "OK"
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", path, status); err != nil {
			return nil, err
		}
	}
	return res, nil
}
