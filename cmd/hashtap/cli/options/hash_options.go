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

package options

import (
	"github.com/spf13/cobra"

	"github.com/danschultequb/hashtap/pkg/config"
	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
)

// FlagAdder is implemented by any flag group that can register itself to a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// HashFlags selects the digest algorithm and the read size.
type HashFlags struct {
	// Algorithm is any registered algorithm name.
	Algorithm string
	// ChunkSize is the number of bytes read per call.
	ChunkSize int
}

// AddFlags adds the algorithm and chunk size flags.
func (o *HashFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", config.DefaultAlgorithm,
		"digest algorithm (see 'hashtap algorithms')")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return hashengines.SupportedAlgorithms(), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", config.DefaultChunkSize,
		"number of bytes read per call")
}

// ExpectFlags holds the digest an input is expected to have.
type ExpectFlags struct {
	// Expect is a hex digest, upper- or lowercase. Empty disables the check.
	Expect string
}

// AddFlags adds the --expect flag.
func (o *ExpectFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Expect, "expect", "",
		"fail with exit code 2 unless the digest equals this hex value")
}

// DigestOptions is the flag set of the digest command.
type DigestOptions struct {
	HashFlags
	ExpectFlags
	// SectionSize splits each file into sections of this many bytes.
	SectionSize int64
}

var _ FlagAdder = (*DigestOptions)(nil)

// AddFlags adds the digest flags to the cobra command.
func (o *DigestOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.HashFlags, &o.ExpectFlags)
	cmd.Flags().Int64Var(&o.SectionSize, "section-size", 0,
		"print one digest per section of this many bytes (0 = whole file)")
	cmd.MarkFlagsMutuallyExclusive("expect", "section-size")
}

// HashingConfig converts the flags into a config.HashingConfig.
func (o *DigestOptions) HashingConfig() *config.HashingConfig {
	return config.NewHashingConfig().
		SetAlgorithm(o.Algorithm).
		SetChunkSize(o.ChunkSize).
		SetSectionSize(o.SectionSize)
}

// CopyOptions is the flag set of the copy command.
type CopyOptions struct {
	HashFlags
	ExpectFlags
}

var _ FlagAdder = (*CopyOptions)(nil)

// AddFlags adds the copy flags to the cobra command.
func (o *CopyOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.HashFlags, &o.ExpectFlags)
}

// HashingConfig converts the flags into a config.HashingConfig.
func (o *CopyOptions) HashingConfig() *config.HashingConfig {
	return config.NewHashingConfig().
		SetAlgorithm(o.Algorithm).
		SetChunkSize(o.ChunkSize)
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}

// CheckOptions is the flag set of the check command.
type CheckOptions struct {
	HashFlags
	// Quiet suppresses the line printed for each matching file.
	Quiet bool
	// IgnoreMissing skips entries whose file does not exist.
	IgnoreMissing bool
	// Jobs is the number of files hashed at once (0 = one per CPU).
	Jobs int
}

var _ FlagAdder = (*CheckOptions)(nil)

// AddFlags adds the check flags to the cobra command.
func (o *CheckOptions) AddFlags(cmd *cobra.Command) {
	o.HashFlags.AddFlags(cmd)
	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false,
		"do not print OK for each verified file")
	cmd.Flags().BoolVar(&o.IgnoreMissing, "ignore-missing", false,
		"do not fail or report for missing files")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 0,
		"number of files hashed at once (0 = one per CPU)")
}

// HashingConfig converts the flags into a config.HashingConfig.
func (o *CheckOptions) HashingConfig() *config.HashingConfig {
	cfg := config.NewHashingConfig().
		SetAlgorithm(o.Algorithm).
		SetChunkSize(o.ChunkSize)
	if o.Jobs != 0 {
		cfg.SetConcurrency(o.Jobs)
	}
	return cfg
}
