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
	"fmt"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
)

// ExitCodeMismatch is the process exit code for a failed --expect check.
const ExitCodeMismatch = 2

// MismatchError reports an input whose digest differs from the expected one.
type MismatchError struct {
	Name     string
	Expected digests.Digest
	Actual   digests.Digest
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("digest mismatch for %s: expected %s, got %s", e.Name, e.Expected.Hex(), e.Actual.Hex())
}

// ExitCode implements the ExitCoder interface used by main.
func (e *MismatchError) ExitCode() int {
	return ExitCodeMismatch
}

// checkExpected compares actual against the --expect value, if any.
func checkExpected(name, expect string, actual digests.Digest) error {
	if expect == "" {
		return nil
	}
	want, err := digests.ParseHex(actual.Algorithm(), expect)
	if err != nil {
		return fmt.Errorf("invalid --expect value: %w", err)
	}
	if !want.Equal(actual) {
		return &MismatchError{Name: name, Expected: want, Actual: actual}
	}
	return nil
}

// CheckError reports a checksum manifest that did not verify.
type CheckError struct {
	Mismatched int
	Missing    int
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%d computed checksum(s) did not match, %d listed file(s) missing", e.Mismatched, e.Missing)
}

// ExitCode implements the ExitCoder interface used by main.
func (e *CheckError) ExitCode() int {
	return ExitCodeMismatch
}
