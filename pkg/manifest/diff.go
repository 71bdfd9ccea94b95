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

package manifest

// Diff represents the differences between two manifests: an actual one,
// computed from the resources on hand, and an expected one, usually parsed
// from a checksum file.
type Diff struct {
	// Extra contains names present in actual but not in expected.
	Extra []string

	// Missing contains names present in expected but not in actual.
	Missing []string

	// Mismatches contains names present in both with different digests.
	Mismatches []Mismatch
}

// Mismatch is a single name whose digests differ between manifests.
type Mismatch struct {
	Name     string
	Expected string
	Actual   string
}

// IsEmpty returns true if there are no differences.
func (d *Diff) IsEmpty() bool {
	return len(d.Extra) == 0 && len(d.Missing) == 0 && len(d.Mismatches) == 0
}

// ComputeDiff computes the differences between two manifests. Every slice
// of the result is sorted by name.
func ComputeDiff(actual, expected *Manifest) *Diff {
	diff := &Diff{
		Extra:      []string{},
		Missing:    []string{},
		Mismatches: []Mismatch{},
	}

	for _, name := range actual.Names() {
		want, ok := expected.Get(name)
		if !ok {
			diff.Extra = append(diff.Extra, name)
			continue
		}
		got, _ := actual.Get(name)
		if !got.Equal(want) {
			diff.Mismatches = append(diff.Mismatches, Mismatch{
				Name:     name,
				Expected: want.Hex(),
				Actual:   got.Hex(),
			})
		}
	}

	for _, name := range expected.Names() {
		if _, ok := actual.Get(name); !ok {
			diff.Missing = append(diff.Missing, name)
		}
	}
	return diff
}
