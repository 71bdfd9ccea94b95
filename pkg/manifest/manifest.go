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

// Package manifest provides checksum manifests: lists pairing resource
// names with the digests computed for them, in the "HEX  NAME" line format
// printed by the digest command.
package manifest

import (
	"sort"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
)

// Entry pairs a resource name with its digest.
type Entry struct {
	// Name identifies the resource, usually a file path. Names are unique
	// within a manifest.
	Name string

	// Digest is the message digest of the resource.
	Digest digests.Digest
}

// Manifest maps resource names to digests produced by a single algorithm.
type Manifest struct {
	algorithm string
	items     map[string]digests.Digest
}

// NewManifest builds a manifest for algorithm from entries. A later entry
// replaces an earlier one with the same name.
func NewManifest(algorithm string, entries ...Entry) *Manifest {
	m := &Manifest{
		algorithm: algorithm,
		items:     make(map[string]digests.Digest, len(entries)),
	}
	for _, e := range entries {
		m.Add(e.Name, e.Digest)
	}
	return m
}

// Algorithm returns the algorithm name the manifest was built for.
func (m *Manifest) Algorithm() string {
	return m.algorithm
}

// Add records d as the digest of name, replacing any previous value.
func (m *Manifest) Add(name string, d digests.Digest) {
	m.items[name] = d
}

// Get returns the digest recorded for name.
func (m *Manifest) Get(name string) (digests.Digest, bool) {
	d, ok := m.items[name]
	return d, ok
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.items)
}

// Equal reports whether two manifests have the same names and digests.
//
// The algorithm name is not compared; digests are compared with
// digests.Digest.Equal.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if len(m.items) != len(other.items) {
		return false
	}

	for name, d := range m.items {
		otherDigest, ok := other.items[name]
		if !ok || !d.Equal(otherDigest) {
			return false
		}
	}
	return true
}

// Names returns the entry names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns every entry, sorted by name.
func (m *Manifest) Entries() []Entry {
	names := m.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Digest: m.items[name]})
	}
	return entries
}
