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

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/danschultequb/hashtap/pkg/hashing/digests"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

// binaryMarker may precede a name to flag a file hashed in binary mode.
// Hashing is always binary, so the marker is accepted and ignored.
const binaryMarker = '*'

// Parse reads a manifest in the "HEX  NAME" line format.
//
// Each line holds a hex digest, a space, an optional second space or '*',
// and the name. Blank lines and lines starting with '#' are skipped. Every
// digest is tagged with algorithm and all of them must have the same length.
func Parse(r io.Reader, algorithm string) (*Manifest, error) {
	m := NewManifest(algorithm)
	size := -1

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line, algorithm)
		if err != nil {
			return nil, hasherr.InvalidArgument("Parse", "line %d: %v", lineNo, err)
		}
		if _, dup := m.Get(entry.Name); dup {
			return nil, hasherr.InvalidArgument("Parse", "line %d: duplicate entry for %q", lineNo, entry.Name)
		}
		if size >= 0 && entry.Digest.Size() != size {
			return nil, hasherr.InvalidArgument("Parse", "line %d: digest is %d bytes, previous entries are %d",
				lineNo, entry.Digest.Size(), size)
		}
		size = entry.Digest.Size()
		m.Add(entry.Name, entry.Digest)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return m, nil
}

func parseLine(line, algorithm string) (Entry, error) {
	i := strings.IndexByte(line, ' ')
	if i <= 0 {
		return Entry{}, fmt.Errorf("expected \"HEX  NAME\", got %q", line)
	}

	name := line[i+1:]
	if name != "" && (name[0] == ' ' || name[0] == binaryMarker) {
		name = name[1:]
	}
	if name == "" {
		return Entry{}, fmt.Errorf("missing name after digest")
	}

	d, err := digests.ParseHex(algorithm, line[:i])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Digest: d}, nil
}

// Write writes m in the format read by Parse, one line per entry sorted by
// name.
func Write(w io.Writer, m *Manifest) error {
	bw := bufio.NewWriter(w)
	for _, e := range m.Entries() {
		if strings.ContainsAny(e.Name, "\r\n") {
			return hasherr.InvalidArgument("Write", "name %q contains a line break", e.Name)
		}
		if _, err := fmt.Fprintf(bw, "%s  %s\n", e.Digest.Hex(), e.Name); err != nil {
			return err
		}
	}
	return bw.Flush()
}
