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

package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		p       []byte
		start   int
		length  int
		wantErr string
	}{
		{"nil buffer", nil, 0, 1, "p cannot be nil"},
		{"empty buffer start past end", []byte{}, 1, 0, "start (1) must be between 0 and 0"},
		{"negative start", []byte{1, 2, 3}, -1, 0, "start (-1) must be between 0 and 3"},
		{"start past end", []byte{1, 2, 3}, 4, 0, "start (4) must be between 0 and 3"},
		{"negative length", []byte{1, 2, 3}, 1, -1, "length (-1) must be between 0 and 2"},
		{"length past end", []byte{1, 2, 3}, 1, 3, "length (3) must be between 0 and 2"},
		{"empty buffer", []byte{}, 0, 0, ""},
		{"whole buffer", []byte{1, 2, 3}, 0, 3, ""},
		{"interior", []byte{0, 1, 2, 3, 4}, 1, 3, ""},
		{"start at end with zero length", []byte{1, 2, 3}, 3, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("FeedRange", "p", tt.p, tt.start, tt.length)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateRange() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateRange() error = nil, want %q", tt.wantErr)
			}
			if !errors.Is(err, hasherr.ErrInvalidArgument) {
				t.Errorf("ValidateRange() error = %v, want invalid argument", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateRange() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("SetChunkSize", "chunk size", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) error = %v", err)
	}
	err := ValidateNonNegative("SetChunkSize", "chunk size", -5)
	if !errors.Is(err, hasherr.ErrInvalidArgument) {
		t.Errorf("ValidateNonNegative(-5) error = %v, want invalid argument", err)
	}
}

func TestValidateFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "payload.bin")
	if err := os.WriteFile(file, []byte("test"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid file", file, false},
		{"empty path", "", true},
		{"non-existent file", filepath.Join(tmpDir, "missing.bin"), true},
		{"directory instead of file", tmpDir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileExists("input", tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileExists() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMultipleFiles(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "file1.txt")
	file2 := filepath.Join(tmpDir, "file2.txt")
	for _, f := range []string{file1, file2} {
		if err := os.WriteFile(f, []byte("test"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", f, err)
		}
	}

	tests := []struct {
		name    string
		paths   []string
		wantErr bool
	}{
		{"all valid files", []string{file1, file2}, false},
		{"empty path in slice", []string{file1, "", file2}, true},
		{"non-existent file", []string{file1, filepath.Join(tmpDir, "nope")}, true},
		{"empty slice", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMultipleFiles("files", tt.paths)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMultipleFiles() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
