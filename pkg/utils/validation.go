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

// Package utils holds argument validation shared by hashers, streams and the CLI.
package utils

import (
	"fmt"
	"os"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

// ValidateRange checks that p[start:start+length] is a valid sub-range of p.
//
// p must be non-nil, start and length non-negative, and start+length must not
// exceed len(p). start may equal len(p) only when length is 0.
// Failures are reported as hasherr.ErrTypeInvalidArgument attributed to op.
func ValidateRange(op, name string, p []byte, start, length int) error {
	if p == nil {
		return hasherr.InvalidArgument(op, "%s cannot be nil", name)
	}
	if start < 0 || start > len(p) {
		return hasherr.InvalidArgument(op, "start (%d) must be between 0 and %d", start, len(p))
	}
	if length < 0 || length > len(p)-start {
		return hasherr.InvalidArgument(op, "length (%d) must be between 0 and %d", length, len(p)-start)
	}
	return nil
}

// ValidateNonNegative rejects negative size-like settings such as chunk sizes.
func ValidateNonNegative(op, name string, value int64) error {
	if value < 0 {
		return hasherr.InvalidArgument(op, "%s must be non-negative, got %d", name, value)
	}
	return nil
}

// PathType represents the type of path to validate.
type PathType int

const (
	// PathTypeFile expects a regular file.
	PathTypeFile PathType = iota
	// PathTypeFolder expects a directory.
	PathTypeFolder
	// PathTypeAny accepts either file or directory.
	PathTypeAny
)

// PathValidator checks that a named path exists and has the expected type.
type PathValidator struct {
	fieldName string
	path      string
	pathType  PathType
}

// NewPathValidator creates a new path validator with the specified field name, path, and expected type.
func NewPathValidator(fieldName, path string, pathType PathType) *PathValidator {
	return &PathValidator{
		fieldName: fieldName,
		path:      path,
		pathType:  pathType,
	}
}

// Validate checks that the path is not empty, exists, and matches the expected type.
func (v *PathValidator) Validate() error {
	if v.path == "" {
		return fmt.Errorf("%s is required", v.fieldName)
	}

	info, err := os.Stat(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %q does not exist", v.fieldName, v.path)
		}
		return fmt.Errorf("checking %s %q: %w", v.fieldName, v.path, err)
	}

	switch v.pathType {
	case PathTypeFile:
		if info.IsDir() {
			return fmt.Errorf("%s %q is a directory, expected file", v.fieldName, v.path)
		}
	case PathTypeFolder:
		if !info.IsDir() {
			return fmt.Errorf("%s %q is a file, expected directory", v.fieldName, v.path)
		}
	case PathTypeAny:
	}

	return nil
}

// ValidateFileExists validates that a path exists and is a file.
func ValidateFileExists(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFile).Validate()
}

// ValidateMultipleFiles validates every path in paths as an existing file,
// returning the first failure.
func ValidateMultipleFiles(fieldName string, paths []string) error {
	for i, path := range paths {
		if path == "" {
			return fmt.Errorf("%s contains empty path at index %d", fieldName, i)
		}
		if err := ValidateFileExists(fmt.Sprintf("%s[%d]", fieldName, i), path); err != nil {
			return err
		}
	}
	return nil
}
