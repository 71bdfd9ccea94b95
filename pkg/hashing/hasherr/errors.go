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

// Package hasherr defines the errors reported by hash functions, streams and
// hashing taps.
//
// Every error built here is a caller bug or a configuration problem; none of
// them is worth retrying. Failures coming from a wrapped stream are never
// converted to this type and are passed through as-is.
package hasherr

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a hashing error.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeInvalidArgument indicates a missing or out-of-range argument.
	ErrTypeInvalidArgument

	// ErrTypeInvalidState indicates an operation on a disposed hasher, stream or tap.
	ErrTypeInvalidState

	// ErrTypeAlgorithmUnavailable indicates an unrecognized digest algorithm name.
	ErrTypeAlgorithmUnavailable
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeInvalidArgument:
		return "InvalidArgument"
	case ErrTypeInvalidState:
		return "InvalidState"
	case ErrTypeAlgorithmUnavailable:
		return "AlgorithmUnavailable"
	default:
		return "UnknownError"
	}
}

// Sentinels for use with errors.Is. An *Error matches the sentinel of its Type.
var (
	ErrInvalidArgument      = &Error{Type: ErrTypeInvalidArgument, Message: "invalid argument"}
	ErrInvalidState         = &Error{Type: ErrTypeInvalidState, Message: "invalid state"}
	ErrAlgorithmUnavailable = &Error{Type: ErrTypeAlgorithmUnavailable, Message: "algorithm unavailable"}
)

// Error is the structured error returned by this module's hashing layer.
//
// Example usage:
//
//	if _, err := h.Finalize(); errors.Is(err, hasherr.ErrInvalidState) {
//	    // the hasher was already disposed
//	}
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Op is the operation that failed, such as "FeedRange" or "Create" (optional).
	Op string

	// Name is the rejected algorithm name for ErrTypeAlgorithmUnavailable.
	Name string

	// Message is a human-readable description of what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	switch t {
	case ErrInvalidArgument, ErrInvalidState, ErrAlgorithmUnavailable:
		return e.Type == t.Type
	}
	return false
}

// InvalidArgument returns an ErrTypeInvalidArgument error for op.
func InvalidArgument(op, format string, args ...interface{}) *Error {
	return &Error{
		Type:    ErrTypeInvalidArgument,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidState returns an ErrTypeInvalidState error for op.
func InvalidState(op, message string) *Error {
	return &Error{
		Type:    ErrTypeInvalidState,
		Op:      op,
		Message: message,
	}
}

// Disposed is the InvalidState error for an operation on a disposed value.
func Disposed(op string) *Error {
	return InvalidState(op, "already disposed")
}

// AlgorithmUnavailable returns an ErrTypeAlgorithmUnavailable error carrying name.
func AlgorithmUnavailable(name string, supported []string) *Error {
	msg := fmt.Sprintf("%s digest not available", name)
	if len(supported) > 0 {
		msg = fmt.Sprintf("%s (supported: %v)", msg, supported)
	}
	return &Error{
		Type:    ErrTypeAlgorithmUnavailable,
		Op:      "Create",
		Name:    name,
		Message: msg,
	}
}

// IsType checks if err is, or wraps, an *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var hashErr *Error
	if errors.As(err, &hashErr) {
		return hashErr.Type == errType
	}
	return false
}
