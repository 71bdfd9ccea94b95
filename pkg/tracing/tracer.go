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

// Package tracing wraps file hashing and copy operations in spans. The default
// build uses a no-op tracer and carries no OpenTelemetry code; building with
// -tags=otel swaps in an OTLP/HTTP exporter configured from the standard
// OTEL_* environment variables.
package tracing

import "context"

// Span is a timed operation within a trace.
type Span interface {
	// SetAttribute records key=value on the span.
	SetAttribute(key string, value interface{})
	// End finishes the span.
	End()
}

// Tracer starts spans.
type Tracer interface {
	// Start begins a span called name. The returned context carries the span
	// and must be passed to nested operations.
	Start(ctx context.Context, name string) (context.Context, Span)
}

var globalTracer Tracer = NoopTracer{}

// SetTracer installs t as the global tracer. A nil t restores the no-op tracer.
func SetTracer(t Tracer) {
	if t == nil {
		globalTracer = NoopTracer{}
		return
	}
	globalTracer = t
}

// GetTracer returns the global tracer, never nil.
func GetTracer() Tracer {
	return globalTracer
}

// Start begins a span on the global tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return globalTracer.Start(ctx, name)
}

// Enabled reports whether a real tracer is installed.
func Enabled() bool {
	_, noop := globalTracer.(NoopTracer)
	return !noop
}

// Run executes fn inside a span called name carrying attrs. With the no-op
// tracer fn is called directly. An error returned by fn is recorded on the
// span under "error" before it is returned.
func Run(ctx context.Context, name string, attrs map[string]interface{}, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}
	ctx, span := globalTracer.Start(ctx, name)
	defer span.End()
	for k, v := range attrs {
		span.SetAttribute(k, v)
	}
	err := fn(ctx)
	if err != nil {
		span.SetAttribute("error", err.Error())
	}
	return err
}
