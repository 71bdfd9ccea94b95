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

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// Options configures a DefaultLogger.
type Options struct {
	// Level is the minimum level written.
	Level LogLevel
	// Format picks the built-in formatter. Ignored when Formatter is set.
	Format LogFormat
	// Formatter overrides Format.
	Formatter Formatter
	// Output defaults to os.Stderr so that log lines never mix with digests
	// printed on stdout.
	Output io.Writer
	// Timestamps adds an RFC 3339 timestamp to text entries.
	Timestamps bool
}

// DefaultLogger writes formatted entries to an io.Writer. It is safe for
// concurrent use; loggers derived through WithField share the writer lock.
type DefaultLogger struct {
	mu        *sync.Mutex
	level     LogLevel
	formatter Formatter
	out       io.Writer
	fields    map[string]interface{}
	now       func() time.Time
}

// NewLogger creates a DefaultLogger from opts.
func NewLogger(opts Options) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := opts.Formatter
	if formatter == nil {
		switch opts.Format {
		case FormatJSON:
			formatter = &JSONFormatter{}
		default:
			tf := &TextFormatter{ShowLevel: true}
			if opts.Timestamps {
				tf.TimeFormat = time.RFC3339
			}
			formatter = tf
		}
	}

	return &DefaultLogger{
		mu:        &sync.Mutex{},
		level:     opts.Level,
		formatter: formatter,
		out:       out,
		now:       time.Now,
	}
}

// WithFields returns a logger carrying the receiver's fields plus fields.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	child := *l
	child.fields = merged
	return &child
}

// WithField returns a logger carrying the receiver's fields plus key=value.
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// GetLevel returns the minimum level written.
func (l *DefaultLogger) GetLevel() LogLevel {
	return l.level
}

// Enabled reports whether entries at level would be written.
func (l *DefaultLogger) Enabled(level LogLevel) bool {
	return level >= l.level && level < LevelSilent
}

func (l *DefaultLogger) log(level LogLevel, msg string) {
	if !l.Enabled(level) {
		return
	}

	data, err := l.formatter.Format(Entry{
		Time:    l.now(),
		Level:   level,
		Message: msg,
		Fields:  l.fields,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.out, "logging error: %v\n", err)
		return
	}
	_, _ = l.out.Write(data)
}

// Debug logs at LevelDebug.
func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

// Debugln logs msg at LevelDebug.
func (l *DefaultLogger) Debugln(msg string) { l.log(LevelDebug, msg) }

// Info logs at LevelInfo.
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Infoln logs msg at LevelInfo.
func (l *DefaultLogger) Infoln(msg string) { l.log(LevelInfo, msg) }

// Warn logs at LevelWarn.
func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

// Warnln logs msg at LevelWarn.
func (l *DefaultLogger) Warnln(msg string) { l.log(LevelWarn, msg) }

// Error logs at LevelError.
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

// Errorln logs msg at LevelError.
func (l *DefaultLogger) Errorln(msg string) { l.log(LevelError, msg) }
