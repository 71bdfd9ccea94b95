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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is a single log record handed to a Formatter.
type Entry struct {
	Time    time.Time
	Level   LogLevel
	Message string
	Fields  map[string]interface{}
}

// Formatter renders an Entry, including the trailing newline.
type Formatter interface {
	Format(e Entry) ([]byte, error)
}

// TextFormatter renders entries as
//
//	[2025-01-02T15:04:05Z] [INFO] message key=value other=value
//
// with fields sorted by key.
type TextFormatter struct {
	// TimeFormat enables a leading timestamp when non-empty.
	TimeFormat string
	// ShowLevel adds the upper-cased level.
	ShowLevel bool
}

// Format implements Formatter.
func (f *TextFormatter) Format(e Entry) ([]byte, error) {
	var b strings.Builder
	if f.TimeFormat != "" {
		fmt.Fprintf(&b, "[%s] ", e.Time.Format(f.TimeFormat))
	}
	if f.ShowLevel {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(e.Level.String()))
	}
	b.WriteString(e.Message)
	for _, k := range sortedKeys(e.Fields) {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONFormatter renders one JSON object per entry. Fields are merged into the
// top-level object; they cannot override "time", "level" or "msg".
type JSONFormatter struct {
	// TimeFormat defaults to time.RFC3339Nano.
	TimeFormat string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(e Entry) ([]byte, error) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339Nano
	}

	obj := make(map[string]interface{}, len(e.Fields)+3)
	for k, v := range e.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		obj[k] = v
	}
	obj["time"] = e.Time.Format(layout)
	obj["level"] = e.Level.String()
	obj["msg"] = e.Message

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode log entry: %w", err)
	}
	return append(data, '\n'), nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
