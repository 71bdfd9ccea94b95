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

package digests

import (
	"errors"
	"testing"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
	"github.com/google/go-cmp/cmp"
)

func TestNewDigest_CopiesValue(t *testing.T) {
	raw := []byte{0xD4, 0x1D, 0x8C}
	d := NewDigest("MD5", raw)
	raw[0] = 0

	if got := d.Value()[0]; got != 0xD4 {
		t.Errorf("Value()[0] = %#x after mutating input, want 0xd4", got)
	}

	out := d.Value()
	out[1] = 0
	if diff := cmp.Diff([]byte{0xD4, 0x1D, 0x8C}, d.Value()); diff != "" {
		t.Errorf("Value() changed after mutating returned slice (-want +got):\n%s", diff)
	}
}

func TestDigest_Hex(t *testing.T) {
	d := NewDigest("MD5", []byte{0xd4, 0x1d, 0x8c, 0xd9, 0x8f, 0x00, 0xb2, 0x04, 0xe9, 0x80, 0x09, 0x98, 0xec, 0xf8, 0x42, 0x7e})

	if got, want := d.Hex(), "D41D8CD98F00B204E9800998ECF8427E"; got != want {
		t.Errorf("Hex() = %q, want %q", got, want)
	}
	if got, want := d.String(), "MD5:D41D8CD98F00B204E9800998ECF8427E"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := d.Size(); got != 16 {
		t.Errorf("Size() = %d, want 16", got)
	}
	if got := d.BitLen(); got != 128 {
		t.Errorf("BitLen() = %d, want 128", got)
	}
}

func TestDigest_Bit(t *testing.T) {
	d := NewDigest("", []byte{0x80, 0x01})

	want := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	got := make([]byte, d.BitLen())
	for i := range got {
		got[i] = d.Bit(i)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Bit() mismatch (-want +got):\n%s", diff)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Bit(16) should panic")
		}
	}()
	d.Bit(16)
}

func TestDigest_Equal(t *testing.T) {
	a := NewDigest("SHA-1", []byte{1, 2, 3})

	tests := []struct {
		name  string
		other Digest
		want  bool
	}{
		{"same", NewDigest("SHA-1", []byte{1, 2, 3}), true},
		{"unnamed other", NewDigest("", []byte{1, 2, 3}), true},
		{"different algorithm", NewDigest("MD5", []byte{1, 2, 3}), false},
		{"different value", NewDigest("SHA-1", []byte{1, 2, 4}), false},
		{"different length", NewDigest("SHA-1", []byte{1, 2}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"uppercase", "5289DF737DF57326FCDD22597AFB1FAC", "5289DF737DF57326FCDD22597AFB1FAC", false},
		{"lowercase", "5289df737df57326fcdd22597afb1fac", "5289DF737DF57326FCDD22597AFB1FAC", false},
		{"surrounding space", " 0a0b \n", "0A0B", false},
		{"odd length", "abc", "", true},
		{"not hex", "zz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseHex("MD5", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, hasherr.ErrInvalidArgument) {
					t.Errorf("ParseHex() error = %v, want invalid argument", err)
				}
				return
			}
			if got := d.Hex(); got != tt.want {
				t.Errorf("ParseHex().Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDigest_IsZero(t *testing.T) {
	if !(Digest{}).IsZero() {
		t.Error("Digest{}.IsZero() = false, want true")
	}
	if NewDigest("MD5", []byte{0}).IsZero() {
		t.Error("IsZero() = true for single zero byte digest, want false")
	}
}
