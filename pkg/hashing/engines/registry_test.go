// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashengines_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	hashengines "github.com/danschultequb/hashtap/pkg/hashing/engines"
	"github.com/danschultequb/hashtap/pkg/hashing/engines/memory"
	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		want      string
		wantErr   error
	}{
		{"MD5", "MD5", memory.AlgorithmMD5, nil},
		{"md5", "md5", memory.AlgorithmMD5, nil},
		{"md-5", "md-5", memory.AlgorithmMD5, nil},
		{"SHA-1", "SHA-1", memory.AlgorithmSHA1, nil},
		{"SHA1", "SHA1", memory.AlgorithmSHA1, nil},
		{"Sha1", "Sha1", memory.AlgorithmSHA1, nil},
		{"sha256", "sha256", memory.AlgorithmSHA256, nil},
		{"sHa256", "sHa256", memory.AlgorithmSHA256, nil},
		{"sha_512", "sha_512", memory.AlgorithmSHA512, nil},
		{"blake2b 256", "blake2b 256", memory.AlgorithmBLAKE2b256, nil},
		{"sha3-256", "sha3-256", memory.AlgorithmSHA3_256, nil},
		{"unsupported", "spam", "", hasherr.ErrAlgorithmUnavailable},
		{"empty", "", "", hasherr.ErrInvalidArgument},
		{"whitespace", "   ", "", hasherr.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := hashengines.Create(tt.algorithm)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create(%q) error = %v, want %v", tt.algorithm, err, tt.wantErr)
				}
				if h != nil {
					t.Errorf("Create(%q) returned a hash function alongside an error", tt.algorithm)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create(%q) error = %v", tt.algorithm, err)
			}
			if got := h.Algorithm(); got != tt.want {
				t.Errorf("Algorithm() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreate_UnavailableCarriesName(t *testing.T) {
	_, err := hashengines.Create("spam")

	var herr *hasherr.Error
	if !errors.As(err, &herr) {
		t.Fatalf("Create() error = %v, want *hasherr.Error", err)
	}
	if herr.Name != "spam" {
		t.Errorf("error Name = %q, want %q", herr.Name, "spam")
	}
	if herr.Type != hasherr.ErrTypeAlgorithmUnavailable {
		t.Errorf("error Type = %v, want %v", herr.Type, hasherr.ErrTypeAlgorithmUnavailable)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"SHA-256":     "sha256",
		"sha_256":     "sha256",
		" Sha 256 ":   "sha256",
		"BLAKE2b-512": "blake2b512",
		"":            "",
	}
	for in, want := range tests {
		if got := hashengines.NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSupportedAlgorithms(t *testing.T) {
	want := []string{
		memory.AlgorithmBLAKE2b256,
		memory.AlgorithmBLAKE2b512,
		memory.AlgorithmMD5,
		memory.AlgorithmSHA1,
		memory.AlgorithmSHA256,
		memory.AlgorithmSHA512,
		memory.AlgorithmSHA3_256,
		memory.AlgorithmSHA3_512,
	}
	if diff := cmp.Diff(want, hashengines.SupportedAlgorithms()); diff != "" {
		t.Errorf("SupportedAlgorithms() mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalName(t *testing.T) {
	name, ok := hashengines.CanonicalName("sha1")
	if !ok || name != memory.AlgorithmSHA1 {
		t.Errorf("CanonicalName(sha1) = (%q, %v), want (%q, true)", name, ok, memory.AlgorithmSHA1)
	}
	if _, ok := hashengines.CanonicalName("spam"); ok {
		t.Error("CanonicalName(spam) reported a registration")
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		factory   hashengines.Factory
		wantErr   bool
		cleanup   bool
	}{
		{
			name:      "valid registration",
			algorithm: "Test-Algo",
			factory:   memory.SHA256,
			cleanup:   true,
		},
		{
			name:      "empty algorithm",
			algorithm: "",
			factory:   memory.SHA256,
			wantErr:   true,
		},
		{
			name:      "nil factory",
			algorithm: "test-nil",
			factory:   nil,
			wantErr:   true,
		},
		{
			name:      "duplicate after normalization",
			algorithm: "sha_256",
			factory:   memory.SHA256,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hashengines.Register(tt.algorithm, tt.factory)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.cleanup {
				defer func() {
					if err := hashengines.Unregister(tt.algorithm); err != nil {
						t.Errorf("Unregister() error = %v", err)
					}
				}()
				if !hashengines.IsSupported("testalgo") {
					t.Error("IsSupported(testalgo) = false after Register")
				}
			}
		})
	}
}

func TestMustRegister_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRegister() did not panic on a duplicate name")
		}
	}()
	hashengines.MustRegister("MD5", memory.MD5)
}

func TestUnregister_Unknown(t *testing.T) {
	if err := hashengines.Unregister("spam"); !errors.Is(err, hasherr.ErrAlgorithmUnavailable) {
		t.Errorf("Unregister(spam) error = %v, want algorithm unavailable", err)
	}
}

func TestCreate_FactoryFailures(t *testing.T) {
	boom := errors.New("boom")
	if err := hashengines.Register("failing", func() (hashengines.HashFunction, error) {
		return nil, boom
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer func() { _ = hashengines.Unregister("failing") }()

	if err := hashengines.Register("nil-result", func() (hashengines.HashFunction, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer func() { _ = hashengines.Unregister("nil-result") }()

	if _, err := hashengines.Create("failing"); !errors.Is(err, boom) {
		t.Errorf("Create(failing) error = %v, want wrapped %v", err, boom)
	}
	if _, err := hashengines.Create("nil-result"); !errors.Is(err, hasherr.ErrInvalidArgument) {
		t.Errorf("Create(nil-result) error = %v, want invalid argument", err)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("concurrent-%d", i)
			if err := hashengines.Register(name, memory.MD5); err != nil {
				t.Errorf("Register(%s) error = %v", name, err)
				return
			}
			if _, err := hashengines.Create(name); err != nil {
				t.Errorf("Create(%s) error = %v", name, err)
			}
			_ = hashengines.SupportedAlgorithms()
			if err := hashengines.Unregister(name); err != nil {
				t.Errorf("Unregister(%s) error = %v", name, err)
			}
		}(i)
	}
	wg.Wait()
}
