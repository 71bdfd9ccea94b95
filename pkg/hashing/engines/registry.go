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

package hashengines

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

type registration struct {
	name    string
	factory Factory
}

var (
	registry = make(map[string]registration)
	mu       sync.RWMutex
)

// NormalizeName folds an algorithm name to its registry key: lowercase with
// '-', '_' and spaces removed. "SHA-256", "sha256" and "Sha_256" share a key.
func NormalizeName(algorithm string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(algorithm)))
}

// Register registers a hash function factory under the canonical name algorithm.
//
// Registration fails if another algorithm already normalizes to the same key.
func Register(algorithm string, factory Factory) error {
	mu.Lock()
	defer mu.Unlock()

	key := NormalizeName(algorithm)
	if key == "" {
		return hasherr.InvalidArgument("Register", "algorithm name cannot be empty")
	}

	if factory == nil {
		return hasherr.InvalidArgument("Register", "factory cannot be nil")
	}

	if existing, exists := registry[key]; exists {
		return fmt.Errorf("hash algorithm %q already registered as %q", algorithm, existing.name)
	}

	registry[key] = registration{name: algorithm, factory: factory}
	return nil
}

// MustRegister registers a hash function factory or panics on error.
//
// Meant for package init functions, where a failed registration is a
// programming error.
func MustRegister(algorithm string, factory Factory) {
	if err := Register(algorithm, factory); err != nil {
		panic(fmt.Sprintf("failed to register hash algorithm %q: %v", algorithm, err))
	}
}

// Lookup returns the factory registered for algorithm.
//
// Unknown names fail with hasherr.ErrTypeAlgorithmUnavailable carrying the
// rejected name.
func Lookup(algorithm string) (Factory, error) {
	key := NormalizeName(algorithm)
	if key == "" {
		return nil, hasherr.InvalidArgument("Create", "algorithm cannot be empty")
	}

	mu.RLock()
	reg, exists := registry[key]
	mu.RUnlock()

	if !exists {
		return nil, hasherr.AlgorithmUnavailable(algorithm, SupportedAlgorithms())
	}
	return reg.factory, nil
}

// Create creates a new hash function for the given algorithm.
func Create(algorithm string) (HashFunction, error) {
	factory, err := Lookup(algorithm)
	if err != nil {
		return nil, err
	}

	h, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create hash function for %q: %w", algorithm, err)
	}
	if h == nil {
		return nil, hasherr.InvalidArgument("Create", "factory for %q returned a nil hash function", algorithm)
	}
	return h, nil
}

// CanonicalName returns the name algorithm was registered under.
func CanonicalName(algorithm string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	reg, exists := registry[NormalizeName(algorithm)]
	return reg.name, exists
}

// SupportedAlgorithms returns a sorted list of registered canonical names.
func SupportedAlgorithms() []string {
	mu.RLock()
	defer mu.RUnlock()

	algorithms := make([]string, 0, len(registry))
	for _, reg := range registry {
		algorithms = append(algorithms, reg.name)
	}
	sort.Strings(algorithms)
	return algorithms
}

// IsSupported checks if an algorithm is registered.
func IsSupported(algorithm string) bool {
	_, exists := CanonicalName(algorithm)
	return exists
}

// Unregister removes a hash algorithm from the registry.
//
// This is primarily useful for testing.
func Unregister(algorithm string) error {
	mu.Lock()
	defer mu.Unlock()

	key := NormalizeName(algorithm)
	if _, exists := registry[key]; !exists {
		return hasherr.AlgorithmUnavailable(algorithm, nil)
	}

	delete(registry, key)
	return nil
}
