// Copyright 2025 AniBridge Authors
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

// Package registry is the authoritative in-memory directory of provider
// descriptors, keyed by provider kind and namespace. It is populated
// either explicitly through the registration helpers or in bulk by the
// extension-point loader.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/anibridge/anibridge-providers/pkg/provider"
)

// Kind identifies which capability contract a provider satisfies.
type Kind string

const (
	// KindLibrary marks providers implementing provider.LibraryProvider.
	KindLibrary Kind = "library"

	// KindList marks providers implementing provider.ListProvider.
	KindList Kind = "list"
)

// ParseKind maps a string onto a recognized Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(s)) {
	case KindLibrary:
		return KindLibrary, true
	case KindList:
		return KindList, true
	}
	return "", false
}

// Factory constructs a provider instance from its optional configuration.
type Factory func(cfg provider.Config) (provider.Provider, error)

// Descriptor binds a (kind, namespace) pair to a provider factory.
// Namespace is always lowercase after construction.
type Descriptor struct {
	Namespace string
	Kind      Kind
	New       Factory
}

// NewDescriptor builds a Descriptor, normalizing the namespace to its
// lowercase form regardless of the caller's casing.
func NewDescriptor(namespace string, kind Kind, factory Factory) Descriptor {
	return Descriptor{
		Namespace: strings.ToLower(namespace),
		Kind:      kind,
		New:       factory,
	}
}

// ErrNotRegistered is returned by Require for unknown (kind, namespace)
// pairs.
var ErrNotRegistered = errors.New("provider is not registered")

type key struct {
	kind      Kind
	namespace string
}

// Registry maps (kind, namespace) pairs to provider descriptors. It is
// safe for concurrent use; registrations are rare (startup time) while
// reads are frequent.
type Registry struct {
	mu        sync.RWMutex
	providers map[key]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		providers: make(map[key]Descriptor),
	}
}

// Register stores a descriptor, replacing any previous descriptor at
// the same (kind, namespace) key. It returns the descriptor for
// chaining.
func (r *Registry) Register(d Descriptor) Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[key{kind: d.Kind, namespace: d.Namespace}] = d
	return d
}

// Get retrieves a descriptor by kind and namespace. Namespace matching
// is case-insensitive.
func (r *Registry) Get(kind Kind, namespace string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.providers[key{kind: kind, namespace: strings.ToLower(namespace)}]
	return d, ok
}

// Require retrieves a descriptor like Get but returns an error wrapping
// ErrNotRegistered when the pair is unknown.
func (r *Registry) Require(kind Kind, namespace string) (Descriptor, error) {
	d, ok := r.Get(kind, namespace)
	if !ok {
		return Descriptor{}, fmt.Errorf("provider %q of kind %q: %w", namespace, kind, ErrNotRegistered)
	}
	return d, nil
}

// Available returns a snapshot of all registered descriptors in
// unspecified order.
func (r *Registry) Available() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.providers))
	for _, d := range r.providers {
		out = append(out, d)
	}
	return out
}
