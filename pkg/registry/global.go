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

package registry

import "sync"

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide provider registry, creating it on
// first access. Construction happens exactly once even under
// concurrent first access.
func Global() *Registry {
	globalOnce.Do(func() {
		global = New()
	})
	return global
}

func registerKind(kind Kind, namespace string, factory Factory) Factory {
	Global().Register(NewDescriptor(namespace, kind, factory))
	return factory
}

// RegisterLibraryProvider registers a library provider factory under
// the given namespace in the global registry. It returns the factory
// unchanged so registration can sit at the definition site:
//
//	var _ = registry.RegisterLibraryProvider("plex", New)
func RegisterLibraryProvider(namespace string, factory Factory) Factory {
	return registerKind(KindLibrary, namespace, factory)
}

// RegisterListProvider registers a list provider factory under the
// given namespace in the global registry, returning the factory
// unchanged.
func RegisterListProvider(namespace string, factory Factory) Factory {
	return registerKind(KindList, namespace, factory)
}
