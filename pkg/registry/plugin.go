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

import "github.com/anibridge/anibridge-providers/pkg/provider"

// Plugin is the contract for class-style extension points: a prototype
// value exposed directly by a plugin instead of a registration
// function. The kind is a plain string so that extension points
// declaring an unrecognized kind can be inspected and skipped by the
// loader rather than failing to load at all.
type Plugin interface {
	// ProviderKind returns the provider kind; it must parse to a
	// recognized Kind for the plugin to be registered.
	ProviderKind() string

	// NewProvider constructs the provider from its optional configuration.
	NewProvider(cfg provider.Config) (provider.Provider, error)
}

// Namespaced is optionally implemented by a Plugin to declare its own
// namespace. When absent, the loader falls back to the extension
// point's declared name.
type Namespaced interface {
	ProviderNamespace() string
}
