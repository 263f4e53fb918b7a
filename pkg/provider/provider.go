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

// Package provider defines the capability contracts AniBridge provider
// implementations must satisfy. Concrete providers live in separate
// repositories; this package only declares the shared surface area
// between the host and its plugins.
package provider

import "context"

// Config carries any configuration options that were detected with the
// provider's namespace as a prefix. It may be nil.
type Config map[string]any

// User is the account a provider operates on behalf of.
type User struct {
	Key   string
	Title string
}

// Provider is the minimal contract common to all provider kinds.
type Provider interface {
	// Namespace identifies the provider; it should be unique within a kind.
	Namespace() string

	// Initialize performs any setup that may block, such as network requests.
	Initialize(ctx context.Context) error

	// User returns the associated user, or nil when the provider has no
	// account attached.
	User() *User

	// ClearCache drops any provider-local caches.
	ClearCache(ctx context.Context) error

	// Close releases the provider's resources.
	Close(ctx context.Context) error
}
