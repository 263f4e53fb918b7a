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

package extension

import (
	"fmt"

	"github.com/anibridge/anibridge-providers/pkg/logger"
	"github.com/anibridge/anibridge-providers/pkg/refs"
	"github.com/anibridge/anibridge-providers/pkg/registry"
)

// RegisterFunc is the extension-point shape that receives the registry
// to populate.
type RegisterFunc = func(*registry.Registry)

// Loader resolves extension points and registers the providers they
// declare. Loading is fail-soft per entry: a defective plugin is logged
// and skipped, never aborting the scan.
type Loader struct {
	registry *registry.Registry
	resolver refs.Resolver
	log      *logger.Logger
}

// NewLoader creates a loader writing into reg and resolving references
// through resolver.
func NewLoader(reg *registry.Registry, resolver refs.Resolver) *Loader {
	return &Loader{
		registry: reg,
		resolver: resolver,
		log:      logger.Default().WithField("component", "extension"),
	}
}

// LoadDefault loads the default extension-point group from source into
// the global registry.
func LoadDefault(source Source) error {
	return NewLoader(registry.Global(), refs.New()).Load(source, DefaultGroup)
}

// Load enumerates the extension points declared under group and
// registers each. Only an enumeration failure of the source itself is
// returned; per-entry failures are logged and suppressed.
func (l *Loader) Load(source Source, group string) error {
	entries, err := source.Entries(group)
	if err != nil {
		return fmt.Errorf("enumerate extension points for group %q: %w", group, err)
	}

	for _, ep := range entries {
		l.loadEntry(ep)
	}
	return nil
}

func (l *Loader) loadEntry(ep EntryPoint) {
	log := l.log.WithFields(logger.Fields{"entry": ep.Name, "ref": ep.Ref})

	// A plugin defect must not take down the scan, including a panic
	// from a registration function.
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprintf("%v", r)).Error("Provider extension point panicked")
		}
	}()

	obj := ep.Object
	if obj == nil {
		resolved, err := l.resolver.Object(ep.Ref)
		if err != nil {
			log.WithError(err).Error("Failed to load provider extension point")
			return
		}
		obj = resolved
	}

	switch v := unwrapSymbol(obj).(type) {
	case RegisterFunc:
		// Registration function that receives the registry.
		v(l.registry)

	case func():
		// Self-registering function working against the global handle.
		v()

	case registry.Plugin:
		namespace := ep.Name
		if n, ok := v.(registry.Namespaced); ok && n.ProviderNamespace() != "" {
			namespace = n.ProviderNamespace()
		}
		kind, ok := registry.ParseKind(v.ProviderKind())
		if !ok {
			log.WithField("kind", v.ProviderKind()).Warn("Provider plugin declares unrecognized kind, skipping")
			return
		}
		l.registry.Register(registry.NewDescriptor(namespace, kind, v.NewProvider))
		log.WithFields(logger.Fields{"namespace": namespace, "kind": string(kind)}).Info("Registered provider plugin")

	default:
		log.WithField("object", fmt.Sprintf("%T", obj)).Warn("Extension point resolved to unsupported object, skipping")
	}
}

// unwrapSymbol dereferences pointer-to-function symbols. Looking up an
// exported function variable through the plugin mechanism yields a
// pointer to it, while directly supplied objects are the function
// value itself; both classify identically after unwrapping.
func unwrapSymbol(obj any) any {
	switch p := obj.(type) {
	case *func(*registry.Registry):
		return *p
	case *func():
		return *p
	}
	return obj
}
