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

// Package refs resolves textual references of the form
// "container:Qualified.Name" to loaded, in-process objects. The
// container portion names a loadable unit (by default a Go plugin
// shared object); the qualified name is a dot-separated attribute path
// walked on the loaded container.
package refs

import (
	"errors"
	"fmt"
	"plugin"
	"reflect"
	"strings"
)

// ErrInvalidReference marks a malformed reference: a missing separator,
// an empty container path, or an empty qualified name.
var ErrInvalidReference = errors.New("reference must be in 'container:qualname' format")

// AttributeError reports the exact dotted segment that does not exist
// on the partially resolved object.
type AttributeError struct {
	Ref  string
	Attr string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %q not found while resolving %q", e.Attr, e.Ref)
}

// Opener loads a container by path. Any caching of repeated loads is
// owned by the underlying mechanism, not by the resolver.
type Opener func(path string) (any, error)

// Resolver resolves references against containers loaded by Open.
type Resolver struct {
	Open Opener
}

// New returns a resolver backed by the Go plugin mechanism: the
// container path is a shared object file opened with plugin.Open.
func New() Resolver {
	return Resolver{Open: openPlugin}
}

func openPlugin(path string) (any, error) {
	return plugin.Open(path)
}

// Object resolves "container:Name[.Name]*" to the final object reached
// by walking the dotted attribute path on the loaded container. Each
// hop is re-checked for existence; a missing segment yields an
// *AttributeError naming it.
func (r Resolver) Object(ref string) (any, error) {
	containerPath, qualname, found := strings.Cut(ref, ":")
	if !found || containerPath == "" || qualname == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	obj, err := r.Container(containerPath)
	if err != nil {
		return nil, err
	}

	for _, attr := range strings.Split(qualname, ".") {
		next, ok := lookupAttr(obj, attr)
		if !ok {
			return nil, &AttributeError{Ref: ref, Attr: attr}
		}
		obj = next
	}
	return obj, nil
}

// Container loads and returns the container itself, with no attribute
// resolution.
func (r Resolver) Container(path string) (any, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: container path is empty", ErrInvalidReference)
	}
	obj, err := r.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open container %q: %w", path, err)
	}
	return obj, nil
}

// symbolTable is satisfied by *plugin.Plugin and by test containers.
type symbolTable interface {
	Lookup(name string) (plugin.Symbol, error)
}

// lookupAttr resolves one attribute hop: a symbol table lookup when the
// object supports it, otherwise a method, exported struct field, or
// string-keyed map entry found by reflection.
func lookupAttr(obj any, name string) (any, bool) {
	if table, ok := obj.(symbolTable); ok {
		sym, err := table.Lookup(name)
		if err != nil {
			return nil, false
		}
		return sym, true
	}

	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return nil, false
	}
	if m := v.MethodByName(name); m.IsValid() {
		return m.Interface(), true
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
		if m := v.MethodByName(name); m.IsValid() {
			return m.Interface(), true
		}
	}

	switch v.Kind() {
	case reflect.Struct:
		f := v.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
			if mv.IsValid() {
				return mv.Interface(), true
			}
		}
	}
	return nil, false
}
