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

// Package extension discovers externally declared provider extension
// points and registers them into the provider registry. Discovery is
// best-effort: one defective extension point never prevents the
// remaining ones from loading.
package extension

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/anibridge/anibridge-providers/pkg/logger"
)

// DefaultGroup is the extension-point group scanned when the caller
// does not override it.
const DefaultGroup = "anibridge.providers"

// EntryPoint is one externally declared, loadable provider reference.
type EntryPoint struct {
	// Name is the declared entry-point name, used as the namespace
	// fallback for class-style plugins.
	Name string `yaml:"name"`

	// Group is the extension-point group the entry belongs to.
	Group string `yaml:"-"`

	// Ref locates the object, in "container:Qualified.Name" form.
	Ref string `yaml:"ref"`

	// Object is an already-resolved extension point supplied directly
	// by the host. When non-nil it takes precedence over Ref.
	Object any `yaml:"-"`
}

// Source enumerates the extension points declared under a group. An
// error from Entries means the mechanism itself is unavailable; it is
// the only failure the loader surfaces to its caller.
type Source interface {
	Entries(group string) ([]EntryPoint, error)
}

// manifest is the on-disk shape of one extension-point declaration file.
type manifest struct {
	Group     string       `yaml:"group"`
	Providers []EntryPoint `yaml:"providers"`
}

// DirSource reads extension-point manifests (*.yaml, *.yml) from a
// directory. Individual malformed files are logged and skipped; only a
// failure to enumerate the directory itself is returned.
type DirSource struct {
	Dir string
	log *logger.Logger
}

// NewDirSource creates a manifest directory source.
func NewDirSource(dir string) *DirSource {
	return &DirSource{
		Dir: dir,
		log: logger.Default().WithField("component", "extension"),
	}
}

// Entries returns the entry points declared under group across all
// manifest files in the directory.
func (s *DirSource) Entries(group string) ([]EntryPoint, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read extension manifest dir %q: %w", s.Dir, err)
	}

	var entries []EntryPoint
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		switch filepath.Ext(f.Name()) {
		case ".yaml", ".yml":
		default:
			continue
		}

		path := filepath.Join(s.Dir, f.Name())
		m, err := readManifest(path)
		if err != nil {
			s.log.WithError(err).WithField("file", path).Error("Skipping unreadable extension manifest")
			continue
		}
		if m.Group != group {
			continue
		}
		for _, ep := range m.Providers {
			ep.Group = m.Group
			entries = append(entries, ep)
		}
	}
	return entries, nil
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// StaticSource is a fixed, in-memory set of entry points, mainly useful
// for tests and for hosts that assemble entry points themselves.
type StaticSource []EntryPoint

// Entries returns the subset of entry points declared under group.
func (s StaticSource) Entries(group string) ([]EntryPoint, error) {
	var entries []EntryPoint
	for _, ep := range s {
		if ep.Group == group {
			entries = append(entries, ep)
		}
	}
	return entries, nil
}
