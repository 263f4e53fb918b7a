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
	"bytes"
	"errors"
	"testing"

	"github.com/anibridge/anibridge-providers/pkg/logger"
	"github.com/anibridge/anibridge-providers/pkg/provider"
	"github.com/anibridge/anibridge-providers/pkg/refs"
	"github.com/anibridge/anibridge-providers/pkg/registry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExtension(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Extension Suite")
}

// classPlugin is a class-style extension point with self-declared
// namespace and kind.
type classPlugin struct {
	namespace string
	kind      string
}

func (p *classPlugin) ProviderNamespace() string { return p.namespace }
func (p *classPlugin) ProviderKind() string      { return p.kind }

func (p *classPlugin) NewProvider(cfg provider.Config) (provider.Provider, error) {
	return nil, errors.New("not constructible in tests")
}

// anonymousPlugin declares a kind but no namespace of its own.
type anonymousPlugin struct {
	kind string
}

func (p *anonymousPlugin) ProviderKind() string { return p.kind }

func (p *anonymousPlugin) NewProvider(cfg provider.Config) (provider.Provider, error) {
	return nil, errors.New("not constructible in tests")
}

var _ = Describe("Loader", func() {
	newLoader := func(open refs.Opener) (*registry.Registry, *Loader) {
		target := registry.New()
		return target, NewLoader(target, refs.Resolver{Open: open})
	}

	Describe("Load", func() {
		It("should call registration functions with the target registry", func() {
			target, l := newLoader(nil)

			source := StaticSource{{
				Name:  "plex",
				Group: DefaultGroup,
				Object: func(r *registry.Registry) {
					r.Register(registry.NewDescriptor("plex", registry.KindLibrary, nil))
				},
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())

			_, ok := target.Get(registry.KindLibrary, "plex")
			Expect(ok).To(BeTrue())
		})

		It("should call no-argument registration functions", func() {
			_, l := newLoader(nil)

			called := false
			source := StaticSource{{
				Name:   "selfreg",
				Group:  DefaultGroup,
				Object: func() { called = true },
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())
			Expect(called).To(BeTrue())
		})

		It("should register class-style plugins under their declared namespace and kind", func() {
			target, l := newLoader(nil)

			source := StaticSource{{
				Name:   "entry-name",
				Group:  DefaultGroup,
				Object: &classPlugin{namespace: "AniList", kind: "list"},
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())

			d, ok := target.Get(registry.KindList, "anilist")
			Expect(ok).To(BeTrue())
			Expect(d.Namespace).To(Equal("anilist"))
		})

		It("should fall back to the entry-point name for plugins without a namespace", func() {
			target, l := newLoader(nil)

			source := StaticSource{{
				Name:   "mal",
				Group:  DefaultGroup,
				Object: &anonymousPlugin{kind: "list"},
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())

			_, ok := target.Get(registry.KindList, "mal")
			Expect(ok).To(BeTrue())
		})

		It("should skip plugins with an unrecognized kind without touching the registry", func() {
			target, l := newLoader(nil)
			target.Register(registry.NewDescriptor("existing", registry.KindLibrary, nil))

			source := StaticSource{{
				Name:   "badkind",
				Group:  DefaultGroup,
				Object: &classPlugin{namespace: "badkind", kind: "database"},
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())
			Expect(target.Available()).To(HaveLen(1))
		})

		It("should skip unsupported object shapes", func() {
			target, l := newLoader(nil)

			source := StaticSource{{
				Name:   "weird",
				Group:  DefaultGroup,
				Object: 42,
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())
			Expect(target.Available()).To(BeEmpty())
		})

		It("should continue past a failing entry and load the others", func() {
			open := func(path string) (any, error) {
				if path == "broken.so" {
					return nil, errors.New("load failure")
				}
				return map[string]any{
					"Plugin": &classPlugin{namespace: path, kind: "library"},
				}, nil
			}
			target, l := newLoader(open)

			var buf bytes.Buffer
			logger.Default().SetOutput(&buf)

			source := StaticSource{
				{Name: "a", Group: DefaultGroup, Ref: "a.so:Plugin"},
				{Name: "broken", Group: DefaultGroup, Ref: "broken.so:Plugin"},
				{Name: "b", Group: DefaultGroup, Ref: "b.so:Plugin"},
			}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())
			Expect(target.Available()).To(HaveLen(2))

			Expect(bytes.Count(buf.Bytes(), []byte("Failed to load provider extension point"))).To(Equal(1))
			Expect(buf.String()).To(ContainSubstring("broken"))
		})

		It("should contain a panicking registration function", func() {
			target, l := newLoader(nil)

			source := StaticSource{
				{Name: "boom", Group: DefaultGroup, Object: func() { panic("boom") }},
				{Name: "ok", Group: DefaultGroup, Object: &classPlugin{namespace: "ok", kind: "library"}},
			}

			Expect(func() { _ = l.Load(source, DefaultGroup) }).NotTo(Panic())

			_, ok := target.Get(registry.KindLibrary, "ok")
			Expect(ok).To(BeTrue())
		})

		It("should unwrap pointer-to-function symbols", func() {
			registerFn := func(r *registry.Registry) {
				r.Register(registry.NewDescriptor("ptr", registry.KindLibrary, nil))
			}
			open := func(path string) (any, error) {
				return map[string]any{"Register": &registerFn}, nil
			}
			target, l := newLoader(open)

			source := StaticSource{{Name: "ptr", Group: DefaultGroup, Ref: "ptr.so:Register"}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())

			_, ok := target.Get(registry.KindLibrary, "ptr")
			Expect(ok).To(BeTrue())
		})

		It("should surface enumeration failures", func() {
			_, l := newLoader(nil)

			err := l.Load(failingSource{}, DefaultGroup)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(DefaultGroup))
		})

		It("should ignore entries from other groups", func() {
			target, l := newLoader(nil)

			source := StaticSource{{
				Name:   "other",
				Group:  "other.group",
				Object: &classPlugin{namespace: "other", kind: "library"},
			}}

			Expect(l.Load(source, DefaultGroup)).To(Succeed())
			Expect(target.Available()).To(BeEmpty())
		})
	})
})

type failingSource struct{}

func (failingSource) Entries(group string) ([]EntryPoint, error) {
	return nil, errors.New("metadata unavailable")
}
