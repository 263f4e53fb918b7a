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
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DirSource", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	writeFile := func(name, content string) {
		Expect(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)).To(Succeed())
	}

	It("should read entry points from matching manifests", func() {
		writeFile("plex.yaml", `
group: anibridge.providers
providers:
  - name: plex
    ref: /usr/lib/anibridge/plex.so:Register
  - name: jellyfin
    ref: /usr/lib/anibridge/jellyfin.so:Register
`)
		writeFile("other.yml", `
group: other.group
providers:
  - name: other
    ref: /usr/lib/other.so:Register
`)
		writeFile("notes.txt", "not a manifest")

		entries, err := NewDirSource(dir).Entries(DefaultGroup)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Name).To(Equal("plex"))
		Expect(entries[0].Group).To(Equal(DefaultGroup))
		Expect(entries[1].Ref).To(Equal("/usr/lib/anibridge/jellyfin.so:Register"))
	})

	It("should skip malformed manifests and keep reading the rest", func() {
		writeFile("broken.yaml", "{{{ not yaml")
		writeFile("good.yaml", `
group: anibridge.providers
providers:
  - name: good
    ref: good.so:Register
`)

		entries, err := NewDirSource(dir).Entries(DefaultGroup)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name).To(Equal("good"))
	})

	It("should fail when the directory cannot be read", func() {
		_, err := NewDirSource(filepath.Join(dir, "missing")).Entries(DefaultGroup)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("StaticSource", func() {
	It("should filter entries by group", func() {
		source := StaticSource{
			{Name: "a", Group: DefaultGroup},
			{Name: "b", Group: "other.group"},
		}

		entries, err := source.Entries(DefaultGroup)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name).To(Equal("a"))
	})
})
