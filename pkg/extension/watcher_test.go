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
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/anibridge/anibridge-providers/pkg/refs"
	"github.com/anibridge/anibridge-providers/pkg/registry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Watcher", func() {
	It("should register providers declared after the watch started", func() {
		dir := GinkgoT().TempDir()

		target := registry.New()
		resolver := refs.Resolver{Open: func(path string) (any, error) {
			return map[string]any{
				"Plugin": &classPlugin{namespace: "late", kind: "library"},
			}, nil
		}}

		watcher, err := NewWatcher(NewLoader(target, resolver), NewDirSource(dir), DefaultGroup)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer watcher.Stop()

		Expect(watcher.Start(ctx)).To(Succeed())

		manifest := `
group: anibridge.providers
providers:
  - name: late
    ref: late.so:Plugin
`
		Expect(os.WriteFile(filepath.Join(dir, "late.yaml"), []byte(manifest), 0o644)).To(Succeed())

		Eventually(func() bool {
			_, ok := target.Get(registry.KindLibrary, "late")
			return ok
		}).WithTimeout(3 * time.Second).WithPolling(50 * time.Millisecond).Should(BeTrue())
	})

	It("should fail to start on a missing directory", func() {
		watcher, err := NewWatcher(NewLoader(registry.New(), refs.New()), NewDirSource("/nonexistent/anibridge"), DefaultGroup)
		Expect(err).NotTo(HaveOccurred())
		defer watcher.Stop()

		Expect(watcher.Start(context.Background())).NotTo(Succeed())
	})
})
