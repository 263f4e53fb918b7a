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

	"github.com/fsnotify/fsnotify"

	"github.com/anibridge/anibridge-providers/pkg/logger"
)

// Watcher watches an extension manifest directory and loads newly
// declared providers at runtime. Re-registration of an already known
// provider is harmless: the registry is last-write-wins.
type Watcher struct {
	loader  *Loader
	source  *DirSource
	group   string
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

// NewWatcher creates a watcher that reloads source into loader whenever
// a manifest in the source directory is created or rewritten.
func NewWatcher(loader *Loader, source *DirSource, group string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		loader:  loader,
		source:  source,
		group:   group,
		watcher: fsWatcher,
		log:     logger.Default().WithField("component", "extension"),
	}, nil
}

// Start begins watching the manifest directory. It returns after the
// watch is installed; events are handled until ctx is cancelled or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.source.Dir); err != nil {
		return err
	}

	w.log.WithField("path", w.source.Dir).Info("Started monitoring extension manifests")

	go w.watchLoop(ctx)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.handleManifestChange(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("Extension manifest watcher error")
		}
	}
}

func (w *Watcher) handleManifestChange(path string) {
	w.log.WithField("file", path).Debug("Extension manifest changed, reloading")

	if err := w.loader.Load(w.source, w.group); err != nil {
		w.log.WithError(err).Error("Failed to reload extension manifests")
	}
}
