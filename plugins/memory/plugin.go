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

// Package memory provides an in-memory library provider. It backs the
// SDK's own tests and doubles as a reference implementation of the
// library capability contract; hosts can also use it to stage fixture
// data without a real media server.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/anibridge/anibridge-providers/pkg/provider"
	"github.com/anibridge/anibridge-providers/pkg/registry"
)

// Namespace is the provider's registry namespace.
const Namespace = "memory"

func init() {
	registry.RegisterLibraryProvider(Namespace, New)
}

// New constructs the provider. Recognized config keys: "user_key" and
// "user_title" attach an account to the provider.
func New(cfg provider.Config) (provider.Provider, error) {
	p := &Library{sections: make(map[string]*Section)}
	if key, ok := cfg["user_key"].(string); ok {
		title, _ := cfg["user_title"].(string)
		p.user = &provider.User{Key: key, Title: title}
	}
	return p, nil
}

// Library is an in-memory provider.LibraryProvider.
type Library struct {
	mu       sync.RWMutex
	user     *provider.User
	sections map[string]*Section
}

var _ provider.LibraryProvider = (*Library)(nil)

// Namespace implements provider.Provider.
func (l *Library) Namespace() string { return Namespace }

// Initialize implements provider.Provider. There is nothing to set up.
func (l *Library) Initialize(ctx context.Context) error { return nil }

// User implements provider.Provider.
func (l *Library) User() *provider.User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.user
}

// ClearCache implements provider.Provider. The provider holds no caches.
func (l *Library) ClearCache(ctx context.Context) error { return nil }

// Close implements provider.Provider.
func (l *Library) Close(ctx context.Context) error { return nil }

// AddSection creates a section and returns it for item staging.
func (l *Library) AddSection(key, title string, kind provider.MediaKind) *Section {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := &Section{key: key, title: title, kind: kind}
	l.sections[key] = s
	return s
}

// Sections implements provider.LibraryProvider.
func (l *Library) Sections(ctx context.Context) ([]provider.Section, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]provider.Section, 0, len(l.sections))
	for _, s := range l.sections {
		out = append(out, s)
	}
	return out, nil
}

// Items implements provider.LibraryProvider.
func (l *Library) Items(ctx context.Context, section provider.Section, filter provider.ItemFilter) ([]provider.Media, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.sections[section.Key()]
	if ok {
		return s.items(filter), nil
	}
	return nil, nil
}

// Section is an in-memory library section.
type Section struct {
	key   string
	title string
	kind  provider.MediaKind

	mu      sync.RWMutex
	entries []*Item
}

var _ provider.Section = (*Section)(nil)

func (s *Section) Key() string                   { return s.key }
func (s *Section) Title() string                 { return s.title }
func (s *Section) MediaKind() provider.MediaKind { return s.kind }

// AddItem stages an item in the section.
func (s *Section) AddItem(item *Item) *Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.section = s
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now()
	}
	s.entries = append(s.entries, item)
	return item
}

func (s *Section) items(filter provider.ItemFilter) []provider.Media {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allowed map[string]struct{}
	if len(filter.Keys) > 0 {
		allowed = make(map[string]struct{}, len(filter.Keys))
		for _, k := range filter.Keys {
			allowed[k] = struct{}{}
		}
	}

	var out []provider.Media
	for _, item := range s.entries {
		if filter.UpdatedSince != nil && item.UpdatedAt.Before(*filter.UpdatedSince) {
			continue
		}
		if filter.WatchedOnly && item.Views == 0 {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[item.ItemKey]; !ok {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// Item is an in-memory media item.
type Item struct {
	ItemKey     string
	Kind        provider.MediaKind
	ItemTitle   string
	Watching    bool
	Watchlist   bool
	Poster      string
	Rating      int
	Rated       bool
	Views       int
	ViewEvents  []provider.HistoryEntry
	ExternalIDs []provider.ExternalID
	ReviewText  string
	UpdatedAt   time.Time

	section *Section
}

var _ provider.Media = (*Item)(nil)

func (i *Item) Key() string                   { return i.ItemKey }
func (i *Item) MediaKind() provider.MediaKind { return i.Kind }
func (i *Item) Title() string                 { return i.ItemTitle }
func (i *Item) OnWatching() bool              { return i.Watching }
func (i *Item) OnWatchlist() bool             { return i.Watchlist }
func (i *Item) PosterImage() string           { return i.Poster }
func (i *Item) ViewCount() int                { return i.Views }
func (i *Item) IDs() []provider.ExternalID    { return i.ExternalIDs }
func (i *Item) Section() provider.Section     { return i.section }

func (i *Item) UserRating() (int, bool) {
	return i.Rating, i.Rated
}

func (i *Item) History(ctx context.Context) ([]provider.HistoryEntry, error) {
	return i.ViewEvents, nil
}

func (i *Item) Review(ctx context.Context) (string, error) {
	return i.ReviewText, nil
}
