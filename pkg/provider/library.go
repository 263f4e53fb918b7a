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

package provider

import (
	"context"
	"fmt"
	"time"
)

// MediaKind is a high-level media kind within a library provider.
type MediaKind string

const (
	MediaKindMovie   MediaKind = "movie"
	MediaKindShow    MediaKind = "show"
	MediaKindSeason  MediaKind = "season"
	MediaKindEpisode MediaKind = "episode"
)

// IDNamespace names an external identifier scheme recognized by the
// AniBridge mappings database.
type IDNamespace string

const (
	IDNamespaceAniDB   IDNamespace = "anidb"
	IDNamespaceAniList IDNamespace = "anilist"
	IDNamespaceIMDB    IDNamespace = "imdb"
	IDNamespaceMAL     IDNamespace = "mal"
	IDNamespacePlex    IDNamespace = "plex"
	IDNamespaceTMDB    IDNamespace = "tmdb"
	IDNamespaceTVDB    IDNamespace = "tvdb"
)

// ExternalID is an external identifier for a media item.
type ExternalID struct {
	Namespace IDNamespace
	Value     string
}

func (id ExternalID) String() string {
	return fmt.Sprintf("%s: %s", id.Namespace, id.Value)
}

// HistoryEntry is a single view event recorded for a media item.
type HistoryEntry struct {
	Key      string
	ViewedAt time.Time
}

// Entity is the base contract for objects surfaced by a library provider.
type Entity interface {
	Key() string
	MediaKind() MediaKind
	Title() string
}

// Section is a logical collection within the media library.
type Section interface {
	Entity
}

// Media is a watchable item within a library section.
type Media interface {
	Entity

	// OnWatching reports whether the item is eligible for the current
	// watching status.
	OnWatching() bool

	// OnWatchlist reports whether the item is eligible for the planning
	// status.
	OnWatchlist() bool

	// PosterImage returns the primary poster or cover image URL, or ""
	// when unavailable.
	PosterImage() string

	// UserRating returns the user rating on a 0-100 scale; ok is false
	// when the item is unrated.
	UserRating() (rating int, ok bool)

	// ViewCount returns the number of times the item has been viewed,
	// including views of child items.
	ViewCount() int

	// History returns the user's view events for the item, including
	// events for child items.
	History(ctx context.Context) ([]HistoryEntry, error)

	// IDs returns external identifiers whose namespaces are recognizable
	// to the AniBridge mappings database.
	IDs() []ExternalID

	// Review returns the user's review text, or "" when not reviewed.
	Review(ctx context.Context) (string, error)

	// Section returns the library section the item belongs to.
	Section() Section
}

// Movie is a movie item in a media library.
type Movie interface {
	Media
}

// Show is an episodic series item in a media library.
type Show interface {
	Media

	// Ordering returns the show's episode ordering method. Only "tmdb"
	// and "tvdb" are supported by the mappings database; "" means unknown.
	Ordering() string

	// Episodes returns child episodes belonging to the show.
	Episodes() []Episode
}

// Episode is a single episode of a show.
type Episode interface {
	Media

	SeasonNumber() int
	EpisodeNumber() int
}

// ItemFilter narrows the result of LibraryProvider.Items. The zero value
// matches every item in the section.
type ItemFilter struct {
	// UpdatedSince keeps only items modified at or after the given time.
	UpdatedSince *time.Time

	// WatchedOnly keeps only items with at least one view.
	WatchedOnly bool

	// Keys, when non-empty, is an explicit allow-list of item keys.
	Keys []string
}

// LibraryProvider exposes the contents of a media library, such as a
// Plex or Jellyfin server.
type LibraryProvider interface {
	Provider

	// Sections lists the library's sections.
	Sections(ctx context.Context) ([]Section, error)

	// Items lists media items within a section, narrowed by the filter.
	Items(ctx context.Context, section Section, filter ItemFilter) ([]Media, error)
}
