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
	"time"
)

// WatchStatus is the state of a media item on a user's tracking list.
type WatchStatus string

const (
	WatchStatusWatching  WatchStatus = "watching"
	WatchStatusCompleted WatchStatus = "completed"
	WatchStatusPlanning  WatchStatus = "planning"
	WatchStatusPaused    WatchStatus = "paused"
	WatchStatusDropped   WatchStatus = "dropped"
	WatchStatusRepeating WatchStatus = "repeating"
)

// ListEntry is a single item on a user's tracking list.
type ListEntry struct {
	Key       string
	Title     string
	Status    WatchStatus
	Progress  int
	Repeats   int
	Rating    int // 0-100 scale, 0 when unrated
	IDs       []ExternalID
	UpdatedAt time.Time
}

// ListProvider exposes a user's media tracking list, such as an AniList
// or MyAnimeList account.
type ListProvider interface {
	Provider

	// Entries returns the user's list entries. When statuses is empty,
	// entries of every status are returned.
	Entries(ctx context.Context, statuses ...WatchStatus) ([]ListEntry, error)

	// Update writes an entry's status, progress and rating back to the
	// list, creating the entry when it does not exist yet.
	Update(ctx context.Context, entry ListEntry) error
}
