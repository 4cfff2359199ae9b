// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Location is an optional geographic point attached to a story.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Story is the unit kept in sync between the remote story API and the local
// replica.
//
// A zero CreatedAt means the value is unknown. The local store assigns one on
// first write and never lets a later reconciliation overwrite it.
type Story struct {
	// ID is the opaque primary key assigned by the story API.
	ID string `json:"id" validate:"required"`

	// AuthorName is the display name of the creator.
	AuthorName string `json:"name"`

	// Description is the free text body of the story.
	Description string `json:"description"`

	// MediaRef is the URL of the attached photo.
	MediaRef string `json:"photoUrl"`

	// CreatedAt is set once when the story is created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every local write.
	UpdatedAt time.Time `json:"updatedAt"`

	// Location is nil when the story carries no coordinates.
	Location *Location `json:"location,omitempty"`

	// OwnerID identifies the authenticated creator when it is known.
	OwnerID string `json:"ownerId,omitempty"`
}

// StoryIDs returns the ids of stories in their original order.
func StoryIDs(stories []Story) []string {
	ids := make([]string, 0, len(stories))
	for _, s := range stories {
		ids = append(ids, s.ID)
	}
	return ids
}

// StoryDraft is the input of the create flow: a photo with a description and
// an optional location.
type StoryDraft struct {
	Description string   `validate:"required"`
	Photo       []byte   `validate:"required,min=1"`
	PhotoName   string   `validate:"required"`
	Lat         *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon         *float64 `validate:"omitempty,gte=-180,lte=180"`
}

// CompareNewestFirst orders stories by CreatedAt descending, ties broken by
// ID ascending. It is usable with slices.SortFunc.
func CompareNewestFirst(a, b Story) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
