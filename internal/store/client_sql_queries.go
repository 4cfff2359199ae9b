// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

const localStoriesTable = "stories"

var localStoryColumns = []string{
	"id",
	"author_name",
	"description",
	"media_ref",
	"created_at",
	"updated_at",
	"lat",
	"lon",
	"owner_id",
}

// upsertLocalStorySuffix replaces every column on conflict. created_at is only
// replaced when the first extra argument is 1.
const upsertLocalStorySuffix = `ON CONFLICT(id) DO UPDATE SET
	author_name = excluded.author_name,
	description = excluded.description,
	media_ref   = excluded.media_ref,
	created_at  = CASE WHEN ? = 1 THEN excluded.created_at ELSE stories.created_at END,
	updated_at  = excluded.updated_at,
	lat         = excluded.lat,
	lon         = excluded.lon,
	owner_id    = excluded.owner_id,
	fingerprint = excluded.fingerprint`

func selectLocalStories(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(localStoryColumns...).
		From(localStoriesTable).
		OrderBy("created_at DESC", "id ASC")
}

// upsertLocalStory builds the insert-or-replace statement of one story.
// createdAt is used for a new row; overrideCreated controls whether it also
// replaces the created_at of an existing row.
func upsertLocalStory(b sq.StatementBuilderType, s models.Story, createdAt, updatedAt time.Time, overrideCreated bool) sq.InsertBuilder {
	var lat, lon sql.NullFloat64
	if s.Location != nil {
		lat = sql.NullFloat64{Float64: s.Location.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: s.Location.Lon, Valid: true}
	}

	override := 0
	if overrideCreated {
		override = 1
	}

	return b.Insert(localStoriesTable).
		Columns(append(localStoryColumns, "fingerprint")...).
		Values(
			s.ID,
			s.AuthorName,
			s.Description,
			s.MediaRef,
			createdAt.UTC().UnixNano(),
			updatedAt.UTC().UnixNano(),
			lat,
			lon,
			s.OwnerID,
			utils.StoryFingerprint(s),
		).
		Suffix(upsertLocalStorySuffix, override)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocalStory(row rowScanner) (models.Story, error) {
	var (
		s                    models.Story
		createdAt, updatedAt int64
		lat, lon             sql.NullFloat64
	)

	if err := row.Scan(&s.ID, &s.AuthorName, &s.Description, &s.MediaRef, &createdAt, &updatedAt, &lat, &lon, &s.OwnerID); err != nil {
		return models.Story{}, err
	}

	s.CreatedAt = time.Unix(0, createdAt).UTC()
	s.UpdatedAt = time.Unix(0, updatedAt).UTC()
	if lat.Valid && lon.Valid {
		s.Location = &models.Location{Lat: lat.Float64, Lon: lon.Float64}
	}

	return s, nil
}
