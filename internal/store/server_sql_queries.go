package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-story-sync/models"
)

const (
	storiesTable = "stories"
	usersTable   = "users"
)

var storyColumns = []string{
	"story_id",
	"owner_id",
	"author_name",
	"description",
	"photo_url",
	"lat",
	"lon",
	"created_at",
}

var userColumns = []string{
	"user_id",
	"name",
	"email",
	"password_hash",
	"created_at",
}

func selectStories(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(storyColumns...).
		From(storiesTable).
		OrderBy("created_at DESC", "story_id ASC")
}

func insertStory(b sq.StatementBuilderType, s models.Story) sq.InsertBuilder {
	var lat, lon sql.NullFloat64
	if s.Location != nil {
		lat = sql.NullFloat64{Float64: s.Location.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: s.Location.Lon, Valid: true}
	}

	return b.Insert(storiesTable).
		Columns("story_id", "owner_id", "author_name", "description", "photo_url", "lat", "lon").
		Values(s.ID, s.OwnerID, s.AuthorName, s.Description, s.MediaRef, lat, lon).
		Suffix("RETURNING created_at")
}

func scanStory(row rowScanner) (models.Story, error) {
	var (
		s        models.Story
		lat, lon sql.NullFloat64
	)

	if err := row.Scan(&s.ID, &s.OwnerID, &s.AuthorName, &s.Description, &s.MediaRef, &lat, &lon, &s.CreatedAt); err != nil {
		return models.Story{}, err
	}

	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.CreatedAt
	if lat.Valid && lon.Valid {
		s.Location = &models.Location{Lat: lat.Float64, Lon: lon.Float64}
	}

	return s, nil
}
