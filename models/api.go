// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// APIResponse is the common part of every story API response. A true Error
// means the request was rejected and Message carries the reason.
type APIResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// APIStory is the wire form of a story.
type APIStory struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photoUrl"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lon         *float64   `json:"lon,omitempty"`
	OwnerID     string     `json:"ownerId,omitempty"`
}

// ToStory converts the wire form to the domain model. A location is only set
// when both coordinates are present.
func (s APIStory) ToStory() Story {
	story := Story{
		ID:          s.ID,
		AuthorName:  s.Name,
		Description: s.Description,
		MediaRef:    s.PhotoURL,
		OwnerID:     s.OwnerID,
	}
	if s.CreatedAt != nil {
		story.CreatedAt = s.CreatedAt.UTC()
	}
	if s.Lat != nil && s.Lon != nil {
		story.Location = &Location{Lat: *s.Lat, Lon: *s.Lon}
	}
	return story
}

// NewAPIStory converts a domain story to its wire form.
func NewAPIStory(s Story) APIStory {
	out := APIStory{
		ID:          s.ID,
		Name:        s.AuthorName,
		Description: s.Description,
		PhotoURL:    s.MediaRef,
		OwnerID:     s.OwnerID,
	}
	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt.UTC()
		out.CreatedAt = &createdAt
	}
	if s.Location != nil {
		lat, lon := s.Location.Lat, s.Location.Lon
		out.Lat, out.Lon = &lat, &lon
	}
	return out
}

// StoriesData is the nested shape of a list response.
type StoriesData struct {
	Stories []APIStory `json:"stories"`
}

// StoriesResponse is returned by GET /v1/stories. Older deployments put the
// list under "listStory", newer ones under "data.stories".
type StoriesResponse struct {
	APIResponse
	ListStory []APIStory   `json:"listStory,omitempty"`
	Data      *StoriesData `json:"data,omitempty"`
}

// Stories returns the list regardless of which shape the server used.
func (r StoriesResponse) Stories() []Story {
	items := r.ListStory
	if len(items) == 0 && r.Data != nil {
		items = r.Data.Stories
	}

	stories := make([]Story, 0, len(items))
	for _, item := range items {
		stories = append(stories, item.ToStory())
	}
	return stories
}

// StoryData is the nested shape of a single story response.
type StoryData struct {
	Story *APIStory `json:"story,omitempty"`
}

// StoryResponse is returned by GET /v1/stories/{id} and POST /v1/stories.
type StoryResponse struct {
	APIResponse
	Story *APIStory  `json:"story,omitempty"`
	Data  *StoryData `json:"data,omitempty"`
}

// Item returns the story regardless of which shape the server used, and false
// when the response carries none.
func (r StoryResponse) Item() (Story, bool) {
	if r.Story != nil {
		return r.Story.ToStory(), true
	}
	if r.Data != nil && r.Data.Story != nil {
		return r.Data.Story.ToStory(), true
	}
	return Story{}, false
}

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued token.
type LoginResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// LoginResponse is returned by POST /v1/login.
type LoginResponse struct {
	APIResponse
	LoginResult *LoginResult `json:"loginResult,omitempty"`
}

// StoryEventType names a change pushed over the live stream.
type StoryEventType string

const (
	StoryEventCreated StoryEventType = "created"
	StoryEventDeleted StoryEventType = "deleted"
)

// StoryEvent is a message of the live stream. It only announces that the
// collection changed; clients resynchronize to learn the content.
type StoryEvent struct {
	Type    StoryEventType `json:"type"`
	StoryID string         `json:"storyId"`
	At      time.Time      `json:"at"`
}
