// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the story API.
//
// [RemoteSource] is the read/write view of the remote collection used by the
// sync engine; [NewHTTPRemoteSource] implements it over REST with resty.
// [StreamListener] follows the server's websocket change stream and the
// probers report reachability to the network monitor.
//
// HTTP status codes are mapped to the sentinel errors in errors.go so callers
// can use [errors.Is] (e.g. [ErrUnauthorized] for 401); transport failures
// wrap [ErrNetwork].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_source_mock.go -package=mock

// RemoteSource is the authoritative remote story collection.
type RemoteSource interface {
	// FetchAll returns the full current snapshot.
	FetchAll(ctx context.Context) ([]models.Story, error)

	// FetchByID returns one story; [ErrNotFound] when the API has none.
	FetchByID(ctx context.Context, id string) (models.Story, error)

	// Create uploads a new story. The returned story has an empty ID when the
	// API does not echo the created resource.
	Create(ctx context.Context, draft models.StoryDraft) (models.Story, error)

	// Delete removes a story owned by the current user.
	Delete(ctx context.Context, id string) error

	// Ping checks that the API answers.
	Ping(ctx context.Context) error

	// Register creates an account. It does not log in.
	Register(ctx context.Context, user models.User) error

	// Login exchanges credentials for a bearer token and stores it via
	// SetToken.
	Login(ctx context.Context, email, password string) (models.LoginResult, error)

	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token, or "".
	Token() string

	// UserID returns the subject of the current token, or "".
	UserID() string
}
