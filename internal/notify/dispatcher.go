// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers "new story" notifications. The sync engine calls a
// [Dispatcher] once per novel story and never waits on or retries it.
package notify

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=dispatcher.go -destination=../mock/dispatcher_mock.go -package=mock

// Dispatcher surfaces a novel story to the user.
type Dispatcher interface {
	Notify(ctx context.Context, story models.Story) error
}

// DispatcherFunc adapts a function to [Dispatcher].
type DispatcherFunc func(ctx context.Context, story models.Story) error

func (f DispatcherFunc) Notify(ctx context.Context, story models.Story) error {
	return f(ctx, story)
}

// LogDispatcher writes the notification to the log.
type LogDispatcher struct {
	logger *logger.Logger
}

func NewLogDispatcher(logger *logger.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Notify(ctx context.Context, story models.Story) error {
	d.logger.Info().
		Str("story_id", story.ID).
		Str("author", story.AuthorName).
		Time("created_at", story.CreatedAt).
		Msg("new story")
	return nil
}

// MultiDispatcher fans a notification out to every dispatcher. All are
// called even when some fail; the failures are joined.
type MultiDispatcher []Dispatcher

func (m MultiDispatcher) Notify(ctx context.Context, story models.Story) error {
	var errs []error
	for _, d := range m {
		if err := d.Notify(ctx, story); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
