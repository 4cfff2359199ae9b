// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

// Client is a runnable client process.
type Client interface {
	// Run blocks until the user quits or the process is interrupted.
	Run() error
}

// UI is the part of the terminal front end the app drives.
type UI interface {
	AuthFlow(ctx context.Context) (models.LoginResult, error)
	MainLoop(ctx context.Context) error
}

var _ Client = (*App)(nil)
