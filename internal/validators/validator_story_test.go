// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func validDraft() models.StoryDraft {
	return models.StoryDraft{
		Description: "sunset at the pier",
		Photo:       []byte{0xff, 0xd8},
		PhotoName:   "sunset.jpg",
	}
}

func TestNewStoryValidator(t *testing.T) {
	require.NotNil(t, NewStoryValidator())
}

func TestValidate_Draft(t *testing.T) {
	v := NewStoryValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(d *models.StoryDraft)
		wantErr error
	}{
		{name: "valid without location", mutate: func(d *models.StoryDraft) {}},
		{name: "valid with location", mutate: func(d *models.StoryDraft) {
			d.Lat, d.Lon = ptr(-6.2), ptr(106.8)
		}},
		{name: "missing description", mutate: func(d *models.StoryDraft) {
			d.Description = ""
		}, wantErr: ErrInvalidInput},
		{name: "empty photo", mutate: func(d *models.StoryDraft) {
			d.Photo = nil
		}, wantErr: ErrInvalidInput},
		{name: "lat out of range", mutate: func(d *models.StoryDraft) {
			d.Lat, d.Lon = ptr(91), ptr(0)
		}, wantErr: ErrInvalidInput},
		{name: "lon out of range", mutate: func(d *models.StoryDraft) {
			d.Lat, d.Lon = ptr(0), ptr(-180.5)
		}, wantErr: ErrInvalidInput},
		{name: "only lat", mutate: func(d *models.StoryDraft) {
			d.Lat = ptr(10)
		}, wantErr: ErrIncompleteLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := v.Validate(ctx, d)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Pointer(t *testing.T) {
	d := validDraft()
	d.Description = ""

	err := NewStoryValidator().Validate(context.Background(), &d)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Description")
}

func TestValidate_PartialFields(t *testing.T) {
	d := validDraft()
	d.Photo = nil

	v := NewStoryValidator()
	assert.NoError(t, v.Validate(context.Background(), d, FieldDescription))
	assert.ErrorIs(t, v.Validate(context.Background(), d, FieldPhoto), ErrInvalidInput)
}

func TestValidate_Story(t *testing.T) {
	v := NewStoryValidator()

	assert.NoError(t, v.Validate(context.Background(), models.Story{ID: "s1"}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.Story{}), ErrInvalidInput)
}

func TestValidate_Accounts(t *testing.T) {
	v := NewStoryValidator()
	ctx := context.Background()

	user := models.User{Name: "Ann", Email: "ann@example.com", Password: "password1"}
	assert.NoError(t, v.Validate(ctx, user))

	user.Password = "short"
	assert.ErrorIs(t, v.Validate(ctx, user), ErrInvalidInput)

	user.Email = "not-an-email"
	assert.ErrorIs(t, v.Validate(ctx, &user, FieldEmail), ErrInvalidInput)

	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "ann@example.com", Password: "x"}))
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "ann@example.com"}), ErrInvalidInput)
}

func TestValidate_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewStoryValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
