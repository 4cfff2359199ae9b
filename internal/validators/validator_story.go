package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-story-sync/models"
	"github.com/go-playground/validator/v10"
)

const (
	FieldDescription = "Description"
	FieldPhoto       = "Photo"
	FieldPhotoName   = "PhotoName"
	FieldLat         = "Lat"
	FieldLon         = "Lon"
	FieldEmail       = "Email"
	FieldPassword    = "Password"
	FieldName        = "Name"
	FieldID          = "ID"
)

// StoryValidator validates story drafts, stored stories and account requests
// using struct tags.
type StoryValidator struct {
	validate *validator.Validate
}

func NewStoryValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(draftLocationValidation, models.StoryDraft{})

	return &StoryValidator{validate: v}
}

// Validate checks obj against its validation tags. When fields are given only
// those struct fields are checked.
func (v *StoryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StoryDraft, models.Story, models.User, models.LoginRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.StoryDraft:
		return v.Validate(ctx, *value, fields...)
	case *models.Story:
		return v.Validate(ctx, *value, fields...)
	case *models.User:
		return v.Validate(ctx, *value, fields...)
	case *models.LoginRequest:
		return v.Validate(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *StoryValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	}

	return translate(err)
}

// draftLocationValidation rejects a draft carrying only one coordinate.
func draftLocationValidation(sl validator.StructLevel) {
	draft := sl.Current().Interface().(models.StoryDraft)
	if (draft.Lat == nil) != (draft.Lon == nil) {
		sl.ReportError(draft.Lat, FieldLat, FieldLat, "latlon", "")
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "latlon" {
			return ErrIncompleteLocation
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}
