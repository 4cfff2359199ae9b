package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
)

type apiError struct {
	status  int
	message string
}

var errorStatusMap = map[error]apiError{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrInvalidDraft:            {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgInvalidEmailPassword},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrTokenCreationFailed:     {http.StatusInternalServerError, app.MsgLoginFailed},
	service.ErrEmailAlreadyExists:      {http.StatusConflict, app.MsgEmailAlreadyExists},
	service.ErrStoryNotFound:           {http.StatusNotFound, app.MsgStoryNotFound},
	service.ErrNotStoryOwner:           {http.StatusForbidden, app.MsgNotStoryOwner},

	store.ErrEmailAlreadyExists: {http.StatusConflict, app.MsgEmailAlreadyExists},
	store.ErrStoryNotFound:      {http.StatusNotFound, app.MsgStoryNotFound},
	store.ErrNotStoryOwner:      {http.StatusForbidden, app.MsgNotStoryOwner},
	store.ErrMediaNotFound:      {http.StatusNotFound, app.MsgMediaNotFound},
	store.ErrInvalidMediaName:   {http.StatusNotFound, app.MsgMediaNotFound},
}

// statusFromError resolves the HTTP status and the envelope message for err.
// Unknown errors become 500 so that internals never leak to the client.
func statusFromError(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusBadRequest, app.MsgPhotoTooLarge
	}

	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
