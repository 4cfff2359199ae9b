// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

var errIncompleteCoordinates = errors.New("lat and lon must be sent together")

func (h *Handler) listStories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	stories, err := h.services.FeedService.ListStories(r.Context())
	if err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "Handler.listStories").Send()
		utils.WriteAPIError(w, msg, status)
		return
	}

	resp := models.StoriesResponse{
		APIResponse: models.APIResponse{Message: app.MsgStoriesFetched},
		ListStory:   make([]models.APIStory, 0, len(stories)),
	}
	for _, story := range stories {
		resp.ListStory = append(resp.ListStory, models.NewAPIStory(story))
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getStory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	story, err := h.services.FeedService.GetStory(r.Context(), id)
	if err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "Handler.getStory").Str("story_id", id).Send()
		utils.WriteAPIError(w, msg, status)
		return
	}

	apiStory := models.NewAPIStory(story)
	utils.WriteJSON(w, models.StoryResponse{
		APIResponse: models.APIResponse{Message: app.MsgStoriesFetched},
		Story:       &apiStory,
	}, http.StatusOK)
}

// createStory accepts a multipart form with the photo file under "photo",
// a "description" and optionally both "lat" and "lon".
func (h *Handler) createStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteAPIError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoSize)
	if err := r.ParseMultipartForm(h.maxPhotoSize); err != nil {
		status, msg := statusFromError(err)
		if status == http.StatusInternalServerError {
			status, msg = http.StatusBadRequest, app.MsgInvalidDataProvided
		}
		log.Err(err).Msg("cannot parse multipart form")
		utils.WriteAPIError(w, msg, status)
		return
	}

	draft, err := draftFromForm(r)
	if err != nil {
		log.Err(err).Msg("invalid story form")
		if errors.Is(err, http.ErrMissingFile) {
			utils.WriteAPIError(w, app.MsgPhotoRequired, http.StatusBadRequest)
			return
		}
		utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	created, err := h.services.FeedService.CreateStory(ctx, userID, draft)
	if err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "Handler.createStory").Int("status", status).Send()
		utils.WriteAPIError(w, msg, status)
		return
	}

	apiStory := models.NewAPIStory(created)
	utils.WriteJSON(w, models.StoryResponse{
		APIResponse: models.APIResponse{Message: app.MsgStoryCreated},
		Story:       &apiStory,
	}, http.StatusCreated)
}

func (h *Handler) deleteStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteAPIError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	if err := h.services.FeedService.DeleteStory(ctx, id, userID); err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "Handler.deleteStory").Str("story_id", id).Send()
		utils.WriteAPIError(w, msg, status)
		return
	}

	utils.WriteJSON(w, models.APIResponse{Message: app.MsgStoryDeleted}, http.StatusOK)
}

func (h *Handler) getMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	name := chi.URLParam(r, "name")

	media, err := h.services.FeedService.OpenMedia(r.Context(), name)
	if err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "Handler.getMedia").Str("name", name).Send()
		utils.WriteAPIError(w, msg, status)
		return
	}
	defer media.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if _, err = io.Copy(w, media); err != nil {
		log.Err(err).Str("name", name).Msg("media copy interrupted")
	}
}

func draftFromForm(r *http.Request) (models.StoryDraft, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		return models.StoryDraft{}, err
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		return models.StoryDraft{}, err
	}

	draft := models.StoryDraft{
		Description: r.FormValue("description"),
		Photo:       photo,
		PhotoName:   header.Filename,
	}

	lat, lon := strings.TrimSpace(r.FormValue("lat")), strings.TrimSpace(r.FormValue("lon"))
	switch {
	case lat == "" && lon == "":
		return draft, nil
	case lat == "" || lon == "":
		return models.StoryDraft{}, errIncompleteCoordinates
	}

	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.StoryDraft{}, err
	}
	lonValue, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.StoryDraft{}, err
	}
	draft.Lat, draft.Lon = &latValue, &lonValue

	return draft, nil
}
