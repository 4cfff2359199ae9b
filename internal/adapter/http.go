package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

const (
	pathRegister = "/v1/register"
	pathLogin    = "/v1/login"
	pathStories  = "/v1/stories"
	pathPing     = "/v1/ping"
)

type httpRemoteSource struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteSource constructs an HTTP/REST implementation of
// [RemoteSource]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteSource(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteSource, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRemoteSource{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemoteSource) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteSource) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteSource) UserID() string {
	token := h.Token()
	if token == "" {
		return ""
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		h.logger.Warn().Err(err).Str("func", "httpRemoteSource.UserID").Msg("cannot read user id from token")
		return ""
	}
	return userID
}

// FetchAll implements [RemoteSource]. It GETs /v1/stories and normalises
// both list shapes of the API.
func (h *httpRemoteSource) FetchAll(ctx context.Context) ([]models.Story, error) {
	resp, err := h.authedRequest(ctx).Get(pathStories)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch stories: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var body models.StoriesResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: decode stories: %w", ErrMalformedResponse, err)
	}
	if err = checkEnvelope(body.APIResponse); err != nil {
		return nil, err
	}

	return body.Stories(), nil
}

// FetchByID implements [RemoteSource]. It GETs /v1/stories/{id}.
func (h *httpRemoteSource) FetchByID(ctx context.Context, id string) (models.Story, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Get(pathStories + "/{id}")
	if err != nil {
		return models.Story{}, fmt.Errorf("%w: fetch story: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Story{}, err
	}

	var body models.StoryResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Story{}, fmt.Errorf("%w: decode story: %w", ErrMalformedResponse, err)
	}
	if err = checkEnvelope(body.APIResponse); err != nil {
		return models.Story{}, err
	}

	story, ok := body.Item()
	if !ok {
		return models.Story{}, fmt.Errorf("%w: story %s", ErrNotFound, id)
	}
	return story, nil
}

// Create implements [RemoteSource]. It POSTs a multipart form with the
// description, the photo and the optional coordinates to /v1/stories.
func (h *httpRemoteSource) Create(ctx context.Context, draft models.StoryDraft) (models.Story, error) {
	form := map[string]string{"description": draft.Description}
	if draft.Lat != nil && draft.Lon != nil {
		form["lat"] = strconv.FormatFloat(*draft.Lat, 'f', -1, 64)
		form["lon"] = strconv.FormatFloat(*draft.Lon, 'f', -1, 64)
	}

	photo, photoName, err := optimizePhoto(draft.Photo, draft.PhotoName)
	if err != nil {
		h.logger.Warn().Err(err).
			Str("func", "httpRemoteSource.Create").
			Str("photo", draft.PhotoName).
			Msg("uploading photo as is")
	}

	resp, err := h.authedRequest(ctx).
		SetFileReader("photo", photoName, bytes.NewReader(photo)).
		SetFormData(form).
		Post(pathStories)
	if err != nil {
		return models.Story{}, fmt.Errorf("%w: create story: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Story{}, err
	}

	var body models.StoryResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Story{}, fmt.Errorf("%w: decode created story: %w", ErrMalformedResponse, err)
	}
	if err = checkEnvelope(body.APIResponse); err != nil {
		return models.Story{}, err
	}

	if story, ok := body.Item(); ok {
		return story, nil
	}

	// the API acknowledged without echoing the story
	story := models.Story{Description: draft.Description}
	if draft.Lat != nil && draft.Lon != nil {
		story.Location = &models.Location{Lat: *draft.Lat, Lon: *draft.Lon}
	}
	return story, nil
}

// Delete implements [RemoteSource]. It sends DELETE /v1/stories/{id}.
func (h *httpRemoteSource) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete(pathStories + "/{id}")
	if err != nil {
		return fmt.Errorf("%w: delete story: %w", ErrNetwork, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteSource) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(pathPing)
	if err != nil {
		return fmt.Errorf("%w: ping: %w", ErrNetwork, err)
	}

	return mapHTTPError(resp)
}

// Register implements [RemoteSource]. It POSTs name, email and password to
// /v1/register.
func (h *httpRemoteSource) Register(ctx context.Context, user models.User) error {
	var body models.APIResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"name":     user.Name,
			"email":    user.Email,
			"password": user.Password,
		}).
		Post(pathRegister)
	if err != nil {
		return fmt.Errorf("%w: register: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return fmt.Errorf("%w: decode register response: %w", ErrMalformedResponse, err)
	}
	return checkEnvelope(body)
}

// Login implements [RemoteSource]. On success the issued token is stored via
// SetToken.
func (h *httpRemoteSource) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post(pathLogin)
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: login: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResult{}, err
	}

	var body models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: decode login response: %w", ErrMalformedResponse, err)
	}
	if err = checkEnvelope(body.APIResponse); err != nil {
		return models.LoginResult{}, err
	}
	if body.LoginResult == nil || body.LoginResult.Token == "" {
		return models.LoginResult{}, fmt.Errorf("%w: login response without token", ErrMalformedResponse)
	}

	h.SetToken(body.LoginResult.Token)
	return *body.LoginResult, nil
}

func (h *httpRemoteSource) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
