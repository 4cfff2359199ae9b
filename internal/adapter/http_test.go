// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

func newTestRemote(t *testing.T, serverURL string) *httpRemoteSource {
	t.Helper()

	r, err := NewHTTPRemoteSource(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return r.(*httpRemoteSource)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPRemoteSource ─────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://api.example.com/ ", want: "https://api.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

// ── FetchAll ────────────────────────────────────────────────────────────────

func TestFetchAll_ListStoryShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/stories", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))

		_, _ = io.WriteString(w, `{"error":false,"message":"ok","listStory":[
			{"id":"a","name":"Ann","description":"d","photoUrl":"http://p/a.jpg","createdAt":"2026-03-01T10:00:00Z","lat":1.5,"lon":2.5},
			{"id":"b","name":"Bob","description":"e","photoUrl":"http://p/b.jpg","lat":1.5}
		]}`)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	remote.SetToken(" tkn ")

	stories, err := remote.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 2)

	assert.Equal(t, "Ann", stories[0].AuthorName)
	assert.Equal(t, "http://p/a.jpg", stories[0].MediaRef)
	assert.Equal(t, &models.Location{Lat: 1.5, Lon: 2.5}, stories[0].Location)
	assert.True(t, stories[0].CreatedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))

	assert.Nil(t, stories[1].Location, "a single coordinate is no location")
	assert.True(t, stories[1].CreatedAt.IsZero())
}

func TestFetchAll_DataStoriesShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":false,"data":{"stories":[{"id":"x","name":"X"}]}}`)
	}))
	defer srv.Close()

	stories, err := newTestRemote(t, srv.URL).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, models.StoryIDs(stories))
}

func TestFetchAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rejected envelope", http.StatusOK, `{"error":true,"message":"token expired"}`, ErrRemoteRejected},
		{"malformed body", http.StatusOK, `<html>`, ErrMalformedResponse},
		{"unauthorized", http.StatusUnauthorized, `{"error":true,"message":"missing token"}`, ErrUnauthorized},
		{"server error", http.StatusInternalServerError, `boom`, ErrInternalServerError},
		{"bad gateway", http.StatusBadGateway, ``, ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestRemote(t, srv.URL).FetchAll(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchAll_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestRemote(t, url).FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchAll_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := newTestRemote(t, srv.URL).FetchAll(ctx)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ── FetchByID ───────────────────────────────────────────────────────────────

func TestFetchByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/stories/a":
			_, _ = io.WriteString(w, `{"error":false,"story":{"id":"a","name":"Ann"}}`)
		case "/v1/stories/b":
			_, _ = io.WriteString(w, `{"error":false,"data":{"story":{"id":"b","name":"Bob"}}}`)
		case "/v1/stories/empty":
			_, _ = io.WriteString(w, `{"error":false}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	ctx := context.Background()

	a, err := remote.FetchByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Ann", a.AuthorName)

	b, err := remote.FetchByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Bob", b.AuthorName)

	_, err = remote.FetchByID(ctx, "empty")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = remote.FetchByID(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestCreate_Multipart(t *testing.T) {
	lat, lon := -6.2, 106.8

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "sunset", r.FormValue("description"))
		assert.Equal(t, "-6.2", r.FormValue("lat"))
		assert.Equal(t, "106.8", r.FormValue("lon"))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "pic.jpg", header.Filename)
		assert.Equal(t, "jpeg", string(data))

		writeJSON(t, w, http.StatusCreated, models.StoryResponse{
			Story: &models.APIStory{ID: "new-1", Name: "Ann", Description: "sunset"},
		})
	}))
	defer srv.Close()

	story, err := newTestRemote(t, srv.URL).Create(context.Background(), models.StoryDraft{
		Description: "sunset",
		Photo:       []byte("jpeg"),
		PhotoName:   "pic.jpg",
		Lat:         &lat,
		Lon:         &lon,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", story.ID)
}

func TestCreate_LargePhotoIsDownscaled(t *testing.T) {
	photo := noisyPNG(t, 1600, 1200)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "big.jpg", header.Filename)
		assert.Less(t, len(data), len(photo))

		writeJSON(t, w, http.StatusCreated, models.StoryResponse{
			Story: &models.APIStory{ID: "new-2", Description: "big"},
		})
	}))
	defer srv.Close()

	story, err := newTestRemote(t, srv.URL).Create(context.Background(), models.StoryDraft{
		Description: "big",
		Photo:       photo,
		PhotoName:   "big.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-2", story.ID)
}

func TestCreate_NoEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.FormValue("lat"))
		_, _ = io.WriteString(w, `{"error":false,"message":"Story created successfully"}`)
	}))
	defer srv.Close()

	story, err := newTestRemote(t, srv.URL).Create(context.Background(), models.StoryDraft{
		Description: "no location",
		Photo:       []byte("x"),
		PhotoName:   "x.jpg",
	})
	require.NoError(t, err)
	assert.Empty(t, story.ID)
	assert.Equal(t, "no location", story.Description)
	assert.Nil(t, story.Location)
}

func TestCreate_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.APIResponse{Error: true, Message: "photo too large"})
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).Create(context.Background(), models.StoryDraft{Photo: []byte("x"), PhotoName: "x.jpg"})
	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "photo too large")
}

// ── Delete / Ping ───────────────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/v1/stories/mine" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	assert.NoError(t, remote.Delete(context.Background(), "mine"))
	assert.ErrorIs(t, remote.Delete(context.Background(), "theirs"), ErrForbidden)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ping", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	remote.SetToken("tkn")
	assert.NoError(t, remote.Ping(context.Background()))
	assert.NoError(t, NewHTTPProber(remote).Probe(context.Background()))
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] == "taken@example.com" {
			writeJSON(t, w, http.StatusConflict, models.APIResponse{Error: true, Message: "Email is already taken"})
			return
		}
		assert.Equal(t, "secret123", body["password"])
		writeJSON(t, w, http.StatusCreated, models.APIResponse{Message: "User created"})
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	ctx := context.Background()

	assert.NoError(t, remote.Register(ctx, models.User{Name: "Ann", Email: "ann@example.com", Password: "secret123"}))

	err := remote.Register(ctx, models.User{Email: "taken@example.com"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Email is already taken")
}

func TestLogin(t *testing.T) {
	token, err := utils.GenerateJWTToken("test", "user-42", time.Hour, "key")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "right" {
			writeJSON(t, w, http.StatusUnauthorized, models.APIResponse{Error: true, Message: "Invalid password"})
			return
		}
		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			LoginResult: &models.LoginResult{UserID: "user-42", Name: "Ann", Token: token.SignedString},
		})
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	ctx := context.Background()

	_, err = remote.Login(ctx, "ann@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, remote.Token())
	assert.Empty(t, remote.UserID())

	res, err := remote.Login(ctx, "ann@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.Name)
	assert.Equal(t, token.SignedString, remote.Token())
	assert.Equal(t, "user-42", remote.UserID())
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":false,"loginResult":{"userId":"u"}}`)
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).Login(context.Background(), "a@b.c", "p")
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}
