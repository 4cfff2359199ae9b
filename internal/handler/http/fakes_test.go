package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/models"
)

// ── mocks ───────────────────────────────────────────────────────────────────

type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, email, password string) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, token string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if m.registerUserFn != nil {
		return m.registerUserFn(ctx, user)
	}
	user.ID = "user-1"
	return user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return models.User{ID: "user-1", Name: "Ann", Email: email}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: stubToken, UserID: user.ID}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, token string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, token)
	}
	if token != stubToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{UserID: "user-1"}, nil
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

type mockFeedService struct {
	listFn   func(ctx context.Context) ([]models.Story, error)
	getFn    func(ctx context.Context, id string) (models.Story, error)
	createFn func(ctx context.Context, ownerID string, draft models.StoryDraft) (models.Story, error)
	deleteFn func(ctx context.Context, id, ownerID string) error
	mediaFn  func(ctx context.Context, name string) (io.ReadCloser, error)
}

func (m *mockFeedService) ListStories(ctx context.Context) ([]models.Story, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockFeedService) GetStory(ctx context.Context, id string) (models.Story, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Story{}, service.ErrStoryNotFound
}

func (m *mockFeedService) CreateStory(ctx context.Context, ownerID string, draft models.StoryDraft) (models.Story, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, draft)
	}
	return models.Story{ID: "story-1", OwnerID: ownerID, Description: draft.Description}, nil
}

func (m *mockFeedService) DeleteStory(ctx context.Context, id, ownerID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

func (m *mockFeedService) OpenMedia(ctx context.Context, name string) (io.ReadCloser, error) {
	if m.mediaFn != nil {
		return m.mediaFn(ctx, name)
	}
	return nil, errors.New("no media")
}

// ── helpers ─────────────────────────────────────────────────────────────────

const stubToken = "valid-token"

func newTestHandler(svcs *service.Services) *Handler {
	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.FeedService == nil {
		svcs.FeedService = &mockFeedService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test-version"}
	}
	if svcs.Events == nil {
		svcs.Events = service.NewEventHub(logger.Nop())
	}
	return NewHandler(svcs, logger.Nop())
}

func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+stubToken)
	return req
}

type formFields map[string]string

// multipartRequest builds POST /v1/stories. An empty photoName omits the
// file part.
func multipartRequest(t *testing.T, fields formFields, photoName string, photo []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if photoName != "" {
		part, err := mw.CreateFormFile("photo", photoName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(photo)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/stories", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return authed(req)
}
