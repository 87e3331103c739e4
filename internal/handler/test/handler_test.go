package test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialnetwork/internal/config"
	handlers "socialnetwork/internal/handler"
	"socialnetwork/internal/middleware"
	"socialnetwork/internal/mocks"
	"socialnetwork/internal/models"
	"socialnetwork/internal/monitoring"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
)

var (
	owner    = models.Caller{UserID: "user-1", Email: "ann@example.com"}
	stranger = models.Caller{UserID: "user-2", Email: "bob@example.com"}
	admin    = models.Caller{UserID: "user-9", Email: "admin@example.com", IsStaff: true}
)

const (
	annProfileID     = "5a0b7d3e-1c2f-4e8a-9b6d-0f1e2d3c4b01"
	bobProfileID     = "5a0b7d3e-1c2f-4e8a-9b6d-0f1e2d3c4b02"
	cidProfileID     = "5a0b7d3e-1c2f-4e8a-9b6d-0f1e2d3c4b03"
	missingProfileID = "5a0b7d3e-1c2f-4e8a-9b6d-0f1e2d3c4bff"
	helloPostID      = "c3d4e5f6-a7b8-4c9d-8e0f-112233445501"
	dayTwoPostID     = "c3d4e5f6-a7b8-4c9d-8e0f-112233445502"
	dayThreePostID   = "c3d4e5f6-a7b8-4c9d-8e0f-112233445503"
)

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck() error { return f.err }

type testEnv struct {
	t      *testing.T
	cfg    *config.Config
	repo   *mocks.Repository
	files  *mocks.Storage
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithDB(t, fakeDB{})
}

func newTestEnvWithDB(t *testing.T, db handlers.Pinger) *testEnv {
	cfg := &config.Config{
		JWTSecretKey:         "handler-test-secret",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: time.Hour,
		MaxUploadSize:        1 << 20,
	}

	repo := mocks.NewRepository()
	files := &mocks.Storage{}
	services := service.NewService(repo.Repository(), cfg, files)
	h := handlers.NewHandlers(services, db, cfg)

	router := handlers.NewRouter(h, monitoring.InstrumentHandler, middleware.AuthMiddleware(services.Auth))

	return &testEnv{t: t, cfg: cfg, repo: repo, files: files, router: router}
}

// token signs an access token for caller and lets the auth lookup find the user.
func (e *testEnv) token(caller models.Caller) string {
	e.knownUser(caller)
	return e.signed(caller)
}

func (e *testEnv) signed(caller models.Caller) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  caller.UserID,
		"email":    caller.Email,
		"is_staff": caller.IsStaff,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(e.cfg.JWTSecretKey))
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) knownUser(caller models.Caller) {
	e.repo.User.On("GetUserByID", mock.Anything, caller.UserID).
		Return(&models.User{UserID: caller.UserID, Email: caller.Email, IsStaff: caller.IsStaff}, nil).
		Maybe()
}

// do sends body as JSON unless it is already an io.Reader. A nil caller sends no token.
func (e *testEnv) do(method, path string, body any, caller *models.Caller) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(*caller))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doWithToken(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func assertJSONError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, w.Body.String())

	var response handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, response.Error)
	} else {
		assert.NotEmpty(t, response.Error)
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
}

func profileOf(id string, caller models.Caller, first, last string) *models.Profile {
	return &models.Profile{ProfileID: id, UserID: caller.UserID, FirstName: first, LastName: last}
}

func TestUnauthenticatedRequests(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/profiles", "/api/posts", "/api/posts/feed", "/api/profiles/me"} {
		t.Run(path, func(t *testing.T) {
			w := env.do(http.MethodGet, path, nil, nil)
			assertJSONError(t, w, http.StatusUnauthorized, "Authentication credentials were not provided")
		})
	}

	env.repo.Profile.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	env.repo.Post.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRouting(t *testing.T) {
	env := newTestEnv(t)

	methodTests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/profiles/" + annProfileID + "/follow"},
		{http.MethodDelete, "/api/profiles"},
		{http.MethodDelete, "/api/profiles/me"},
		{http.MethodDelete, "/api/posts/feed"},
		{http.MethodPost, "/api/posts/me"},
		{http.MethodGet, "/api/auth/login"},
	}

	for _, tt := range methodTests {
		t.Run("wrong method "+tt.method+" "+tt.path, func(t *testing.T) {
			w := env.do(tt.method, tt.path, nil, &owner)
			assertJSONError(t, w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %q not allowed.", tt.method))
		})
	}

	notFoundTests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nothing-here"},
		{http.MethodGet, "/api/profiles/not-a-uuid"},
		{http.MethodDelete, "/api/profiles/42"},
		{http.MethodPost, "/api/profiles/me/follow"},
		{http.MethodGet, "/api/posts/feed/media"},
		{http.MethodPatch, "/api/posts/" + annProfileID + "x"},
	}

	for _, tt := range notFoundTests {
		t.Run("not found "+tt.method+" "+tt.path, func(t *testing.T) {
			w := env.do(tt.method, tt.path, nil, &owner)
			assertJSONError(t, w, http.StatusNotFound, "Not found.")
		})
	}

	env.repo.Profile.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	env.repo.Post.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.Tables.On("CountTablesDB", mock.Anything).Return(len(repository.ApplicationTables), nil)

		w := env.do(http.MethodGet, "/health", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnvWithDB(t, fakeDB{err: errors.New("connection refused")})

		w := env.do(http.MethodGet, "/health", nil, nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		env.repo.Tables.AssertNotCalled(t, "CountTablesDB", mock.Anything)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/metrics", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "profiles_created_total")
}
