package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "socialnetwork/internal/handler"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(env *testEnv)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "registers and logs in",
			body: `{"email":"ann@example.com","password":"secret1","first_name":"Ann","last_name":"Lee"}`,
			setup: func(env *testEnv) {
				env.repo.User.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(nil, notFound("user"))
				env.repo.User.On("CreateUser", mock.Anything, mock.Anything, "secret1").Return(nil)
				env.repo.User.On("VerifyPassword", mock.Anything, "ann@example.com", "secret1").
					Return(&models.User{UserID: "user-1", Email: "ann@example.com", FirstName: "Ann", LastName: "Lee"}, nil)
				env.repo.User.On("UpdateRefreshToken", mock.Anything, "user-1", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid email",
			body:           `{"email":"not-an-email","password":"secret1"}`,
			setup:          func(env *testEnv) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "email: Enter a valid email address.",
		},
		{
			name:           "short password",
			body:           `{"email":"ann@example.com","password":"123"}`,
			setup:          func(env *testEnv) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "password: Ensure this field has at least 6 characters.",
		},
		{
			name: "email taken",
			body: `{"email":"ann@example.com","password":"secret1"}`,
			setup: func(env *testEnv) {
				env.repo.User.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(&models.User{UserID: "user-1"}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "user with email ann@example.com already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			w := env.do(http.MethodPost, "/api/auth/register", tt.body, nil)

			if tt.expectedError != "" {
				assertJSONError(t, w, tt.expectedStatus, tt.expectedError)
				return
			}

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			response := decode[handlers.AuthResponse](t, w)
			assert.NotEmpty(t, response.AccessToken)
			assert.NotEmpty(t, response.RefreshToken)
			assert.False(t, response.User.IsStaff)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("token authenticates later requests", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.User.On("VerifyPassword", mock.Anything, "ann@example.com", "secret1").
			Return(&models.User{UserID: "user-1", Email: "ann@example.com"}, nil)
		env.repo.User.On("UpdateRefreshToken", mock.Anything, "user-1", mock.Anything, mock.Anything).Return(nil)
		env.repo.Profile.On("GetByUserID", mock.Anything, "user-1").Return(profileOf(annProfileID, owner, "Ann", "Lee"), nil)
		env.knownUser(owner)

		w := env.do(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret1"}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		response := decode[handlers.AuthResponse](t, w)

		req := env.do(http.MethodGet, "/api/profiles/me", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, req.Code)

		me := env.doWithToken(http.MethodGet, "/api/profiles/me", response.AccessToken)
		require.Equal(t, http.StatusOK, me.Code, me.Body.String())
		assert.Equal(t, annProfileID, decode[handlers.ProfileDetail](t, me).ID)
	})

	t.Run("bad credentials", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.User.On("VerifyPassword", mock.Anything, "ann@example.com", "wrong").Return(nil, repository.ErrInvalidCredentials)

		w := env.do(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"wrong"}`, nil)

		assertJSONError(t, w, http.StatusUnauthorized, "Invalid email or password")
	})
}

func TestDeletedUserToken(t *testing.T) {
	env := newTestEnv(t)
	gone := models.Caller{UserID: "user-gone", Email: "gone@example.com"}
	token := env.signed(gone)
	env.repo.User.On("GetUserByID", mock.Anything, "user-gone").Return(nil, notFound("user"))

	assertJSONError(t, env.doWithToken(http.MethodGet, "/api/profiles/me", token), http.StatusUnauthorized, "User not found")
	env.repo.Profile.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.repo.User.On("GetUserByRefreshToken", mock.Anything, "stale").Return(nil, notFound("refresh token"))

	assertJSONError(t, env.do(http.MethodPost, "/api/auth/refresh-token", `{"refresh_token":"stale"}`, nil),
		http.StatusUnauthorized, "Refresh token is invalid or expired")
	assertJSONError(t, env.do(http.MethodPost, "/api/auth/refresh-token", `{}`, nil),
		http.StatusBadRequest, "refresh_token: This field is required.")
}
