package handlers

import (
	"net/http"
	"testing"

	"github.com/quillpress/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		svc            *mockAuthService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"},
			svc:            &mockAuthService{},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"success":true,"message":"user registered successfully"}`,
		},
		{
			name:           "duplicate user",
			body:           models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"},
			svc:            &mockAuthService{registerErr: models.NewConflictError("username or email already exists")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username or email already exists"}`,
		},
		{
			name:           "malformed body",
			body:           `{"username":`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(testServices{auth: tt.svc})

			w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAuthService{
			token: "signed-token",
			user:  &models.User{ID: testUserID, Username: "alice", Email: "alice@example.com", PasswordHash: "hash"},
		}
		router := newTestRouter(testServices{auth: svc})

		w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Username: "alice", Password: "secret1"})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "signed-token", body["token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "alice", user["username"])
		assert.NotContains(t, user, "passwordHash")
		assert.NotContains(t, user, "PasswordHash")
		assert.Equal(t, "alice", svc.lastLogin.Username)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &mockAuthService{loginErr: models.NewUnauthorizedError("invalid credentials")}
		router := newTestRouter(testServices{auth: svc})

		w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Username: "alice", Password: "bad"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := &mockAuthService{loginErr: models.NewValidationError("username and password are required")}
		router := newTestRouter(testServices{auth: svc})

		w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", models.LoginRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
