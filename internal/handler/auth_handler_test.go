package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(svc *AuthServiceMock) *gin.Engine {
	r := gin.New()
	NewAuthHandler(svc, newNoopLogger()).RegisterAuthRoutes(r.Group("/api"))
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	valid := model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Phone: "0801 234 5678", Password: "password123"}

	tests := []struct {
		name       string
		body       any
		mockUser   *model.User
		mockErr    error
		callsSvc   bool
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid registration",
			body:       valid,
			mockUser:   &model.User{ID: "u1", Email: "ada@example.com", Role: model.RoleCustomer, PasswordHash: "secret-hash"},
			callsSvc:   true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json body",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request",
		},
		{
			name:       "email fails format check",
			body:       model.RegisterRequest{Name: "Ada", Email: "ada@example", Phone: "08012345678", Password: "password123"},
			wantStatus: http.StatusBadRequest,
			wantError:  "email_basic",
		},
		{
			name:       "phone fails format check",
			body:       model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Phone: "12345", Password: "password123"},
			wantStatus: http.StatusBadRequest,
			wantError:  "ng_phone",
		},
		{
			name:       "email already registered",
			body:       valid,
			mockErr:    service.ErrUserAlreadyExists,
			callsSvc:   true,
			wantStatus: http.StatusConflict,
			wantError:  service.ErrUserAlreadyExists.Error(),
		},
		{
			name:       "unexpected error is hidden",
			body:       valid,
			mockErr:    errors.New("pq: connection refused"),
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			if tt.callsSvc {
				if tt.mockUser != nil {
					svc.On("Register", mock.Anything, valid).Return(tt.mockUser, "tok", nil).Once()
				} else {
					svc.On("Register", mock.Anything, valid).Return(nil, "", tt.mockErr).Once()
				}
			}

			w := doJSON(t, newAuthRouter(svc), http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Contains(t, resp["error"], tt.wantError)
			} else {
				assert.Equal(t, "tok", resp["token"])
				assert.NotContains(t, w.Body.String(), "secret-hash")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		mockErr    error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "bad credentials", mockErr: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "deactivated", mockErr: service.ErrUserInactive, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			if tt.mockErr == nil {
				svc.On("Login", mock.Anything, "ada@example.com", "pw").Return(&model.User{ID: "u1"}, "tok", nil).Once()
			} else {
				svc.On("Login", mock.Anything, "ada@example.com", "pw").Return(nil, "", tt.mockErr).Once()
			}

			w := doJSON(t, newAuthRouter(svc), http.MethodPost, "/api/auth/login",
				model.LoginRequest{Email: "ada@example.com", Password: "pw"})
			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
