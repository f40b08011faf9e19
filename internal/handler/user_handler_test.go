package handler

import (
	"net/http"
	"testing"

	"academy_portal/internal/auth"
	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	adminPrincipal    = auth.Principal{UserID: "admin-1", Role: model.RoleAdmin}
	customerPrincipal = auth.Principal{UserID: "u1", Role: model.RoleCustomer}
)

func newUserRouter(svc *UserServiceMock, p auth.Principal) *gin.Engine {
	r := gin.New()
	NewUserHandler(svc, newNoopLogger()).RegisterUserRoutes(r.Group("/api"), asPrincipal(p), passThrough)
	return r
}

func TestUserHandler_Me(t *testing.T) {
	svc := new(UserServiceMock)
	svc.On("GetProfile", mock.Anything, "u1").Return(&model.User{ID: "u1", Name: "Ada"}, nil).Once()
	name := "Ada Obi"
	svc.On("UpdateProfile", mock.Anything, "u1", model.UpdateProfileRequest{Name: &name}).
		Return(&model.User{ID: "u1", Name: name}, nil).Once()
	r := newUserRouter(svc, customerPrincipal)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ada"`)

	w = doJSON(t, r, http.MethodPut, "/api/users/me", map[string]string{"name": name})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ada Obi"`)

	w = doJSON(t, r, http.MethodPut, "/api/users/me", map[string]string{"phone": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_MeWithoutPrincipal(t *testing.T) {
	r := gin.New()
	NewUserHandler(new(UserServiceMock), newNoopLogger()).RegisterUserRoutes(r.Group("/api"), passThrough, passThrough)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_ListUsersFilters(t *testing.T) {
	svc := new(UserServiceMock)
	staff := model.RoleStaff
	active := true
	svc.On("ListUsers", mock.Anything, model.UserFilters{Role: &staff, IsActive: &active}).Return([]model.User{}, nil).Once()
	r := newUserRouter(svc, adminPrincipal)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/admin/users?role=staff&is_active=true", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/admin/users?role=owner", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/admin/users?is_active=maybe", nil).Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_SetRole(t *testing.T) {
	tests := []struct {
		name       string
		role       model.Role
		mockErr    error
		wantStatus int
	}{
		{name: "success", role: model.RoleStaff, wantStatus: http.StatusOK},
		{name: "admin via promotion only", role: model.RoleAdmin, mockErr: service.ErrUseAdminGrant, wantStatus: http.StatusBadRequest},
		{name: "holds admin record", role: model.RoleCustomer, mockErr: service.ErrRevokeFirst, wantStatus: http.StatusConflict},
		{name: "self", role: model.RoleStaff, mockErr: service.ErrSelfManagement, wantStatus: http.StatusForbidden},
		{name: "unknown user", role: model.RoleStaff, mockErr: service.ErrUserNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(UserServiceMock)
			if tt.mockErr == nil {
				svc.On("SetRole", mock.Anything, adminPrincipal, "u9", tt.role).Return(&model.User{ID: "u9", Role: tt.role}, nil).Once()
			} else {
				svc.On("SetRole", mock.Anything, adminPrincipal, "u9", tt.role).Return(nil, tt.mockErr).Once()
			}
			w := doJSON(t, newUserRouter(svc, adminPrincipal), http.MethodPut, "/api/admin/users/u9/role", model.SetRoleRequest{Role: tt.role})
			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_SetActive(t *testing.T) {
	svc := new(UserServiceMock)
	svc.On("SetActive", mock.Anything, adminPrincipal, "u9", false).Return(&model.User{ID: "u9"}, nil).Once()
	r := newUserRouter(svc, adminPrincipal)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPut, "/api/admin/users/u9/active", map[string]bool{"is_active": false}).Code)
	// is_active is required; an empty body must not default to false.
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPut, "/api/admin/users/u9/active", map[string]any{}).Code)
	svc.AssertExpectations(t)
}
