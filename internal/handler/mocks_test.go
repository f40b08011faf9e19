package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy_portal/internal/auth"
	"academy_portal/internal/model"
	"academy_portal/internal/validate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validate.RegisterGinBindings(); err != nil {
		panic(err)
	}
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// asPrincipal stands in for the JWT middleware.
func asPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) ListUsers(ctx context.Context, filters model.UserFilters) ([]model.User, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserServiceMock) SetRole(ctx context.Context, actor auth.Principal, userID string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, actor, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) SetActive(ctx context.Context, actor auth.Principal, userID string, active bool) (*model.User, error) {
	args := m.Called(ctx, actor, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type AdminServiceMock struct {
	mock.Mock
}

func (m *AdminServiceMock) Promote(ctx context.Context, req model.PromoteAdminRequest) (*model.Admin, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *AdminServiceMock) List(ctx context.Context) ([]model.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Admin), args.Error(1)
}

func (m *AdminServiceMock) UpdatePermissions(ctx context.Context, adminID string, permissions []string) (*model.Admin, error) {
	args := m.Called(ctx, adminID, permissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *AdminServiceMock) Revoke(ctx context.Context, actor auth.Principal, adminID string) error {
	return m.Called(ctx, actor, adminID).Error(0)
}

type TrainingServiceMock struct {
	mock.Mock
}

func (m *TrainingServiceMock) Create(ctx context.Context, req model.CreateTrainingRequest) (*model.Training, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingServiceMock) Get(ctx context.Context, slug string, includeHidden bool) (*model.Training, error) {
	args := m.Called(ctx, slug, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingServiceMock) List(ctx context.Context, filters model.TrainingFilters, includeHidden bool) ([]model.Training, error) {
	args := m.Called(ctx, filters, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Training), args.Error(1)
}

func (m *TrainingServiceMock) Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingServiceMock) UpdateStatus(ctx context.Context, id string, status model.TrainingStatus) (*model.Training, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingServiceMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type OfferingServiceMock struct {
	mock.Mock
}

func (m *OfferingServiceMock) Create(ctx context.Context, req model.CreateServiceRequest) (*model.Service, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *OfferingServiceMock) Get(ctx context.Context, slug string, includeInactive bool) (*model.Service, error) {
	args := m.Called(ctx, slug, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *OfferingServiceMock) List(ctx context.Context, includeInactive bool) ([]model.Service, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *OfferingServiceMock) Update(ctx context.Context, id string, req model.UpdateServiceRequest) (*model.Service, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *OfferingServiceMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type SubscriberServiceMock struct {
	mock.Mock
}

func (m *SubscriberServiceMock) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberServiceMock) Confirm(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberServiceMock) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberServiceMock) List(ctx context.Context, filters model.SubscriberFilters) ([]model.Subscriber, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscriber), args.Error(1)
}

func (m *SubscriberServiceMock) SetTags(ctx context.Context, id string, tags []string) (*model.Subscriber, error) {
	args := m.Called(ctx, id, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

type CatalogServiceMock struct {
	mock.Mock
}

func (m *CatalogServiceMock) InvalidateCatalog(ctx context.Context) {
	m.Called(ctx)
}

func (m *CatalogServiceMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *CatalogServiceMock) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}
