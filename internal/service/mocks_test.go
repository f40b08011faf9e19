package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"academy_portal/internal/model"
	"academy_portal/internal/notify"

	"github.com/stretchr/testify/mock"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" && args.Error(0) == nil {
		user.ID = "user-1"
	}
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepoMock) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context, filters model.UserFilters) ([]model.User, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) SetRole(ctx context.Context, id string, role model.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *UserRepoMock) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

type AdminRepoMock struct {
	mock.Mock
}

func (m *AdminRepoMock) Create(ctx context.Context, admin *model.Admin) error {
	args := m.Called(ctx, admin)
	if args.Error(0) == nil {
		admin.ID = "admin-1"
		admin.CreatedAt = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
		admin.UpdatedAt = admin.CreatedAt
	}
	return args.Error(0)
}

func (m *AdminRepoMock) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *AdminRepoMock) FindByUserID(ctx context.Context, userID string) (*model.Admin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *AdminRepoMock) List(ctx context.Context) ([]model.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Admin), args.Error(1)
}

func (m *AdminRepoMock) UpdatePermissions(ctx context.Context, id string, permissions []string) (*model.Admin, error) {
	args := m.Called(ctx, id, permissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *AdminRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type TrainingRepoMock struct {
	mock.Mock
}

func (m *TrainingRepoMock) Create(ctx context.Context, training *model.Training) error {
	return m.Called(ctx, training).Error(0)
}

func (m *TrainingRepoMock) FindByID(ctx context.Context, id string) (*model.Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingRepoMock) FindBySlug(ctx context.Context, slug string) (*model.Training, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingRepoMock) List(ctx context.Context, filters model.TrainingFilters) ([]model.Training, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Training), args.Error(1)
}

func (m *TrainingRepoMock) Update(ctx context.Context, training *model.Training) error {
	return m.Called(ctx, training).Error(0)
}

func (m *TrainingRepoMock) UpdateStatus(ctx context.Context, id string, status model.TrainingStatus) (*model.Training, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Training), args.Error(1)
}

func (m *TrainingRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type ServiceRepoMock struct {
	mock.Mock
}

func (m *ServiceRepoMock) Create(ctx context.Context, svc *model.Service) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *ServiceRepoMock) FindByID(ctx context.Context, id string) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *ServiceRepoMock) FindBySlug(ctx context.Context, slug string) (*model.Service, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *ServiceRepoMock) List(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *ServiceRepoMock) Update(ctx context.Context, svc *model.Service) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *ServiceRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type SubscriberRepoMock struct {
	mock.Mock
}

func (m *SubscriberRepoMock) Create(ctx context.Context, s *model.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SubscriberRepoMock) FindByID(ctx context.Context, id string) (*model.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberRepoMock) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberRepoMock) List(ctx context.Context, filters model.SubscriberFilters) ([]model.Subscriber, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscriber), args.Error(1)
}

func (m *SubscriberRepoMock) Confirm(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberRepoMock) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberRepoMock) Resubscribe(ctx context.Context, s *model.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SubscriberRepoMock) SetTags(ctx context.Context, id string, tags []string) (*model.Subscriber, error) {
	args := m.Called(ctx, id, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

type SMSMock struct {
	mock.Mock
}

func (m *SMSMock) SendSMS(ctx context.Context, to, message string) (notify.Result, error) {
	args := m.Called(ctx, to, message)
	return args.Get(0).(notify.Result), args.Error(1)
}

type InvalidatorMock struct {
	mock.Mock
}

func (m *InvalidatorMock) InvalidateCatalog(ctx context.Context) {
	m.Called(ctx)
}

// memoryCache is a map-backed cache.Cache for catalog tests.
type memoryCache struct {
	data    map[string][]byte
	getErr  error
	getHits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, result any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.getHits++
	return true, json.Unmarshal(raw, result)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memoryCache) InvalidatePrefix(_ context.Context, prefix string) error {
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}
