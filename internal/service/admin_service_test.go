package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"academy_portal/internal/auth"
	"academy_portal/internal/model"
	"academy_portal/internal/notify"
	"academy_portal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Promote(t *testing.T) {
	staff := &model.User{ID: "u1", Name: "Ada", Phone: "08012345678", Role: model.RoleStaff, IsActive: true}

	t.Run("creates record, sets role and notifies", func(t *testing.T) {
		users := new(UserRepoMock)
		admins := new(AdminRepoMock)
		sms := new(SMSMock)
		users.On("FindByID", mock.Anything, "u1").Return(staff, nil).Once()
		admins.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Admin) bool {
			return a.UserID == "u1" && len(a.Permissions) == 1
		})).Return(nil).Once()
		users.On("SetRole", mock.Anything, "u1", model.RoleAdmin).Return(nil).Once()
		sms.On("SendSMS", mock.Anything, "08012345678",
			"Hi Ada, you were granted admin access on 5 Mar 2024.").Return(notify.Result{Success: true}, nil).Once()

		svc := NewAdminService(admins, users, sms, newNoopLogger())
		admin, err := svc.Promote(context.Background(), model.PromoteAdminRequest{UserID: "u1", Permissions: []string{"users:write"}})
		require.NoError(t, err)
		assert.Equal(t, "admin-1", admin.ID)
		users.AssertExpectations(t)
		admins.AssertExpectations(t)
		sms.AssertExpectations(t)
	})

	t.Run("already an admin", func(t *testing.T) {
		users := new(UserRepoMock)
		admins := new(AdminRepoMock)
		users.On("FindByID", mock.Anything, "u1").Return(staff, nil).Once()
		admins.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("x: %w", repository.ErrDuplicate)).Once()

		svc := NewAdminService(admins, users, new(SMSMock), newNoopLogger())
		_, err := svc.Promote(context.Background(), model.PromoteAdminRequest{UserID: "u1"})
		assert.ErrorIs(t, err, ErrAlreadyAdmin)
	})

	t.Run("role update failure removes the record", func(t *testing.T) {
		users := new(UserRepoMock)
		admins := new(AdminRepoMock)
		users.On("FindByID", mock.Anything, "u1").Return(staff, nil).Once()
		admins.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		users.On("SetRole", mock.Anything, "u1", model.RoleAdmin).Return(errors.New("db down")).Once()
		admins.On("Delete", mock.Anything, "admin-1").Return(nil).Once()

		svc := NewAdminService(admins, users, new(SMSMock), newNoopLogger())
		_, err := svc.Promote(context.Background(), model.PromoteAdminRequest{UserID: "u1"})
		require.Error(t, err)
		admins.AssertExpectations(t)
	})

	t.Run("deactivated user", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("FindByID", mock.Anything, "u3").Return(&model.User{ID: "u3"}, nil).Once()

		svc := NewAdminService(new(AdminRepoMock), users, new(SMSMock), newNoopLogger())
		_, err := svc.Promote(context.Background(), model.PromoteAdminRequest{UserID: "u3"})
		assert.ErrorIs(t, err, ErrPromoteInactive)
	})
}

func TestAdminService_Revoke(t *testing.T) {
	t.Run("deletes record and resets role", func(t *testing.T) {
		users := new(UserRepoMock)
		admins := new(AdminRepoMock)
		admins.On("FindByID", mock.Anything, "a2").Return(&model.Admin{ID: "a2", UserID: "u2"}, nil).Once()
		admins.On("Delete", mock.Anything, "a2").Return(nil).Once()
		users.On("SetRole", mock.Anything, "u2", model.RoleStaff).Return(nil).Once()

		svc := NewAdminService(admins, users, new(SMSMock), newNoopLogger())
		require.NoError(t, svc.Revoke(context.Background(), adminActor, "a2"))
		users.AssertExpectations(t)
		admins.AssertExpectations(t)
	})

	t.Run("cannot revoke self", func(t *testing.T) {
		admins := new(AdminRepoMock)
		admins.On("FindByID", mock.Anything, "a1").Return(&model.Admin{ID: "a1", UserID: adminActor.UserID}, nil).Once()

		svc := NewAdminService(admins, new(UserRepoMock), new(SMSMock), newNoopLogger())
		err := svc.Revoke(context.Background(), auth.Principal{UserID: adminActor.UserID, Role: model.RoleAdmin}, "a1")
		assert.ErrorIs(t, err, ErrSelfManagement)
	})

	t.Run("unknown admin", func(t *testing.T) {
		admins := new(AdminRepoMock)
		admins.On("FindByID", mock.Anything, "nope").Return(nil, notFound()).Once()

		svc := NewAdminService(admins, new(UserRepoMock), new(SMSMock), newNoopLogger())
		assert.ErrorIs(t, svc.Revoke(context.Background(), adminActor, "nope"), ErrAdminNotFound)
	})
}

func TestAdminService_UpdatePermissions(t *testing.T) {
	admins := new(AdminRepoMock)
	perms := []string{"reports:read"}
	admins.On("UpdatePermissions", mock.Anything, "a1", perms).Return(&model.Admin{ID: "a1", Permissions: perms}, nil).Once()
	admins.On("UpdatePermissions", mock.Anything, "nope", perms).Return(nil, notFound()).Once()
	svc := NewAdminService(admins, new(UserRepoMock), new(SMSMock), newNoopLogger())

	admin, err := svc.UpdatePermissions(context.Background(), "a1", perms)
	require.NoError(t, err)
	assert.Equal(t, perms, admin.Permissions)

	_, err = svc.UpdatePermissions(context.Background(), "nope", perms)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
