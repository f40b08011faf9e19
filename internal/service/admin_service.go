package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"academy_portal/internal/auth"
	"academy_portal/internal/format"
	"academy_portal/internal/lib/sl"
	"academy_portal/internal/model"
	"academy_portal/internal/notify"
	"academy_portal/internal/repository"
)

var (
	ErrAdminNotFound   = errors.New("admin not found")
	ErrAlreadyAdmin    = errors.New("user is already an admin")
	ErrPromoteInactive = errors.New("cannot promote a deactivated user")
)

// AdminService grants and revokes admin access
type AdminService interface {
	Promote(ctx context.Context, req model.PromoteAdminRequest) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	UpdatePermissions(ctx context.Context, adminID string, permissions []string) (*model.Admin, error)
	Revoke(ctx context.Context, actor auth.Principal, adminID string) error
}

type adminService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	sms       notify.SMSSender
	log       *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(adminRepo repository.AdminRepository, userRepo repository.UserRepository, sms notify.SMSSender, log *slog.Logger) AdminService {
	return &adminService{adminRepo: adminRepo, userRepo: userRepo, sms: sms, log: log}
}

// Promote creates the admin record and raises the user's role. The record is
// removed again if the role update fails.
func (s *adminService) Promote(ctx context.Context, req model.PromoteAdminRequest) (*model.Admin, error) {
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrPromoteInactive
	}

	admin := &model.Admin{UserID: user.ID, Permissions: req.Permissions}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyAdmin
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		if verr := validationError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create admin record: %w", err)
	}

	if err := s.userRepo.SetRole(ctx, user.ID, model.RoleAdmin); err != nil {
		if delErr := s.adminRepo.Delete(ctx, admin.ID); delErr != nil {
			s.log.Error("failed to roll back admin record", slog.String("admin_id", admin.ID), sl.Err(delErr))
		}
		return nil, fmt.Errorf("failed to set admin role: %w", err)
	}

	msg := fmt.Sprintf("Hi %s, you were granted admin access on %s.", user.Name, format.FormatDate(admin.CreatedAt))
	if _, err := s.sms.SendSMS(ctx, user.Phone, msg); err != nil {
		s.log.Warn("failed to send admin grant SMS", slog.String("user_id", user.ID), sl.Err(err))
	}
	return admin, nil
}

func (s *adminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

func (s *adminService) UpdatePermissions(ctx context.Context, adminID string, permissions []string) (*model.Admin, error) {
	admin, err := s.adminRepo.UpdatePermissions(ctx, adminID, permissions)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}
	return admin, nil
}

// Revoke deletes the admin record and drops the user back to staff
func (s *adminService) Revoke(ctx context.Context, actor auth.Principal, adminID string) error {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to find admin: %w", err)
	}
	if admin.UserID == actor.UserID {
		return ErrSelfManagement
	}

	if err := s.adminRepo.Delete(ctx, admin.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to delete admin record: %w", err)
	}
	if err := s.userRepo.SetRole(ctx, admin.UserID, model.RoleStaff); err != nil {
		return fmt.Errorf("admin record removed, but failed to reset role: %w", err)
	}
	return nil
}
