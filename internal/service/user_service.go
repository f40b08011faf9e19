package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy_portal/internal/auth"
	"academy_portal/internal/model"
	"academy_portal/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUseAdminGrant  = errors.New("admin role is granted through the admins endpoint")
	ErrRevokeFirst    = errors.New("user holds an admin record; revoke it before changing the role")
	ErrSelfManagement = errors.New("admins cannot change their own role or status")
)

// UserService manages profiles and account state
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error)
	ListUsers(ctx context.Context, filters model.UserFilters) ([]model.User, error)
	SetRole(ctx context.Context, actor auth.Principal, userID string, role model.Role) (*model.User, error)
	SetActive(ctx context.Context, actor auth.Principal, userID string, active bool) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, adminRepo repository.AdminRepository) UserService {
	return &userService{userRepo: userRepo, adminRepo: adminRepo}
}

func (s *userService) find(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.find(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.ProfilePicture != nil {
		if *req.ProfilePicture == "" {
			user.ProfilePicture = nil
		} else {
			user.ProfilePicture = req.ProfilePicture
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneInUse
		}
		if verr := validationError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("failed to update user in repo: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filters model.UserFilters) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetRole moves a user between customer and staff. Admin access has its own
// lifecycle through AdminService.
func (s *userService) SetRole(ctx context.Context, actor auth.Principal, userID string, role model.Role) (*model.User, error) {
	if actor.UserID == userID {
		return nil, ErrSelfManagement
	}
	if role == model.RoleAdmin {
		return nil, ErrUseAdminGrant
	}
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, err = s.adminRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, ErrRevokeFirst
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check admin record: %w", err)
	}

	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		if verr := validationError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("failed to set role: %w", err)
	}
	user.Role = role
	return user, nil
}

// SetActive soft-deletes or restores an account
func (s *userService) SetActive(ctx context.Context, actor auth.Principal, userID string, active bool) (*model.User, error) {
	if actor.UserID == userID {
		return nil, ErrSelfManagement
	}
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set active flag: %w", err)
	}
	user.IsActive = active
	return user, nil
}
