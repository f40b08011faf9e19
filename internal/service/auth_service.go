package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"academy_portal/internal/lib/sl"
	"academy_portal/internal/model"
	"academy_portal/internal/notify"
	"academy_portal/internal/repository"
	"academy_portal/internal/utils"
	"academy_portal/internal/validate"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrPhoneInUse         = errors.New("phone number is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("account is deactivated")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo          repository.UserRepository
	adminRepo         repository.AdminRepository
	jwtUtil           *utils.JWTUtil
	sms               notify.SMSSender
	log               *slog.Logger
	initialAdminEmail string
}

// NewAuthService creates a new AuthService. A user registering with
// initialAdminEmail is created with the admin role and an Admin record.
func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, jwtUtil *utils.JWTUtil, sms notify.SMSSender, log *slog.Logger, initialAdminEmail string) AuthService {
	return &authService{
		userRepo:          userRepo,
		adminRepo:         adminRepo,
		jwtUtil:           jwtUtil,
		sms:               sms,
		log:               log,
		initialAdminEmail: validate.NormalizeEmail(initialAdminEmail),
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	email := validate.NormalizeEmail(req.Email)

	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, "", ErrUserAlreadyExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	_, err = s.userRepo.FindByPhone(ctx, req.Phone)
	switch {
	case err == nil:
		return nil, "", ErrPhoneInUse
	case !errors.Is(err, repository.ErrNotFound):
		return nil, "", fmt.Errorf("failed to check existing phone: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleCustomer
	if s.initialAdminEmail != "" && email == s.initialAdminEmail {
		userRole = model.RoleAdmin
		s.log.Info("registering user as admin via INITIAL_ADMIN_EMAIL", slog.String("email", email))
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         userRole,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrUserAlreadyExists
		}
		if verr := validationError(err); verr != nil {
			return nil, "", verr
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	if user.Role == model.RoleAdmin {
		if err := s.bootstrapAdmin(ctx, user); err != nil {
			return nil, "", err
		}
	}

	// A failed welcome SMS must not fail the registration.
	if _, err := s.sms.SendSMS(ctx, user.Phone, welcomeMessage(user)); err != nil {
		s.log.Warn("failed to send welcome SMS", slog.String("user_id", user.ID), sl.Err(err))
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.log.Error("user created, but failed to generate token", slog.String("user_id", user.ID), sl.Err(err))
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrUserInactive
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// bootstrapAdmin gives the initial admin the same Admin record a promotion
// creates. On failure the user is demoted back to customer.
func (s *authService) bootstrapAdmin(ctx context.Context, user *model.User) error {
	admin := &model.Admin{UserID: user.ID, Permissions: []string{}}
	err := s.adminRepo.Create(ctx, admin)
	if err == nil {
		return nil
	}

	if roleErr := s.userRepo.SetRole(ctx, user.ID, model.RoleCustomer); roleErr != nil {
		s.log.Error("failed to roll back initial admin role", slog.String("user_id", user.ID), sl.Err(roleErr))
	}
	return fmt.Errorf("failed to create initial admin record: %w", err)
}

func welcomeMessage(u *model.User) string {
	first := strings.Fields(u.Name)
	name := u.Name
	if len(first) > 0 {
		name = first[0]
	}
	return fmt.Sprintf("Hi %s, welcome to the academy! Browse our trainings and services anytime.", name)
}
