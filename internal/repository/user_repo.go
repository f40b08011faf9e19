package repository

import (
	"context"
	"fmt"
	"strings"

	"academy_portal/internal/model"
	"academy_portal/internal/validate"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	List(ctx context.Context, filters model.UserFilters) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetRole(ctx context.Context, id string, role model.Role) error
	SetActive(ctx context.Context, id string, active bool) error
}

const userColumns = `id, name, email, phone, password_hash, role, profile_picture, is_active, created_at, updated_at`

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner, u *model.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.ProfilePicture, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// Create inserts a new user. Email and phone are brought to their stored
// form before the format checks run.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = validate.NormalizeEmail(user.Email)
	user.Phone = validate.CanonicalPhone(user.Phone)
	if err := checkUser(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = newID()
	}

	sql := `INSERT INTO users (id, name, email, phone, password_hash, role, profile_picture, is_active)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, user.ID, user.Name, user.Email, user.Phone, user.PasswordHash,
		user.Role, user.ProfilePicture, user.IsActive).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, where string, arg any) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	if err := scanUser(r.db.QueryRow(ctx, sql, arg), user); err != nil {
		return nil, classify(err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by email, case-insensitively
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.findOne(ctx, "email = $1", validate.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByPhone retrieves a user by their phone number
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	user, err := r.findOne(ctx, "phone = $1", validate.CanonicalPhone(phone))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return user, nil
}

// List retrieves users with optional filters, newest first
func (r *userRepository) List(ctx context.Context, filters model.UserFilters) ([]model.User, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + userColumns + ` FROM users WHERE 1=1`)
	args := []interface{}{}
	argCount := 1

	if filters.Role != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND role = $%d", argCount))
		args = append(args, *filters.Role)
		argCount++
	}
	if filters.IsActive != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND is_active = $%d", argCount))
		args = append(args, *filters.IsActive)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update modifies the profile fields of an existing user
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.Phone = validate.CanonicalPhone(user.Phone)
	if err := checkUser(user); err != nil {
		return err
	}

	sql := `UPDATE users SET name = $1, phone = $2, profile_picture = $3
            WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, user.Name, user.Phone, user.ProfilePicture, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", classify(err))
	}
	return nil
}

// SetRole changes the authorization tier of a user
func (r *userRepository) SetRole(ctx context.Context, id string, role model.Role) error {
	if !role.Valid() {
		return invalid("unknown role %q", role)
	}
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to set user role: %w", ErrNotFound)
	}
	return nil
}

// SetActive toggles the soft-delete flag; users are never removed
func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set user active flag: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to set user active flag: %w", ErrNotFound)
	}
	return nil
}
