package repository

import (
	"context"
	"fmt"
	"strings"

	"academy_portal/internal/model"
)

// AdminRepository defines operations on admin records. A user has at most
// one admin record; the unique index on user_id backs that up.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	FindByUserID(ctx context.Context, userID string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	UpdatePermissions(ctx context.Context, id string, permissions []string) (*model.Admin, error)
	Delete(ctx context.Context, id string) error
}

const adminColumns = `id, user_id, permissions, created_at, updated_at`

type adminRepository struct {
	db DBTX
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db DBTX) AdminRepository {
	return &adminRepository{db: db}
}

func scanAdmin(row rowScanner, a *model.Admin) error {
	return row.Scan(&a.ID, &a.UserID, &a.Permissions, &a.CreatedAt, &a.UpdatedAt)
}

// cleanPermissions trims entries and drops blanks and repeats, keeping order.
func cleanPermissions(perms []string) []string {
	out := make([]string, 0, len(perms))
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Create inserts an admin record. created_at and updated_at come from the database.
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	if err := checkID("user_id", admin.UserID); err != nil {
		return err
	}
	admin.Permissions = cleanPermissions(admin.Permissions)
	if admin.ID == "" {
		admin.ID = newID()
	}

	sql := `INSERT INTO admins (id, user_id, permissions) VALUES ($1, $2, $3)
            RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, admin.ID, admin.UserID, admin.Permissions).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", classify(err))
	}
	return nil
}

// FindByID retrieves an admin record by its ID
func (r *adminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	admin := &model.Admin{}
	sql := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	if err := scanAdmin(r.db.QueryRow(ctx, sql, id), admin); err != nil {
		return nil, fmt.Errorf("failed to find admin by ID: %w", classify(err))
	}
	return admin, nil
}

// FindByUserID retrieves the admin record belonging to a user
func (r *adminRepository) FindByUserID(ctx context.Context, userID string) (*model.Admin, error) {
	admin := &model.Admin{}
	sql := `SELECT ` + adminColumns + ` FROM admins WHERE user_id = $1`
	if err := scanAdmin(r.db.QueryRow(ctx, sql, userID), admin); err != nil {
		return nil, fmt.Errorf("failed to find admin by user ID: %w", classify(err))
	}
	return admin, nil
}

// List retrieves all admin records, oldest first
func (r *adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	admins := []model.Admin{}
	for rows.Next() {
		var a model.Admin
		if err := scanAdmin(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		admins = append(admins, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin rows: %w", err)
	}
	return admins, nil
}

// UpdatePermissions replaces the permission list; the trigger refreshes updated_at
func (r *adminRepository) UpdatePermissions(ctx context.Context, id string, permissions []string) (*model.Admin, error) {
	admin := &model.Admin{}
	sql := `UPDATE admins SET permissions = $1 WHERE id = $2 RETURNING ` + adminColumns
	if err := scanAdmin(r.db.QueryRow(ctx, sql, cleanPermissions(permissions), id), admin); err != nil {
		return nil, fmt.Errorf("failed to update admin permissions: %w", classify(err))
	}
	return admin, nil
}

// Delete removes an admin record; the user itself is untouched
func (r *adminRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete admin: %w", ErrNotFound)
	}
	return nil
}
