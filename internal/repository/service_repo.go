package repository

import (
	"context"
	"fmt"

	"academy_portal/internal/model"
)

// ServiceRepository defines operations for bookable service data
type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, id string) (*model.Service, error)
	FindBySlug(ctx context.Context, slug string) (*model.Service, error)
	List(ctx context.Context, activeOnly bool) ([]model.Service, error)
	Update(ctx context.Context, service *model.Service) error
	Delete(ctx context.Context, id string) error
}

const serviceColumns = `id, name, slug, description, base_price, duration_minutes, is_active, created_at, updated_at`

type serviceRepository struct {
	db DBTX
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db DBTX) ServiceRepository {
	return &serviceRepository{db: db}
}

func scanService(row rowScanner, s *model.Service) error {
	return row.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.BasePrice, &s.DurationMinutes,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new service
func (r *serviceRepository) Create(ctx context.Context, s *model.Service) error {
	if err := checkService(s); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = newID()
	}

	sql := `INSERT INTO services (id, name, slug, description, base_price, duration_minutes, is_active)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, s.ID, s.Name, s.Slug, s.Description, s.BasePrice, s.DurationMinutes, s.IsActive).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", classify(err))
	}
	return nil
}

// FindByID retrieves a service by its ID
func (r *serviceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	s := &model.Service{}
	sql := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	if err := scanService(r.db.QueryRow(ctx, sql, id), s); err != nil {
		return nil, fmt.Errorf("failed to find service by ID: %w", classify(err))
	}
	return s, nil
}

// FindBySlug retrieves a service by its slug
func (r *serviceRepository) FindBySlug(ctx context.Context, slug string) (*model.Service, error) {
	s := &model.Service{}
	sql := `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`
	if err := scanService(r.db.QueryRow(ctx, sql, slug), s); err != nil {
		return nil, fmt.Errorf("failed to find service by slug: %w", classify(err))
	}
	return s, nil
}

// List retrieves services sorted by name
func (r *serviceRepository) List(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	sql := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		sql += ` WHERE is_active = TRUE`
	}
	sql += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		var s model.Service
		if err := scanService(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service rows: %w", err)
	}
	return services, nil
}

// Update modifies an existing service
func (r *serviceRepository) Update(ctx context.Context, s *model.Service) error {
	if err := checkService(s); err != nil {
		return err
	}

	sql := `UPDATE services
            SET name = $1, slug = $2, description = $3, base_price = $4, duration_minutes = $5, is_active = $6
            WHERE id = $7 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, s.Name, s.Slug, s.Description, s.BasePrice, s.DurationMinutes, s.IsActive, s.ID).
		Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", classify(err))
	}
	return nil
}

// Delete removes a service from the catalog
func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete service: %w", ErrNotFound)
	}
	return nil
}
