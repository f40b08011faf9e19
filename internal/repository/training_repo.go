package repository

import (
	"context"
	"fmt"
	"strings"

	"academy_portal/internal/model"
)

// TrainingRepository defines operations for training catalog data
type TrainingRepository interface {
	Create(ctx context.Context, training *model.Training) error
	FindByID(ctx context.Context, id string) (*model.Training, error)
	FindBySlug(ctx context.Context, slug string) (*model.Training, error)
	List(ctx context.Context, filters model.TrainingFilters) ([]model.Training, error)
	Update(ctx context.Context, training *model.Training) error
	UpdateStatus(ctx context.Context, id string, status model.TrainingStatus) (*model.Training, error)
	Delete(ctx context.Context, id string) error
}

const trainingColumns = `id, title, slug, description, price, duration_weeks, mode, status, created_at, updated_at`

type trainingRepository struct {
	db DBTX
}

// NewTrainingRepository creates a new TrainingRepository
func NewTrainingRepository(db DBTX) TrainingRepository {
	return &trainingRepository{db: db}
}

func scanTraining(row rowScanner, t *model.Training) error {
	return row.Scan(&t.ID, &t.Title, &t.Slug, &t.Description, &t.Price, &t.DurationWeeks,
		&t.Mode, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

// Create inserts a new training
func (r *trainingRepository) Create(ctx context.Context, t *model.Training) error {
	if t.Status == "" {
		t.Status = model.StatusDraft
	}
	if err := checkTraining(t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = newID()
	}

	sql := `INSERT INTO trainings (id, title, slug, description, price, duration_weeks, mode, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, t.ID, t.Title, t.Slug, t.Description, t.Price, t.DurationWeeks, t.Mode, t.Status).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create training: %w", classify(err))
	}
	return nil
}

// FindByID retrieves a training by its ID
func (r *trainingRepository) FindByID(ctx context.Context, id string) (*model.Training, error) {
	t := &model.Training{}
	sql := `SELECT ` + trainingColumns + ` FROM trainings WHERE id = $1`
	if err := scanTraining(r.db.QueryRow(ctx, sql, id), t); err != nil {
		return nil, fmt.Errorf("failed to find training by ID: %w", classify(err))
	}
	return t, nil
}

// FindBySlug retrieves a training by its slug
func (r *trainingRepository) FindBySlug(ctx context.Context, slug string) (*model.Training, error) {
	t := &model.Training{}
	sql := `SELECT ` + trainingColumns + ` FROM trainings WHERE slug = $1`
	if err := scanTraining(r.db.QueryRow(ctx, sql, slug), t); err != nil {
		return nil, fmt.Errorf("failed to find training by slug: %w", classify(err))
	}
	return t, nil
}

// List retrieves trainings with optional filters, sorted by title
func (r *trainingRepository) List(ctx context.Context, filters model.TrainingFilters) ([]model.Training, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + trainingColumns + ` FROM trainings WHERE 1=1`)
	args := []interface{}{}
	argCount := 1

	if filters.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Mode != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND mode = $%d", argCount))
		args = append(args, *filters.Mode)
	}
	queryBuilder.WriteString(" ORDER BY title ASC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trainings: %w", err)
	}
	defer rows.Close()

	trainings := []model.Training{}
	for rows.Next() {
		var t model.Training
		if err := scanTraining(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan training row: %w", err)
		}
		trainings = append(trainings, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training rows: %w", err)
	}
	return trainings, nil
}

// Update modifies the editable fields of a training. Status changes go
// through UpdateStatus.
func (r *trainingRepository) Update(ctx context.Context, t *model.Training) error {
	if err := checkTraining(t); err != nil {
		return err
	}

	sql := `UPDATE trainings
            SET title = $1, slug = $2, description = $3, price = $4, duration_weeks = $5, mode = $6
            WHERE id = $7 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, t.Title, t.Slug, t.Description, t.Price, t.DurationWeeks, t.Mode, t.ID).
		Scan(&t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update training: %w", classify(err))
	}
	return nil
}

// UpdateStatus sets the lifecycle status of a training
func (r *trainingRepository) UpdateStatus(ctx context.Context, id string, status model.TrainingStatus) (*model.Training, error) {
	if !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	t := &model.Training{}
	sql := `UPDATE trainings SET status = $1 WHERE id = $2 RETURNING ` + trainingColumns
	if err := scanTraining(r.db.QueryRow(ctx, sql, status, id), t); err != nil {
		return nil, fmt.Errorf("failed to update training status: %w", classify(err))
	}
	return t, nil
}

// Delete removes a training from the catalog
func (r *trainingRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete training: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete training: %w", ErrNotFound)
	}
	return nil
}
