package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy_portal/internal/lib/slug"
	"academy_portal/internal/model"
	"academy_portal/internal/repository"
)

var (
	ErrTrainingNotFound  = errors.New("training not found")
	ErrSlugTaken         = errors.New("slug is already in use")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// TrainingService manages the training catalog
type TrainingService interface {
	Create(ctx context.Context, req model.CreateTrainingRequest) (*model.Training, error)
	Get(ctx context.Context, slug string, includeHidden bool) (*model.Training, error)
	List(ctx context.Context, filters model.TrainingFilters, includeHidden bool) ([]model.Training, error)
	Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error)
	UpdateStatus(ctx context.Context, id string, status model.TrainingStatus) (*model.Training, error)
	Delete(ctx context.Context, id string) error
}

type trainingService struct {
	repo    repository.TrainingRepository
	catalog CatalogInvalidator
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(repo repository.TrainingRepository, catalog CatalogInvalidator) TrainingService {
	return &trainingService{repo: repo, catalog: catalog}
}

// catalogError maps the repository errors shared by every catalog write.
func catalogError(err error, notFound error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrSlugTaken
	}
	if verr := validationError(err); verr != nil {
		return verr
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// slugFor returns the explicit slug normalised, or one derived from the fallback text.
func slugFor(explicit, fallback string) string {
	if s := slug.Make(explicit); s != "" {
		return s
	}
	return slug.Make(fallback)
}

func (s *trainingService) Create(ctx context.Context, req model.CreateTrainingRequest) (*model.Training, error) {
	training := &model.Training{
		Title:         strings.TrimSpace(req.Title),
		Slug:          slugFor(req.Slug, req.Title),
		Description:   req.Description,
		Price:         req.Price,
		DurationWeeks: req.DurationWeeks,
		Mode:          req.Mode,
		Status:        model.StatusDraft,
	}
	if err := s.repo.Create(ctx, training); err != nil {
		return nil, catalogError(err, ErrTrainingNotFound, "create training")
	}
	return training, nil
}

// Get returns a training by slug. Unpublished trainings are reported as not
// found unless includeHidden is set.
func (s *trainingService) Get(ctx context.Context, slug string, includeHidden bool) (*model.Training, error) {
	training, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, catalogError(err, ErrTrainingNotFound, "find training")
	}
	if !includeHidden && training.Status != model.StatusPublished {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}

// List returns trainings matching filters. Without includeHidden the status
// filter is forced to published.
func (s *trainingService) List(ctx context.Context, filters model.TrainingFilters, includeHidden bool) ([]model.Training, error) {
	if !includeHidden {
		published := model.StatusPublished
		filters.Status = &published
	}
	trainings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	return trainings, nil
}

func (s *trainingService) Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error) {
	training, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, catalogError(err, ErrTrainingNotFound, "find training")
	}

	if req.Title != nil {
		training.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		training.Slug = slugFor(*req.Slug, training.Title)
	}
	if req.Description != nil {
		training.Description = *req.Description
	}
	if req.Price != nil {
		training.Price = *req.Price
	}
	if req.DurationWeeks != nil {
		training.DurationWeeks = *req.DurationWeeks
	}
	if req.Mode != nil {
		training.Mode = *req.Mode
	}

	if err := s.repo.Update(ctx, training); err != nil {
		return nil, catalogError(err, ErrTrainingNotFound, "update training")
	}
	s.catalog.InvalidateCatalog(ctx)
	return training, nil
}

func (s *trainingService) UpdateStatus(ctx context.Context, id string, status model.TrainingStatus) (*model.Training, error) {
	training, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, catalogError(err, ErrTrainingNotFound, "find training")
	}
	if training.Status == status {
		return training, nil
	}
	if !training.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, training.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, catalogError(err, ErrTrainingNotFound, "update training status")
	}
	s.catalog.InvalidateCatalog(ctx)
	return updated, nil
}

func (s *trainingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return catalogError(err, ErrTrainingNotFound, "delete training")
	}
	s.catalog.InvalidateCatalog(ctx)
	return nil
}
