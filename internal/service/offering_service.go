package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy_portal/internal/model"
	"academy_portal/internal/repository"
)

var ErrServiceNotFound = errors.New("service not found")

// OfferingService manages the bookable services catalog
type OfferingService interface {
	Create(ctx context.Context, req model.CreateServiceRequest) (*model.Service, error)
	Get(ctx context.Context, slug string, includeInactive bool) (*model.Service, error)
	List(ctx context.Context, includeInactive bool) ([]model.Service, error)
	Update(ctx context.Context, id string, req model.UpdateServiceRequest) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

type offeringService struct {
	repo    repository.ServiceRepository
	catalog CatalogInvalidator
}

// NewOfferingService creates a new OfferingService
func NewOfferingService(repo repository.ServiceRepository, catalog CatalogInvalidator) OfferingService {
	return &offeringService{repo: repo, catalog: catalog}
}

func (s *offeringService) Create(ctx context.Context, req model.CreateServiceRequest) (*model.Service, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	svc := &model.Service{
		Name:            strings.TrimSpace(req.Name),
		Slug:            slugFor(req.Slug, req.Name),
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		IsActive:        active,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, catalogError(err, ErrServiceNotFound, "create service")
	}
	if svc.IsActive {
		s.catalog.InvalidateCatalog(ctx)
	}
	return svc, nil
}

func (s *offeringService) Get(ctx context.Context, slug string, includeInactive bool) (*model.Service, error) {
	svc, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, catalogError(err, ErrServiceNotFound, "find service")
	}
	if !includeInactive && !svc.IsActive {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *offeringService) List(ctx context.Context, includeInactive bool) ([]model.Service, error) {
	services, err := s.repo.List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *offeringService) Update(ctx context.Context, id string, req model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, catalogError(err, ErrServiceNotFound, "find service")
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		svc.Slug = slugFor(*req.Slug, svc.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, catalogError(err, ErrServiceNotFound, "update service")
	}
	s.catalog.InvalidateCatalog(ctx)
	return svc, nil
}

func (s *offeringService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return catalogError(err, ErrServiceNotFound, "delete service")
	}
	s.catalog.InvalidateCatalog(ctx)
	return nil
}
