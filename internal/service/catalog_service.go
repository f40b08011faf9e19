package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"academy_portal/internal/cache"
	"academy_portal/internal/format"
	"academy_portal/internal/lib/sl"
	"academy_portal/internal/model"
	"academy_portal/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

const (
	catalogPrefix   = "catalog:"
	productsKey     = catalogPrefix + "products"
	productKeyLayer = catalogPrefix + "product:"
)

// CatalogInvalidator is notified after any write that changes the public catalog.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

// CatalogService serves the public product view over published trainings
// and active services.
type CatalogService interface {
	CatalogInvalidator
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

type catalogService struct {
	trainings repository.TrainingRepository
	services  repository.ServiceRepository
	cache     cache.Cache
	ttl       time.Duration
	log       *slog.Logger
}

// NewCatalogService creates a new CatalogService. Pass cache.Nop{} to disable caching.
func NewCatalogService(trainings repository.TrainingRepository, services repository.ServiceRepository,
	c cache.Cache, ttl time.Duration, log *slog.Logger) CatalogService {
	return &catalogService{trainings: trainings, services: services, cache: c, ttl: ttl, log: log}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func trainingProduct(t *model.Training) model.Product {
	return model.Product{
		ID:           t.ID,
		Kind:         model.ProductTraining,
		Name:         t.Title,
		Slug:         t.Slug,
		Description:  t.Description,
		Price:        t.Price,
		DisplayPrice: format.FormatNaira(float64(t.Price)),
		Duration:     plural(t.DurationWeeks, "week"),
	}
}

func serviceProduct(s *model.Service) model.Product {
	return model.Product{
		ID:           s.ID,
		Kind:         model.ProductService,
		Name:         s.Name,
		Slug:         s.Slug,
		Description:  s.Description,
		Price:        s.BasePrice,
		DisplayPrice: format.FormatNaira(float64(s.BasePrice)),
		Duration:     plural(s.DurationMinutes, "minute"),
	}
}

// cached reads key into dst. Cache failures are logged and treated as a miss.
func (s *catalogService) cached(ctx context.Context, key string, dst any) bool {
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn("catalog cache read failed", slog.String("key", key), sl.Err(err))
		return false
	}
	return hit
}

func (s *catalogService) store(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("catalog cache write failed", slog.String("key", key), sl.Err(err))
	}
}

// ListProducts returns published trainings followed by active services.
func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if s.cached(ctx, productsKey, &products) {
		return products, nil
	}

	published := model.StatusPublished
	trainings, err := s.trainings.List(ctx, model.TrainingFilters{Status: &published})
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	services, err := s.services.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	products = make([]model.Product, 0, len(trainings)+len(services))
	for i := range trainings {
		products = append(products, trainingProduct(&trainings[i]))
	}
	for i := range services {
		products = append(products, serviceProduct(&services[i]))
	}

	s.store(ctx, productsKey, products)
	return products, nil
}

// GetProduct looks the id up among trainings first, then services. Hidden
// entries are reported as not found.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	key := productKeyLayer + id
	var product model.Product
	if s.cached(ctx, key, &product) {
		return &product, nil
	}

	training, err := s.trainings.FindByID(ctx, id)
	switch {
	case err == nil:
		if training.Status != model.StatusPublished {
			return nil, ErrProductNotFound
		}
		product = trainingProduct(training)
	case errors.Is(err, repository.ErrNotFound):
		svc, err := s.services.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to find service: %w", err)
		}
		if !svc.IsActive {
			return nil, ErrProductNotFound
		}
		product = serviceProduct(svc)
	default:
		return nil, fmt.Errorf("failed to find training: %w", err)
	}

	s.store(ctx, key, product)
	return &product, nil
}

// InvalidateCatalog drops every cached catalog entry.
func (s *catalogService) InvalidateCatalog(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, catalogPrefix); err != nil {
		s.log.Error("failed to invalidate catalog cache", sl.Err(err))
	}
}
