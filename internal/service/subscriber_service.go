package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy_portal/internal/model"
	"academy_portal/internal/repository"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
)

// SubscriberService handles newsletter opt-in and opt-out
type SubscriberService interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error)
	Confirm(ctx context.Context, email string) (*model.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error)
	List(ctx context.Context, filters model.SubscriberFilters) ([]model.Subscriber, error)
	SetTags(ctx context.Context, id string, tags []string) (*model.Subscriber, error)
}

type subscriberService struct {
	repo repository.SubscriberRepository
}

// NewSubscriberService creates a new SubscriberService
func NewSubscriberService(repo repository.SubscriberRepository) SubscriberService {
	return &subscriberService{repo: repo}
}

// normalizeTags lowercases and trims tags, dropping blanks and repeats.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func subscriberError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrSubscriberNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadySubscribed
	}
	if verr := validationError(err); verr != nil {
		return verr
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Subscribe adds a contact. An address that previously unsubscribed is
// re-activated as a fresh, unconfirmed opt-in.
func (s *subscriberService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error) {
	sub := &model.Subscriber{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Tags:      normalizeTags(req.Tags),
		Source:    req.Source,
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if existing.Active() {
			return nil, ErrAlreadySubscribed
		}
		if err := s.repo.Resubscribe(ctx, sub); err != nil {
			return nil, subscriberError(err, "resubscribe")
		}
		return sub, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing subscriber: %w", err)
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, subscriberError(err, "create subscriber")
	}
	return sub, nil
}

func (s *subscriberService) Confirm(ctx context.Context, email string) (*model.Subscriber, error) {
	sub, err := s.repo.Confirm(ctx, email)
	if err != nil {
		return nil, subscriberError(err, "confirm subscriber")
	}
	return sub, nil
}

func (s *subscriberService) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	sub, err := s.repo.Unsubscribe(ctx, email)
	if err != nil {
		return nil, subscriberError(err, "unsubscribe")
	}
	return sub, nil
}

func (s *subscriberService) List(ctx context.Context, filters model.SubscriberFilters) ([]model.Subscriber, error) {
	if filters.Tag != nil {
		tag := strings.ToLower(strings.TrimSpace(*filters.Tag))
		filters.Tag = &tag
	}
	subs, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

func (s *subscriberService) SetTags(ctx context.Context, id string, tags []string) (*model.Subscriber, error) {
	sub, err := s.repo.SetTags(ctx, id, normalizeTags(tags))
	if err != nil {
		return nil, subscriberError(err, "set subscriber tags")
	}
	return sub, nil
}
