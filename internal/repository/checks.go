package repository

import (
	"fmt"
	"strings"

	"academy_portal/internal/lib/slug"
	"academy_portal/internal/model"
	"academy_portal/internal/validate"

	"github.com/google/uuid"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func checkUser(u *model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return invalid("name is required")
	}
	if !validate.ValidateEmail(u.Email) {
		return invalid("email %q fails format validation", u.Email)
	}
	if !validate.ValidatePhone(u.Phone) {
		return invalid("phone %q is not a valid Nigerian number", u.Phone)
	}
	if !u.Role.Valid() {
		return invalid("unknown role %q", u.Role)
	}
	return nil
}

func checkID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid("%s %q is not a valid id", field, id)
	}
	return nil
}

func checkSlug(s string) error {
	if !slug.Valid(s) {
		return invalid("slug %q must be lowercase words joined by dashes", s)
	}
	return nil
}

func checkTraining(t *model.Training) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("title is required")
	}
	if err := checkSlug(t.Slug); err != nil {
		return err
	}
	if t.Price < 0 {
		return invalid("price must not be negative")
	}
	if t.DurationWeeks <= 0 {
		return invalid("duration_weeks must be positive")
	}
	if !t.Mode.Valid() {
		return invalid("unknown delivery mode %q", t.Mode)
	}
	if !t.Status.Valid() {
		return invalid("unknown status %q", t.Status)
	}
	return nil
}

func checkService(s *model.Service) error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("name is required")
	}
	if err := checkSlug(s.Slug); err != nil {
		return err
	}
	if s.BasePrice < 0 {
		return invalid("base_price must not be negative")
	}
	if s.DurationMinutes <= 0 {
		return invalid("duration_minutes must be positive")
	}
	return nil
}

func checkSubscriber(s *model.Subscriber) error {
	if !validate.ValidateEmail(s.Email) {
		return invalid("email %q fails format validation", s.Email)
	}
	if !s.Source.Valid() {
		return invalid("unknown source %q", s.Source)
	}
	return nil
}
