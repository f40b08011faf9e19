package service

import (
	"errors"
	"fmt"

	"academy_portal/internal/repository"
)

var (
	ErrForbidden  = errors.New("forbidden: user does not have permission for this action")
	ErrValidation = errors.New("validation failed")
)

// validationError rewraps a repository ErrInvalid so handlers can answer 400
// with the underlying reason.
func validationError(err error) error {
	if errors.Is(err, repository.ErrInvalid) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
