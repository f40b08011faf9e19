package validate

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagEmail = "email_basic"
	TagPhone = "ng_phone"
)

// RegisterBindings exposes the predicates as validator tags.
func RegisterBindings(v *validator.Validate) error {
	if err := v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", TagEmail, err)
	}
	if err := v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", TagPhone, err)
	}
	return nil
}

// RegisterGinBindings installs the tags on gin's default validator engine.
func RegisterGinBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return RegisterBindings(v)
}
