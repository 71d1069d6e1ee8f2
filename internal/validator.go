package internal

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("survey_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if code == "" {
			return false
		}
		for _, r := range code {
			if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
				return false
			}
		}
		return true
	})

	return v
}

// ParseUUID parses a path or payload id, mapping failures onto the shared
// error taxonomy so handlers can hand them straight to the problem writer.
func ParseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a valid UUID", ErrInvalidRequestBody, raw)
	}
	return id, nil
}
