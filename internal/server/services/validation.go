package services

import (
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLength = 8
	maxTitleLength    = 200

	defaultPageSize = 100
	maxPageSize     = 100
)

// Credentials is the register and login input. Emails are compared in lower
// case.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) validateRegistration() error {
	return invalidInput(validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required, validation.Length(minPasswordLength, 0)),
	))
}

func (c Credentials) validateLogin() error {
	return invalidInput(validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	))
}

func validateTaskCreate(in models.TaskCreate) error {
	return invalidInput(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxTitleLength)),
	))
}

func validateTaskUpdate(in models.TaskUpdate) error {
	return invalidInput(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.Length(1, maxTitleLength)),
	))
}

// invalidInput tags validation failures with common.ErrInvalidInput while
// keeping validation.Errors reachable through errors.As.
func invalidInput(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
}

// page normalises skip/limit query values.
func page(skip, limit int) (int, int, error) {
	if skip < 0 {
		return 0, 0, fmt.Errorf("%w: skip must not be negative", common.ErrInvalidInput)
	}
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	return skip, limit, nil
}
