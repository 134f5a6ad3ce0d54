package user

import (
	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	"github.com/lawateaditya/Stock-Management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("name", d.Name).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	if d.Role != "" {
		if _, err := auth.ParseRole(d.Role); err != nil {
			return err
		}
	}
	return nil
}

// UpdateUserDTO is a partial update: a nil field is left unchanged, a
// present field (including an empty string) is written.
type UpdateUserDTO struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Role != nil {
		if _, err := auth.ParseRole(*d.Role); err != nil {
			return err
		}
	}
	if d.Password != nil && len(*d.Password) < 6 {
		return internal.NewValidationFieldError("password", "password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}
	return nil
}
