package auth

import (
	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/core/common/validation"
)

// RegisterDTO is the transport shape for direct account creation. Role
// is optional; an empty value falls back to inward_user.
type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("name", d.Name).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	if d.Role != "" {
		if _, err := ParseRole(d.Role); err != nil {
			return err
		}
	}
	return nil
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
