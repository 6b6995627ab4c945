package user

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// emailFormat checks the address format against a lowercased copy, so
// mixed-case addresses like Fan.Club@Example.com validate; the submitted
// form is what gets stored.
func emailFormat(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if err := validation.Validate(strings.ToLower(s), is.Email); err != nil {
		return errors.New("invalid email format")
	}
	return nil
}

// RegisterRequest - POST /api/v1/auth/register
// Email is stored exactly as submitted; no lowercasing happens here.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.By(emailFormat),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
			validation.Match(regexp.MustCompile(`[A-Za-z]`)).Error("password must contain a letter"),
			validation.Match(regexp.MustCompile(`[0-9]`)).Error("password must contain a number"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(2, 100),
		),
	)
}

// LoginRequest - POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.By(emailFormat)),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshRequest - POST /api/v1/auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// TokenResponse carries issued JWT tokens.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}
