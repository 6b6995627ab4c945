package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestEmailFormat(t *testing.T) {
	valid := func(email string) error {
		return RegisterRequest{
			Email:    email,
			Password: "secretpw1",
			FullName: "Kim Jiwon",
		}.Validate()
	}

	t.Run("mixed case is accepted in every position", func(t *testing.T) {
		for _, email := range []string{
			"fan.club@example.com",
			"Fan.Club@example.com",
			"fan.club@Example.com",
			"Fan.Club@Example.com",
			"FAN@EXAMPLE.COM",
		} {
			assert.NoError(t, valid(email), email)
		}
	})

	t.Run("malformed addresses are rejected", func(t *testing.T) {
		for _, email := range []string{
			"not-an-email",
			"missing-domain@",
			"@example.com",
			"two@@example.com",
		} {
			assert.Error(t, valid(email), email)
		}
	})
}

func TestLoginRequestEmailFormat(t *testing.T) {
	req := LoginRequest{Email: "Fan.Club@Example.com", Password: "secretpw1"}
	assert.NoError(t, req.Validate())

	req.Email = "nope"
	assert.Error(t, req.Validate())
}
