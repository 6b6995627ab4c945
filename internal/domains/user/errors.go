package user

import "errors"

var (
	// ErrUserNotFound - no user with the requested id or email
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken - another account already uses this email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials - wrong email or password; kept deliberately
	// vague so responses never reveal which one failed
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive - deactivated accounts cannot log in
	ErrAccountInactive = errors.New("account is deactivated")

	// ErrSelfDemotion - an admin cannot remove their own admin role
	ErrSelfDemotion = errors.New("admins cannot demote themselves")

	// ErrAlreadyAdmin - promote called on an admin account
	ErrAlreadyAdmin = errors.New("user is already an admin")

	// ErrNotAdmin - demote called on a non-admin account
	ErrNotAdmin = errors.New("user is not an admin")
)
