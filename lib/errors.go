package lib

import "errors"

// Storage errors
var (
	ErrStorageFull = errors.New("storage full")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("duplicate account")
	ErrWeakPassword       = errors.New("weak password")
)

// GetUserMessage maps an internal error to copy safe to show end users.
func GetUserMessage(err error) string {
	switch {
	case errors.Is(err, ErrStorageFull):
		return "Storage is full. Remove some images or old records and try again"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrDuplicateAccount):
		return "An account with this email already exists"
	case errors.Is(err, ErrWeakPassword):
		return "Password is too short (min 6 characters)"
	case errors.Is(err, ErrExpiredToken):
		return "This link has expired. Please request a new one"
	case errors.Is(err, ErrInvalidToken):
		return "This link is invalid or has already been used"
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found"
	default:
		return "Something went wrong. Please try again"
	}
}

// GetDetailForLogging returns the raw error text for log fields without
// leaking it to the response body.
func GetDetailForLogging(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsStorageFull(err error) bool {
	return errors.Is(err, ErrStorageFull)
}

func IsDuplicateAccount(err error) bool {
	return errors.Is(err, ErrDuplicateAccount)
}
