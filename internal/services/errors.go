package services

import (
	"errors"

	"productapi/internal/authz"
	"productapi/internal/repositories"
)

var (
	ErrProductNotFound     = repositories.ErrProductNotFound
	ErrConstraintViolation = repositories.ErrConstraintViolation
	ErrForbidden           = authz.ErrForbidden
	ErrUserNotFound        = repositories.ErrUserNotFound

	// ErrMissingIdentity is returned when a write arrives without an email claim.
	ErrMissingIdentity = errors.New("authenticated principal has no email claim")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
