package service

import "errors"

// Domain errors of the credential and token lifecycle. Handlers translate
// them to HTTP statuses; anything else is an unexpected failure.
var (
	ErrDuplicateUser         = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidOrExpiredToken = errors.New("invalid token or token expired")
	ErrInvalidToken          = errors.New("invalid token")
	ErrExpiredToken          = errors.New("token is expired")
	ErrForbidden             = errors.New("forbidden")

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
