package client

import "errors"

var (
	ErrNoToken          = errors.New("command requires a session token: log in and export AUTH_TOKEN")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptySecret      = errors.New("value must not be empty")
)
