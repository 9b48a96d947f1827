package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks storage failures: unreachable backend, missing write acknowledgment.
	ErrPersistence = errors.New("persistence failure")

	ErrWeakCredential     = errors.New("password must be at least 8 characters")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrMalformedImport is returned when an upload cannot be read as CSV at all.
	ErrMalformedImport = errors.New("malformed import file")
)
