package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorAlreadyExists     = errors.New("already exists")
	ErrorReferenceNotFound = errors.New("referenced entity not found")
	ErrorNoFields          = errors.New("no fields to update")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorInsertNoRow is returned when INSERT ... RETURNING yields nothing.
	ErrorInsertNoRow = errors.New("insert returned no row")
)
