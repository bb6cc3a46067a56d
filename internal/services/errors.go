package services

import "errors"

var (
	// ErrInvalidRange rejects a non-positive report range before any
	// store access happens.
	ErrInvalidRange = errors.New("invalid range")

	ErrNotFound = errors.New("not found")
)
