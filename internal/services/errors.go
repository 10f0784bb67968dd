package services

import "errors"

// Dashboard service errors
var (
	// Dataset errors
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrDatasetEmpty    = errors.New("dataset has no rows")

	// Export errors
	ErrUnknownColumn = errors.New("unknown export column")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
