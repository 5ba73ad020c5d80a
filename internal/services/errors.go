package services

import "errors"

// Dashboard service errors.
var (
	// ErrInvalidDimension is returned for grouping keys outside the
	// supported set.
	ErrInvalidDimension = errors.New("unsupported grouping dimension")

	// ErrInvalidPriceChange is returned when a what-if price change falls
	// outside the modeled [-30, 30] percent range.
	ErrInvalidPriceChange = errors.New("price change out of range")
)
