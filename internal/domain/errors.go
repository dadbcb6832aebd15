package domain

import "errors"

// Sentinel errors; repos and services wrap these with %w so handlers
// can map them to HTTP statuses with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidDateRange = errors.New("check-in must be before check-out")
	ErrRoomUnavailable  = errors.New("room unavailable for the selected dates")
	ErrStorage          = errors.New("media storage failed")
)
