package store

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrDormNotFound       = errors.New("dorm not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrActionNotFound     = errors.New("action not found")
	ErrActionTypeNotFound = errors.New("action type not found")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// SeedResult reports how many catalog rows a seed run inserted.
type SeedResult struct {
	DormsInserted       int64
	ActionTypesInserted int64
}

// Inserted reports whether the run wrote anything.
func (r SeedResult) Inserted() bool {
	return r.DormsInserted > 0 || r.ActionTypesInserted > 0
}
