package domain

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrForbidden   = errors.New("action forbidden")
	ErrOwnFavorite = errors.New("cannot favorite own listing")
	ErrConflict    = errors.New("conflicting concurrent write")
)
