package repository

import "errors"

var (
	// ErrUserNotFound indicates that an update matched no user row.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyCriteria indicates a lookup without any condition.
	ErrEmptyCriteria = errors.New("empty criteria")

	// ErrUnknownColumn indicates a criteria key that is not a searchable column.
	ErrUnknownColumn = errors.New("unknown column")
)
