package domain

import "errors"

var (
	// ErrLevelNotFound is returned when no level carries the requested id.
	ErrLevelNotFound = errors.New("level not found")
	// ErrInvalidQuizData wraps every failure to parse or validate a quiz document.
	ErrInvalidQuizData = errors.New("invalid quiz data")
	// ErrDuplicateLevelID indicates two levels share an id.
	ErrDuplicateLevelID = errors.New("duplicate level id")
)
