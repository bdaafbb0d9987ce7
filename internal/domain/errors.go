package domain

import "errors"

var (
	// ErrInvalidInput marks out-of-range pay period input or malformed jurisdiction rules.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownYear is returned when no rules exist for a year and no default is configured.
	ErrUnknownYear = errors.New("no jurisdiction rules for year")
	// ErrEmployeeNotFound is returned by stores when an employee id is unknown.
	ErrEmployeeNotFound = errors.New("employee not found")
)
