package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrPersistence        = errors.New("persistence failure")
	ErrDuplicateOperation = errors.New("duplicate operation")
)
