package ir

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrKeyConflict      = errors.New("key conflict")
	ErrInvalidFormat    = errors.New("invalid format")
)
