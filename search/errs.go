package search

import "errors"

var (
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrInvalidFilter  = errors.New("invalid filter")
)
