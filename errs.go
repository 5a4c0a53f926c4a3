package vtree

import "errors"

var (
	ErrNoDocument = errors.New("no such document")
	ErrNoFilter   = errors.New("no filter set")
)
