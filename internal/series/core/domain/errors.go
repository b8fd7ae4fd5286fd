package domain

import "errors"

var (
	ErrArgument              = errors.New("argument error")
	ErrInvalidRange          = errors.New("invalid range")
	ErrRangeTooLarge         = errors.New("range too large")
	ErrUnsupportedCollection = errors.New("unsupported collection")
	ErrInvalidRecord         = errors.New("invalid record")
)
