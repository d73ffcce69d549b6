package errors

import "errors"

var (
	ErrInvalidRoundInput = errors.New("invalid funding round input")
	ErrRoundNotFound     = errors.New("funding round not found")
	ErrWindowMisordered  = errors.New("phase window ends before it starts")
	ErrRoundExists       = errors.New("funding round already exists")
)
