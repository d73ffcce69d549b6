package errors

import "errors"

var (
	ErrInvalidAllocationInput = errors.New("allocation input is invalid")
	ErrRoundNotFound          = errors.New("funding round not found")
	ErrRoundNotEnded          = errors.New("funding round has not ended yet")
	ErrOracleUnavailable      = errors.New("ranked vote ordering unavailable")
)
