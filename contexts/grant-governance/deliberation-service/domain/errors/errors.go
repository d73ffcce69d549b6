package errors

import "errors"

var (
	ErrInvalidDeliberationInput  = errors.New("deliberation input is invalid")
	ErrMemoRequired              = errors.New("deliberation memo is required")
	ErrProposalNotFound          = errors.New("proposal not found")
	ErrProposalNotInDeliberation = errors.New("proposal is not in the deliberation stage")
)
