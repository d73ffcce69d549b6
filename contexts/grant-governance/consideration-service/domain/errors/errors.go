package errors

import "errors"

var (
	ErrInvalidVoteInput           = errors.New("invalid consideration vote input")
	ErrFeedbackRequired           = errors.New("vote feedback is required")
	ErrProposalNotFound           = errors.New("proposal not found")
	ErrProposalNotInConsideration = errors.New("proposal is not in consideration")
)
