package entities

import "time"

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func IsSupportedDecision(value Decision) bool {
	switch value {
	case DecisionApproved, DecisionRejected:
		return true
	default:
		return false
	}
}

// ConsiderationVote is one voter's current decision on a proposal. The pair
// (ProposalID, VoterID) is unique; resubmission overwrites in place, so the
// latest decision is the only one that exists.
type ConsiderationVote struct {
	ProposalID string
	VoterID    string
	Decision   Decision
	Feedback   string
	// IsReviewer is captured at write time from reviewer-group membership.
	// Votes from non-reviewers are stored as community signal only and never
	// count toward reviewer thresholds.
	IsReviewer bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
