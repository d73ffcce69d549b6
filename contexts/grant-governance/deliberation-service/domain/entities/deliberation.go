package entities

import "time"

// Recommendation is the derived deliberation outcome for a proposal.
type Recommendation string

const (
	RecommendationPositive Recommendation = "recommended"
	RecommendationNegative Recommendation = "not_recommended"
	RecommendationPending  Recommendation = "pending"
)

// ReviewerVote is a reviewer's deliberation position. Recommended carries
// the yes/no stance; the memo explains it and is mandatory.
type ReviewerVote struct {
	ProposalID  string
	ReviewerID  string
	Recommended bool
	Memo        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CommunityFeedback is a community member's deliberation comment. It never
// carries a stance and never influences the recommendation tally.
type CommunityFeedback struct {
	ProposalID string
	AuthorID   string
	Feedback   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
