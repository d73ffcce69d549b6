package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitDeliberationRequest is the payload for a deliberation submission.
// The recommended flag only counts when the caller is a reviewer.
type SubmitDeliberationRequest struct {
	VoterID     string `json:"voter_id"`
	Recommended bool   `json:"recommended"`
	Memo        string `json:"memo"`
}

// SubmitDeliberationResponse reports how the submission was recorded.
type SubmitDeliberationResponse struct {
	ProposalID string `json:"proposal_id"`
	VoterID    string `json:"voter_id"`
	IsReviewer bool   `json:"is_reviewer"`
	Recorded   string `json:"recorded"`
}

// ReviewerVotePayload is one reviewer's stance and memo.
type ReviewerVotePayload struct {
	ReviewerID  string    `json:"reviewer_id"`
	Recommended bool      `json:"recommended"`
	Memo        string    `json:"memo"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommunityFeedbackPayload is one community member's deliberation comment.
type CommunityFeedbackPayload struct {
	AuthorID  string    `json:"author_id"`
	Feedback  string    `json:"feedback"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeliberationSummaryResponse is the derived recommendation plus the raw
// submissions behind it.
type DeliberationSummaryResponse struct {
	ProposalID     string                     `json:"proposal_id"`
	Recommendation string                     `json:"recommendation"`
	YesCount       int                        `json:"yes_count"`
	NoCount        int                        `json:"no_count"`
	ReviewerVotes  []ReviewerVotePayload      `json:"reviewer_votes"`
	Feedback       []CommunityFeedbackPayload `json:"community_feedback"`
}
