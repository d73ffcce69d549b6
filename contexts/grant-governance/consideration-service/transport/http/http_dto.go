package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitVoteRequest is the payload for casting or revising a consideration
// vote on a proposal.
type SubmitVoteRequest struct {
	VoterID  string `json:"voter_id"`
	Decision string `json:"decision"`
	Feedback string `json:"feedback"`
}

// SubmitVoteResponse reports the stored vote and whether the write moved the
// proposal out of the consideration stage.
type SubmitVoteResponse struct {
	ProposalID string    `json:"proposal_id"`
	VoterID    string    `json:"voter_id"`
	Decision   string    `json:"decision"`
	IsReviewer bool      `json:"is_reviewer"`
	UpdatedAt  time.Time `json:"updated_at"`
	Verdict    string    `json:"verdict"`
	Moved      bool      `json:"moved"`
	Status     string    `json:"status"`
}

// OCVSnapshotResponse mirrors the cached on-chain community tally.
type OCVSnapshotResponse struct {
	TotalCommunityVotes int       `json:"total_community_votes"`
	TotalPositiveVotes  int       `json:"total_positive_votes"`
	PositiveStakeWeight string    `json:"positive_stake_weight"`
	Eligible            bool      `json:"eligible"`
	RefreshedAt         time.Time `json:"refreshed_at"`
}

// EvaluationResponse is the current eligibility verdict for a proposal.
type EvaluationResponse struct {
	ProposalID         string              `json:"proposal_id"`
	Verdict            string              `json:"verdict"`
	ReviewerApprovals  int                 `json:"reviewer_approvals"`
	ReviewerRejections int                 `json:"reviewer_rejections"`
	Snapshot           OCVSnapshotResponse `json:"community_snapshot"`
}

// VoteResponse is a single stored consideration vote.
type VoteResponse struct {
	VoterID    string    `json:"voter_id"`
	Decision   string    `json:"decision"`
	Feedback   string    `json:"feedback"`
	IsReviewer bool      `json:"is_reviewer"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VoteListResponse wraps the votes recorded for a proposal.
type VoteListResponse struct {
	ProposalID string         `json:"proposal_id"`
	Votes      []VoteResponse `json:"votes"`
}
