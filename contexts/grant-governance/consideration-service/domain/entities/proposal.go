package entities

type ProposalStatus string

const (
	ProposalStatusDraft         ProposalStatus = "draft"
	ProposalStatusConsideration ProposalStatus = "consideration"
	ProposalStatusDeliberation  ProposalStatus = "deliberation"
	ProposalStatusVoting        ProposalStatus = "voting"
	ProposalStatusApproved      ProposalStatus = "approved"
	ProposalStatusRejected      ProposalStatus = "rejected"
)

// Verdict is the tri-state outcome of the consideration eligibility engine.
type Verdict string

const (
	VerdictApproved Verdict = "approved"
	VerdictRejected Verdict = "rejected"
	VerdictPending  Verdict = "pending"
)
