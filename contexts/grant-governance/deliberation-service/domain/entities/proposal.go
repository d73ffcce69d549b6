package entities

// ProposalStatus mirrors the slice of the proposal lifecycle this service
// observes.
type ProposalStatus string

const (
	ProposalStatusDeliberation ProposalStatus = "deliberation"
	ProposalStatusVoting       ProposalStatus = "voting"
)
