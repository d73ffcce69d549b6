package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FundedProposalPayload is one proposal granted its full request.
type FundedProposalPayload struct {
	ProposalID      string `json:"proposal_id"`
	Name            string `json:"name"`
	RequestedAmount string `json:"requested_amount"`
	Rank            int    `json:"rank"`
}

// UnfundedProposalPayload is one proposal passed over, with the budget
// shortfall seen when it was evaluated.
type UnfundedProposalPayload struct {
	ProposalID      string `json:"proposal_id"`
	Name            string `json:"name"`
	RequestedAmount string `json:"requested_amount"`
	MissingAmount   string `json:"missing_amount"`
	Ranked          bool   `json:"ranked"`
}

// AllocationResponse is a full budget distribution for a round. Amounts are
// decimal strings to survive JSON number precision.
type AllocationResponse struct {
	RoundID         string                    `json:"round_id"`
	TotalBudget     string                    `json:"total_budget"`
	RemainingBudget string                    `json:"remaining_budget"`
	Funded          []FundedProposalPayload   `json:"funded"`
	Unfunded        []UnfundedProposalPayload `json:"unfunded"`
	IsFinal         bool                      `json:"is_final"`
	ComputedAt      time.Time                 `json:"computed_at"`
}

// FinalizeResponse reports how many proposals a finalization settled.
type FinalizeResponse struct {
	RoundID  string `json:"round_id"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}
