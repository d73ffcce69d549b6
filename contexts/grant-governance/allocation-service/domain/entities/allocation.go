package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus mirrors the tail of the proposal lifecycle this service
// observes and writes.
type ProposalStatus string

const (
	ProposalStatusVoting   ProposalStatus = "voting"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// VotingProposal is a proposal competing for the round's budget. OCVID is
// the numeric id the on-chain vote service knows the proposal by; the winner
// ordering it returns is expressed in these ids.
type VotingProposal struct {
	ProposalID      string
	OCVID           int64
	Name            string
	RequestedAmount decimal.Decimal
}

// FundedProposal is a proposal the allocator granted its full request.
type FundedProposal struct {
	ProposalID      string
	Name            string
	RequestedAmount decimal.Decimal
	Rank            int
}

// UnfundedProposal is a proposal the allocator passed over, with the shortfall
// observed at the moment it was evaluated. Proposals that never ranked carry
// their full request as the missing amount.
type UnfundedProposal struct {
	ProposalID      string
	Name            string
	RequestedAmount decimal.Decimal
	MissingAmount   decimal.Decimal
	Ranked          bool
}

// Allocation is one complete distribution of a round's budget. WinnersKnown
// is false only when the oracle was unreachable and no cached ordering
// exists; such an allocation is an empty placeholder, not a verdict, and must
// never be settled into proposal statuses.
type Allocation struct {
	RoundID         string
	TotalBudget     decimal.Decimal
	RemainingBudget decimal.Decimal
	Funded          []FundedProposal
	Unfunded        []UnfundedProposal
	WinnersKnown    bool
	IsFinal         bool
	ComputedAt      time.Time
}
