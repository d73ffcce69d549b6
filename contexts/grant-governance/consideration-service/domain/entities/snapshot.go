package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OCVVote is one community vote as reported by the on-chain oracle.
type OCVVote struct {
	Account   string
	Hash      string
	Timestamp time.Time
	Height    int64
	Status    string
}

// OCVSnapshot is the cached per-proposal tally from the on-chain vote oracle.
// It is a replaceable cache row refreshed periodically; readers must tolerate
// it being up to ~10 minutes stale or absent entirely.
type OCVSnapshot struct {
	ProposalID          string
	TotalCommunityVotes int
	TotalPositiveVotes  int
	PositiveStakeWeight decimal.Decimal
	Eligible            bool
	Votes               []OCVVote
	RefreshedAt         time.Time
}

// EmptySnapshot is the zero-value contract for proposals the oracle has not
// synced yet: not eligible, zero votes, zero stake weight.
func EmptySnapshot(proposalID string) OCVSnapshot {
	return OCVSnapshot{
		ProposalID:          proposalID,
		PositiveStakeWeight: decimal.Zero,
	}
}
