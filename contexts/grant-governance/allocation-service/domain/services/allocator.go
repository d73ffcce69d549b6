package services

import (
	"sort"

	"grantflow/contexts/grant-governance/allocation-service/domain/entities"

	"github.com/shopspring/decimal"
)

// Distribute runs the greedy ranked-choice budget walk. Winners are visited in
// rank order; a proposal whose full request fits the remaining budget is
// funded, anything else is skipped with the shortfall seen at that instant.
// There is no backtracking: a large early winner can exhaust the budget even
// when funding later, cheaper winners would have spent more of it. Winners
// are the oracle's numeric proposal ids; ids that match no proposal on the
// slate, and repeats of an already-visited id, are ignored. Proposals that
// never ranked are reported unfunded with their full request missing, ordered
// by id so the output is stable.
func Distribute(roundID string, totalBudget decimal.Decimal, proposals []entities.VotingProposal, winners []int64) entities.Allocation {
	byOCVID := make(map[int64]entities.VotingProposal, len(proposals))
	for _, proposal := range proposals {
		byOCVID[proposal.OCVID] = proposal
	}

	remaining := totalBudget
	processed := make(map[int64]bool, len(winners))
	funded := make([]entities.FundedProposal, 0, len(winners))
	unfunded := make([]entities.UnfundedProposal, 0, len(proposals))

	for rank, winnerID := range winners {
		proposal, known := byOCVID[winnerID]
		if !known || processed[winnerID] {
			continue
		}
		processed[winnerID] = true

		if proposal.RequestedAmount.LessThanOrEqual(remaining) {
			remaining = remaining.Sub(proposal.RequestedAmount)
			funded = append(funded, entities.FundedProposal{
				ProposalID:      proposal.ProposalID,
				Name:            proposal.Name,
				RequestedAmount: proposal.RequestedAmount,
				Rank:            rank + 1,
			})
			continue
		}
		unfunded = append(unfunded, entities.UnfundedProposal{
			ProposalID:      proposal.ProposalID,
			Name:            proposal.Name,
			RequestedAmount: proposal.RequestedAmount,
			MissingAmount:   proposal.RequestedAmount.Sub(remaining),
			Ranked:          true,
		})
	}

	var unranked []entities.UnfundedProposal
	for _, proposal := range proposals {
		if processed[proposal.OCVID] {
			continue
		}
		unranked = append(unranked, entities.UnfundedProposal{
			ProposalID:      proposal.ProposalID,
			Name:            proposal.Name,
			RequestedAmount: proposal.RequestedAmount,
			MissingAmount:   proposal.RequestedAmount,
		})
	}
	sort.Slice(unranked, func(i, j int) bool { return unranked[i].ProposalID < unranked[j].ProposalID })
	unfunded = append(unfunded, unranked...)

	return entities.Allocation{
		RoundID:         roundID,
		TotalBudget:     totalBudget,
		RemainingBudget: remaining,
		Funded:          funded,
		Unfunded:        unfunded,
	}
}
