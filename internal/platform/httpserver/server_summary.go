package httpserver

import (
	"net/http"

	considerationhttp "grantflow/contexts/grant-governance/consideration-service/transport/http"
	deliberationhttp "grantflow/contexts/grant-governance/deliberation-service/transport/http"
	roundhttp "grantflow/contexts/grant-governance/round-service/transport/http"
)

// proposalSummaryResponse is the cross-service read model for one proposal:
// where the round stands, where the proposal stands, and what both voting
// stages currently say about it.
type proposalSummaryResponse struct {
	ProposalID    string                                       `json:"proposal_id"`
	RoundID       string                                       `json:"round_id"`
	Status        string                                       `json:"status"`
	RoundPhase    roundhttp.RoundPhaseResponse                 `json:"round_phase"`
	Consideration considerationhttp.EvaluationResponse         `json:"consideration"`
	Deliberation  deliberationhttp.DeliberationSummaryResponse `json:"deliberation"`
}

func (s *Server) handleProposalSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	proposalID := r.PathValue("proposal_id")

	proposal, err := s.consideration.Machine.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		writeConsiderationDomainError(w, err)
		return
	}
	phase, err := s.rounds.Handler.RoundPhaseHandler(ctx, proposal.RoundID)
	if err != nil {
		writeRoundDomainError(w, err)
		return
	}
	evaluation, err := s.consideration.Handler.EvaluationHandler(ctx, proposalID)
	if err != nil {
		writeConsiderationDomainError(w, err)
		return
	}
	deliberation, err := s.deliberation.Handler.SummaryHandler(ctx, proposalID)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, proposalSummaryResponse{
		ProposalID:    proposalID,
		RoundID:       proposal.RoundID,
		Status:        string(proposal.Status),
		RoundPhase:    phase,
		Consideration: evaluation,
		Deliberation:  deliberation,
	})
}
