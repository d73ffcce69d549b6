package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	considerationdomainerrors "grantflow/contexts/grant-governance/consideration-service/domain/errors"
	considerationhttp "grantflow/contexts/grant-governance/consideration-service/transport/http"
)

func writeConsiderationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, considerationhttp.ErrorResponse{Code: code, Message: message})
}

func writeConsiderationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, considerationdomainerrors.ErrProposalNotFound):
		writeConsiderationError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, considerationdomainerrors.ErrInvalidVoteInput):
		writeConsiderationError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, considerationdomainerrors.ErrFeedbackRequired):
		writeConsiderationError(w, http.StatusBadRequest, "feedback_required", err.Error())
	case errors.Is(err, considerationdomainerrors.ErrProposalNotInConsideration):
		writeConsiderationError(w, http.StatusConflict, "proposal_not_in_consideration", err.Error())
	default:
		writeConsiderationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSubmitConsiderationVote(w http.ResponseWriter, r *http.Request) {
	var req considerationhttp.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeConsiderationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	proposalID := r.PathValue("proposal_id")
	resp, err := s.consideration.Handler.SubmitVoteHandler(r.Context(), proposalID, req)
	if err != nil {
		writeConsiderationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConsiderationEvaluation(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposal_id")
	resp, err := s.consideration.Handler.EvaluationHandler(r.Context(), proposalID)
	if err != nil {
		writeConsiderationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListConsiderationVotes(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposal_id")
	resp, err := s.consideration.Handler.VoteListHandler(r.Context(), proposalID)
	if err != nil {
		writeConsiderationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
