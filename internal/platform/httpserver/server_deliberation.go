package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	deliberationdomainerrors "grantflow/contexts/grant-governance/deliberation-service/domain/errors"
	deliberationhttp "grantflow/contexts/grant-governance/deliberation-service/transport/http"
)

func writeDeliberationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, deliberationhttp.ErrorResponse{Code: code, Message: message})
}

func writeDeliberationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deliberationdomainerrors.ErrProposalNotFound):
		writeDeliberationError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, deliberationdomainerrors.ErrInvalidDeliberationInput):
		writeDeliberationError(w, http.StatusBadRequest, "invalid_deliberation_input", err.Error())
	case errors.Is(err, deliberationdomainerrors.ErrMemoRequired):
		writeDeliberationError(w, http.StatusBadRequest, "memo_required", err.Error())
	case errors.Is(err, deliberationdomainerrors.ErrProposalNotInDeliberation):
		writeDeliberationError(w, http.StatusConflict, "proposal_not_in_deliberation", err.Error())
	default:
		writeDeliberationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSubmitDeliberation(w http.ResponseWriter, r *http.Request) {
	var req deliberationhttp.SubmitDeliberationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	proposalID := r.PathValue("proposal_id")
	resp, err := s.deliberation.Handler.SubmitHandler(r.Context(), proposalID, req)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeliberationSummary(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposal_id")
	resp, err := s.deliberation.Handler.SummaryHandler(r.Context(), proposalID)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
