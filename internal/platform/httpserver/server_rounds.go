package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	rounddomainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"
	roundhttp "grantflow/contexts/grant-governance/round-service/transport/http"
)

func writeRoundError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, roundhttp.ErrorResponse{Code: code, Message: message})
}

func writeRoundDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rounddomainerrors.ErrRoundNotFound):
		writeRoundError(w, http.StatusNotFound, "round_not_found", err.Error())
	case errors.Is(err, rounddomainerrors.ErrInvalidRoundInput):
		writeRoundError(w, http.StatusBadRequest, "invalid_round_input", err.Error())
	case errors.Is(err, rounddomainerrors.ErrWindowMisordered):
		writeRoundError(w, http.StatusBadRequest, "window_misordered", err.Error())
	case errors.Is(err, rounddomainerrors.ErrRoundExists):
		writeRoundError(w, http.StatusConflict, "round_exists", err.Error())
	default:
		writeRoundError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateRound(w http.ResponseWriter, r *http.Request) {
	var req roundhttp.CreateRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRoundError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.rounds.Handler.CreateRoundHandler(r.Context(), req)
	if err != nil {
		writeRoundDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoundPhase(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("round_id")
	resp, err := s.rounds.Handler.RoundPhaseHandler(r.Context(), roundID)
	if err != nil {
		writeRoundDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
