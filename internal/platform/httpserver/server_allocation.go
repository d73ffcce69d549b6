package httpserver

import (
	"errors"
	"net/http"

	allocationdomainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	allocationhttp "grantflow/contexts/grant-governance/allocation-service/transport/http"
)

func writeAllocationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, allocationhttp.ErrorResponse{Code: code, Message: message})
}

func writeAllocationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, allocationdomainerrors.ErrRoundNotFound):
		writeAllocationError(w, http.StatusNotFound, "round_not_found", err.Error())
	case errors.Is(err, allocationdomainerrors.ErrInvalidAllocationInput):
		writeAllocationError(w, http.StatusBadRequest, "invalid_allocation_input", err.Error())
	case errors.Is(err, allocationdomainerrors.ErrRoundNotEnded):
		writeAllocationError(w, http.StatusConflict, "round_not_ended", err.Error())
	case errors.Is(err, allocationdomainerrors.ErrOracleUnavailable):
		writeAllocationError(w, http.StatusBadGateway, "oracle_unavailable", err.Error())
	default:
		writeAllocationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("round_id")
	resp, err := s.allocation.Handler.AllocationHandler(r.Context(), roundID)
	if err != nil {
		writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalizeRound(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("round_id")
	resp, err := s.allocation.Handler.FinalizeHandler(r.Context(), roundID)
	if err != nil {
		writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
