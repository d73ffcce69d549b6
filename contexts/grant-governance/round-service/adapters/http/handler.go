package httpadapter

import (
	"context"
	"log/slog"

	"grantflow/contexts/grant-governance/round-service/application/commands"
	"grantflow/contexts/grant-governance/round-service/application/queries"
	"grantflow/contexts/grant-governance/round-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"
	"grantflow/contexts/grant-governance/round-service/domain/services"
	httptransport "grantflow/contexts/grant-governance/round-service/transport/http"

	"github.com/shopspring/decimal"
)

type Handler struct {
	Rounds commands.CreateRoundUseCase
	Phases queries.PhaseUseCase
	Logger *slog.Logger
}

// CreateRoundHandler godoc
// @Summary Create a funding round
// @Description Creates a round with its phase windows and total budget.
// @Tags round-service
// @Accept json
// @Produce json
// @Param request body httptransport.CreateRoundRequest true "Round definition"
// @Success 200 {object} httptransport.RoundResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/rounds [post]
func (h Handler) CreateRoundHandler(ctx context.Context, req httptransport.CreateRoundRequest) (httptransport.RoundResponse, error) {
	budget, err := decimal.NewFromString(req.TotalBudget)
	if err != nil {
		return httptransport.RoundResponse{}, domainerrors.ErrInvalidRoundInput
	}
	round, err := h.Rounds.Execute(ctx, commands.CreateRoundCommand{
		RoundID:       req.RoundID,
		MEFID:         req.MEFID,
		Name:          req.Name,
		TopicID:       req.TopicID,
		TotalBudget:   budget,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Submission:    windowFromPayload(req.Submission),
		Consideration: windowFromPayload(req.Consideration),
		Deliberation:  windowFromPayload(req.Deliberation),
		Voting:        windowFromPayload(req.Voting),
	})
	if err != nil {
		return httptransport.RoundResponse{}, err
	}
	return httptransport.RoundResponse{
		RoundID:     round.RoundID,
		MEFID:       round.MEFID,
		Name:        round.Name,
		TopicID:     round.TopicID,
		TotalBudget: round.TotalBudget.String(),
		StartsAt:    round.StartsAt,
		EndsAt:      round.EndsAt,
	}, nil
}

// RoundPhaseHandler godoc
// @Summary Resolve the current phase of a round
// @Description Resolves the phase for the current instant, with neighbor windows when between phases.
// @Tags round-service
// @Produce json
// @Param round_id path string true "Round id"
// @Success 200 {object} httptransport.RoundPhaseResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/rounds/{round_id}/phase [get]
func (h Handler) RoundPhaseHandler(ctx context.Context, roundID string) (httptransport.RoundPhaseResponse, error) {
	phase, err := h.Phases.GetPhase(ctx, roundID)
	if err != nil {
		return httptransport.RoundPhaseResponse{}, err
	}
	return httptransport.RoundPhaseResponse{
		RoundID:    phase.RoundID,
		Phase:      string(phase.Phase),
		ResolvedAt: phase.ResolvedAt,
		Previous:   neighborPayload(phase.Previous),
		Next:       neighborPayload(phase.Next),
	}, nil
}

func windowFromPayload(payload *httptransport.PhaseWindowPayload) *entities.PhaseWindow {
	if payload == nil {
		return nil
	}
	return &entities.PhaseWindow{
		StartsAt: payload.StartsAt.UTC(),
		EndsAt:   payload.EndsAt.UTC(),
	}
}

func neighborPayload(neighbor *services.NeighborWindow) *httptransport.NeighborWindowPayload {
	if neighbor == nil {
		return nil
	}
	return &httptransport.NeighborWindowPayload{
		Kind:     string(neighbor.Kind),
		StartsAt: neighbor.Window.StartsAt,
		EndsAt:   neighbor.Window.EndsAt,
	}
}
