package queries

import (
	"context"
	"time"

	"grantflow/contexts/grant-governance/round-service/domain/entities"
	"grantflow/contexts/grant-governance/round-service/domain/services"
	"grantflow/contexts/grant-governance/round-service/ports"
)

// RoundPhase is the read model returned to callers deciding which engine is
// active for a round.
type RoundPhase struct {
	RoundID    string
	Phase      entities.Phase
	ResolvedAt time.Time
	Previous   *services.NeighborWindow
	Next       *services.NeighborWindow
}

type PhaseUseCase struct {
	Rounds ports.RoundRepository
	Clock  ports.Clock
}

func (uc PhaseUseCase) GetPhase(ctx context.Context, roundID string) (RoundPhase, error) {
	round, err := uc.Rounds.GetRound(ctx, roundID)
	if err != nil {
		return RoundPhase{}, err
	}
	now := uc.Clock.Now().UTC()
	resolution := services.ResolvePhase(now, round)
	return RoundPhase{
		RoundID:    round.RoundID,
		Phase:      resolution.Phase,
		ResolvedAt: now,
		Previous:   resolution.Previous,
		Next:       resolution.Next,
	}, nil
}
