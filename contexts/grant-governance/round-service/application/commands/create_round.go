package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "grantflow/contexts/grant-governance/round-service/application"
	"grantflow/contexts/grant-governance/round-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"
	"grantflow/contexts/grant-governance/round-service/ports"

	"github.com/shopspring/decimal"
)

// CreateRoundCommand is the write-model input for round creation. Window
// fields are optional; rounds may be configured incrementally.
type CreateRoundCommand struct {
	RoundID     string
	MEFID       int64
	Name        string
	TopicID     string
	TotalBudget decimal.Decimal
	StartsAt    time.Time
	EndsAt      time.Time

	Submission    *entities.PhaseWindow
	Consideration *entities.PhaseWindow
	Deliberation  *entities.PhaseWindow
	Voting        *entities.PhaseWindow
}

type CreateRoundUseCase struct {
	Rounds ports.RoundRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute validates window configuration and persists the round. A window
// whose end precedes its start is a configuration error rejected here, at
// write time; the phase resolver never revalidates.
func (uc CreateRoundUseCase) Execute(ctx context.Context, cmd CreateRoundCommand) (entities.FundingRound, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.EndsAt.Before(cmd.StartsAt) || cmd.TotalBudget.IsNegative() || cmd.TotalBudget.IsZero() {
		logger.Warn("round create validation failed",
			"event", "round_create_validation_failed",
			"module", "grant-governance/round-service",
			"layer", "application",
			"name", name,
		)
		return entities.FundingRound{}, domainerrors.ErrInvalidRoundInput
	}
	for _, window := range []*entities.PhaseWindow{cmd.Submission, cmd.Consideration, cmd.Deliberation, cmd.Voting} {
		if window == nil {
			continue
		}
		if window.EndsAt.Before(window.StartsAt) {
			return entities.FundingRound{}, domainerrors.ErrWindowMisordered
		}
	}

	roundID := strings.TrimSpace(cmd.RoundID)
	if roundID == "" {
		var err error
		roundID, err = uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.FundingRound{}, err
		}
	}

	now := uc.Clock.Now().UTC()
	round := entities.FundingRound{
		RoundID:       roundID,
		MEFID:         cmd.MEFID,
		Name:          name,
		TopicID:       strings.TrimSpace(cmd.TopicID),
		TotalBudget:   cmd.TotalBudget,
		StartsAt:      cmd.StartsAt.UTC(),
		EndsAt:        cmd.EndsAt.UTC(),
		Submission:    cmd.Submission,
		Consideration: cmd.Consideration,
		Deliberation:  cmd.Deliberation,
		Voting:        cmd.Voting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Rounds.CreateRound(ctx, round); err != nil {
		logger.Error("round create failed",
			"event", "round_create_failed",
			"module", "grant-governance/round-service",
			"layer", "application",
			"round_id", roundID,
			"error", err.Error(),
		)
		return entities.FundingRound{}, err
	}

	logger.Info("round created",
		"event", "round_created",
		"module", "grant-governance/round-service",
		"layer", "application",
		"round_id", roundID,
		"mef_id", cmd.MEFID,
		"total_budget", cmd.TotalBudget.String(),
	)
	return round, nil
}
