package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"grantflow/contexts/grant-governance/round-service/adapters/memory"
	"grantflow/contexts/grant-governance/round-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"

	"github.com/shopspring/decimal"
)

func newCreateUseCase(store *memory.Store) CreateRoundUseCase {
	return CreateRoundUseCase{Rounds: store, Clock: store, IDGen: store}
}

func validCommand() CreateRoundCommand {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	return CreateRoundCommand{
		RoundID:     "round-1",
		MEFID:       12,
		Name:        "Ecosystem Round 1",
		TopicID:     "topic-1",
		TotalBudget: decimal.RequireFromString("100000"),
		StartsAt:    start,
		EndsAt:      start.AddDate(0, 0, 40),
		Submission:  &entities.PhaseWindow{StartsAt: start, EndsAt: start.AddDate(0, 0, 10)},
		Voting:      &entities.PhaseWindow{StartsAt: start.AddDate(0, 0, 30), EndsAt: start.AddDate(0, 0, 40)},
	}
}

func TestCreateRoundPersists(t *testing.T) {
	store := memory.NewStore()
	useCase := newCreateUseCase(store)

	round, err := useCase.Execute(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	stored, err := store.GetRound(context.Background(), round.RoundID)
	if err != nil {
		t.Fatalf("stored round missing: %v", err)
	}
	if !stored.TotalBudget.Equal(decimal.RequireFromString("100000")) {
		t.Fatalf("budget not preserved: %s", stored.TotalBudget)
	}
}

func TestCreateRoundGeneratesIDWhenEmpty(t *testing.T) {
	store := memory.NewStore()
	useCase := newCreateUseCase(store)

	cmd := validCommand()
	cmd.RoundID = ""
	round, err := useCase.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if round.RoundID == "" {
		t.Fatal("expected generated round id")
	}
}

func TestCreateRoundRejectsMisorderedWindow(t *testing.T) {
	store := memory.NewStore()
	useCase := newCreateUseCase(store)

	cmd := validCommand()
	cmd.Voting = &entities.PhaseWindow{
		StartsAt: cmd.EndsAt,
		EndsAt:   cmd.StartsAt,
	}
	_, err := useCase.Execute(context.Background(), cmd)
	if !errors.Is(err, domainerrors.ErrWindowMisordered) {
		t.Fatalf("expected window misordered, got %v", err)
	}
}

func TestCreateRoundValidatesBasics(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateRoundCommand)
	}{
		{"empty name", func(c *CreateRoundCommand) { c.Name = "  " }},
		{"zero budget", func(c *CreateRoundCommand) { c.TotalBudget = decimal.Zero }},
		{"negative budget", func(c *CreateRoundCommand) { c.TotalBudget = decimal.RequireFromString("-5") }},
		{"ends before starts", func(c *CreateRoundCommand) { c.EndsAt = c.StartsAt.AddDate(0, 0, -1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			useCase := newCreateUseCase(store)
			cmd := validCommand()
			tc.mutate(&cmd)
			_, err := useCase.Execute(context.Background(), cmd)
			if !errors.Is(err, domainerrors.ErrInvalidRoundInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestCreateRoundRejectsDuplicate(t *testing.T) {
	store := memory.NewStore()
	useCase := newCreateUseCase(store)

	if _, err := useCase.Execute(context.Background(), validCommand()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := useCase.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrRoundExists) {
		t.Fatalf("expected round exists, got %v", err)
	}
}
