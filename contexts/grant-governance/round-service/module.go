package roundservice

import (
	"log/slog"

	httpadapter "grantflow/contexts/grant-governance/round-service/adapters/http"
	"grantflow/contexts/grant-governance/round-service/adapters/memory"
	"grantflow/contexts/grant-governance/round-service/application/commands"
	"grantflow/contexts/grant-governance/round-service/application/queries"
	"grantflow/contexts/grant-governance/round-service/application/workers"
	"grantflow/contexts/grant-governance/round-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Sweeper workers.PhaseSweeper
	Store   *memory.Store
}

type Dependencies struct {
	Rounds    ports.RoundRepository
	Proposals ports.SweepRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createUseCase := commands.CreateRoundUseCase{
		Rounds: deps.Rounds,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	phaseUseCase := queries.PhaseUseCase{
		Rounds: deps.Rounds,
		Clock:  deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Rounds: createUseCase,
			Phases: phaseUseCase,
			Logger: deps.Logger,
		},
		Sweeper: workers.PhaseSweeper{
			Rounds:    deps.Rounds,
			Proposals: deps.Proposals,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Rounds:    store,
		Proposals: store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
