package allocationservice

import (
	"log/slog"

	httpadapter "grantflow/contexts/grant-governance/allocation-service/adapters/http"
	"grantflow/contexts/grant-governance/allocation-service/adapters/memory"
	"grantflow/contexts/grant-governance/allocation-service/application/commands"
	"grantflow/contexts/grant-governance/allocation-service/application/queries"
	"grantflow/contexts/grant-governance/allocation-service/application/workers"
	"grantflow/contexts/grant-governance/allocation-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Finalizer workers.RoundFinalizer
	Store     *memory.Store
}

type Dependencies struct {
	Rounds    ports.RoundReader
	Proposals ports.ProposalReader
	Oracle    ports.RankedVoteOracle
	Winners   ports.WinnersCache
	Clock     ports.Clock
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	allocateUseCase := queries.AllocateUseCase{
		Rounds:    deps.Rounds,
		Proposals: deps.Proposals,
		Oracle:    deps.Oracle,
		Winners:   deps.Winners,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	finalizeUseCase := commands.FinalizeRoundUseCase{
		Rounds:    deps.Rounds,
		Proposals: deps.Proposals,
		Allocate:  allocateUseCase,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Allocations: allocateUseCase,
			Finalizer:   finalizeUseCase,
			Logger:      deps.Logger,
		},
		Finalizer: workers.RoundFinalizer{
			Rounds:   deps.Rounds,
			Finalize: finalizeUseCase,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Rounds:    store,
		Proposals: store,
		Oracle:    store,
		Winners:   store,
		Clock:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
