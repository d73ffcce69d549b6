package considerationservice

import (
	"log/slog"

	httpadapter "grantflow/contexts/grant-governance/consideration-service/adapters/http"
	"grantflow/contexts/grant-governance/consideration-service/adapters/memory"
	"grantflow/contexts/grant-governance/consideration-service/application/commands"
	"grantflow/contexts/grant-governance/consideration-service/application/queries"
	"grantflow/contexts/grant-governance/consideration-service/application/workers"
	"grantflow/contexts/grant-governance/consideration-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Refresher workers.SnapshotRefresher
	Machine   commands.CheckAndMoveUseCase
	Store     *memory.Store
}

type Dependencies struct {
	Votes                ports.VoteRepository
	Snapshots            ports.SnapshotStore
	Proposals            ports.ProposalRepository
	Reviewers            ports.ReviewerDirectory
	Rounds               ports.RoundReader
	Oracle               ports.VoteOracle
	Clock                ports.Clock
	MinReviewerApprovals int
	Logger               *slog.Logger
}

func NewModule(deps Dependencies) Module {
	evaluateUseCase := queries.EvaluateUseCase{
		Votes:                deps.Votes,
		Snapshots:            deps.Snapshots,
		MinReviewerApprovals: deps.MinReviewerApprovals,
		Logger:               deps.Logger,
	}
	machine := commands.CheckAndMoveUseCase{
		Proposals: deps.Proposals,
		Evaluate:  evaluateUseCase,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	submitUseCase := commands.SubmitVoteUseCase{
		Votes:     deps.Votes,
		Proposals: deps.Proposals,
		Reviewers: deps.Reviewers,
		Machine:   machine,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:      submitUseCase,
			Evaluation: evaluateUseCase,
			Logger:     deps.Logger,
		},
		Refresher: workers.SnapshotRefresher{
			Rounds:    deps.Rounds,
			Proposals: deps.Proposals,
			Snapshots: deps.Snapshots,
			Oracle:    deps.Oracle,
			Machine:   machine,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		Machine: machine,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:     store,
		Snapshots: store,
		Proposals: store,
		Reviewers: store,
		Rounds:    store,
		Oracle:    store,
		Clock:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
