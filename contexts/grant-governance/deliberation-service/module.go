package deliberationservice

import (
	"log/slog"

	httpadapter "grantflow/contexts/grant-governance/deliberation-service/adapters/http"
	"grantflow/contexts/grant-governance/deliberation-service/adapters/memory"
	"grantflow/contexts/grant-governance/deliberation-service/application/commands"
	"grantflow/contexts/grant-governance/deliberation-service/application/queries"
	"grantflow/contexts/grant-governance/deliberation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	ReviewerVotes ports.ReviewerVoteRepository
	Feedback      ports.CommunityFeedbackRepository
	Proposals     ports.ProposalRepository
	Reviewers     ports.ReviewerDirectory
	Clock         ports.Clock
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submitUseCase := commands.SubmitDeliberationUseCase{
		ReviewerVotes: deps.ReviewerVotes,
		Feedback:      deps.Feedback,
		Proposals:     deps.Proposals,
		Reviewers:     deps.Reviewers,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	summaryUseCase := queries.RecommendationUseCase{
		ReviewerVotes: deps.ReviewerVotes,
		Feedback:      deps.Feedback,
	}
	return Module{
		Handler: httpadapter.Handler{
			Submissions: submitUseCase,
			Summaries:   summaryUseCase,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		ReviewerVotes: store,
		Feedback:      store,
		Proposals:     store,
		Reviewers:     store,
		Clock:         store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
