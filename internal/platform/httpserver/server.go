package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	allocationservice "grantflow/contexts/grant-governance/allocation-service"
	considerationservice "grantflow/contexts/grant-governance/consideration-service"
	deliberationservice "grantflow/contexts/grant-governance/deliberation-service"
	roundservice "grantflow/contexts/grant-governance/round-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "grantflow/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	rounds        roundservice.Module
	consideration considerationservice.Module
	deliberation  deliberationservice.Module
	allocation    allocationservice.Module
}

func New(
	rounds roundservice.Module,
	consideration considerationservice.Module,
	deliberation deliberationservice.Module,
	allocation allocationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		rounds:        rounds,
		consideration: consideration,
		deliberation:  deliberation,
		allocation:    allocation,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/rounds", s.handleCreateRound)
	s.mux.HandleFunc("GET /api/rounds/{round_id}/phase", s.handleRoundPhase)
	s.mux.HandleFunc("GET /api/rounds/{round_id}/allocation", s.handleAllocation)
	s.mux.HandleFunc("POST /api/rounds/{round_id}/finalize", s.handleFinalizeRound)

	s.mux.HandleFunc("POST /api/proposals/{proposal_id}/consideration/votes", s.handleSubmitConsiderationVote)
	s.mux.HandleFunc("GET /api/proposals/{proposal_id}/consideration", s.handleConsiderationEvaluation)
	s.mux.HandleFunc("GET /api/proposals/{proposal_id}/consideration/votes", s.handleListConsiderationVotes)

	s.mux.HandleFunc("POST /api/proposals/{proposal_id}/deliberation", s.handleSubmitDeliberation)
	s.mux.HandleFunc("GET /api/proposals/{proposal_id}/deliberation", s.handleDeliberationSummary)

	s.mux.HandleFunc("GET /api/proposals/{proposal_id}/summary", s.handleProposalSummary)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
