package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PhaseWindowPayload struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type CreateRoundRequest struct {
	RoundID     string    `json:"round_id,omitempty"`
	MEFID       int64     `json:"mef_id"`
	Name        string    `json:"name"`
	TopicID     string    `json:"topic_id"`
	TotalBudget string    `json:"total_budget"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`

	Submission    *PhaseWindowPayload `json:"submission,omitempty"`
	Consideration *PhaseWindowPayload `json:"consideration,omitempty"`
	Deliberation  *PhaseWindowPayload `json:"deliberation,omitempty"`
	Voting        *PhaseWindowPayload `json:"voting,omitempty"`
}

type RoundResponse struct {
	RoundID     string    `json:"round_id"`
	MEFID       int64     `json:"mef_id"`
	Name        string    `json:"name"`
	TopicID     string    `json:"topic_id,omitempty"`
	TotalBudget string    `json:"total_budget"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type NeighborWindowPayload struct {
	Kind     string    `json:"kind"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type RoundPhaseResponse struct {
	RoundID    string                 `json:"round_id"`
	Phase      string                 `json:"phase"`
	ResolvedAt time.Time              `json:"resolved_at"`
	Previous   *NeighborWindowPayload `json:"previous_window,omitempty"`
	Next       *NeighborWindowPayload `json:"next_window,omitempty"`
}
