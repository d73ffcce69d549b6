package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Phase is the stage a funding round is currently in, resolved purely from
// the clock and the round's configured windows.
type Phase string

const (
	PhaseUpcoming      Phase = "upcoming"
	PhaseSubmission    Phase = "submission"
	PhaseConsideration Phase = "consideration"
	PhaseDeliberation  Phase = "deliberation"
	PhaseVoting        Phase = "voting"
	PhaseCompleted     Phase = "completed"
	PhaseBetweenPhases Phase = "between_phases"
)

// WindowKind identifies one of the four configurable phase windows.
type WindowKind string

const (
	WindowSubmission    WindowKind = "submission"
	WindowConsideration WindowKind = "consideration"
	WindowDeliberation  WindowKind = "deliberation"
	WindowVoting        WindowKind = "voting"
)

// PhaseWindow is a half-open [StartsAt, EndsAt) interval. Windows are
// optional: a partially configured round simply has nil entries.
type PhaseWindow struct {
	StartsAt time.Time
	EndsAt   time.Time
}

func (w PhaseWindow) Contains(now time.Time) bool {
	return !now.Before(w.StartsAt) && now.Before(w.EndsAt)
}

type FundingRound struct {
	RoundID     string
	MEFID       int64
	Name        string
	TopicID     string
	TotalBudget decimal.Decimal
	StartsAt    time.Time
	EndsAt      time.Time

	Submission    *PhaseWindow
	Consideration *PhaseWindow
	Deliberation  *PhaseWindow
	Voting        *PhaseWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Windows returns the configured windows in temporal phase order. Missing
// windows stay in the slice as nil so positional phase mapping holds.
func (r FundingRound) Windows() []*PhaseWindow {
	return []*PhaseWindow{r.Submission, r.Consideration, r.Deliberation, r.Voting}
}

// WindowKinds mirrors Windows() index-for-index.
func WindowKinds() []WindowKind {
	return []WindowKind{WindowSubmission, WindowConsideration, WindowDeliberation, WindowVoting}
}
