package services

import (
	"time"

	"grantflow/contexts/grant-governance/round-service/domain/entities"
)

// NeighborWindow describes the window nearest to "now" on one side, used for
// transition messaging while a round sits between two phases.
type NeighborWindow struct {
	Kind   entities.WindowKind
	Window entities.PhaseWindow
}

// PhaseResolution is the full answer for a round at a given instant. Previous
// and Next are populated only for PhaseBetweenPhases.
type PhaseResolution struct {
	Phase    entities.Phase
	Previous *NeighborWindow
	Next     *NeighborWindow
}

// ResolvePhase maps "now" against a round's windows. It is total: any window
// configuration, including zero configured windows, yields exactly one phase.
// Windows are checked independently in temporal order; the resolver does not
// assume they are contiguous or non-overlapping.
func ResolvePhase(now time.Time, round entities.FundingRound) PhaseResolution {
	if now.Before(round.StartsAt) {
		return PhaseResolution{Phase: entities.PhaseUpcoming}
	}
	if now.After(round.EndsAt) {
		return PhaseResolution{Phase: entities.PhaseCompleted}
	}

	kinds := entities.WindowKinds()
	for i, window := range round.Windows() {
		if window == nil {
			continue
		}
		if window.Contains(now) {
			return PhaseResolution{Phase: phaseForWindow(kinds[i])}
		}
	}

	resolution := PhaseResolution{Phase: entities.PhaseBetweenPhases}
	resolution.Previous, resolution.Next = neighborWindows(now, round)
	return resolution
}

// neighborWindows finds the nearest previous window (highest EndsAt <= now)
// and nearest next window (lowest StartsAt > now), skipping unconfigured
// windows.
func neighborWindows(now time.Time, round entities.FundingRound) (*NeighborWindow, *NeighborWindow) {
	var previous, next *NeighborWindow

	kinds := entities.WindowKinds()
	for i, window := range round.Windows() {
		if window == nil {
			continue
		}
		if !window.EndsAt.After(now) {
			if previous == nil || window.EndsAt.After(previous.Window.EndsAt) {
				previous = &NeighborWindow{Kind: kinds[i], Window: *window}
			}
		}
		if window.StartsAt.After(now) {
			if next == nil || window.StartsAt.Before(next.Window.StartsAt) {
				next = &NeighborWindow{Kind: kinds[i], Window: *window}
			}
		}
	}
	return previous, next
}

func phaseForWindow(kind entities.WindowKind) entities.Phase {
	switch kind {
	case entities.WindowSubmission:
		return entities.PhaseSubmission
	case entities.WindowConsideration:
		return entities.PhaseConsideration
	case entities.WindowDeliberation:
		return entities.PhaseDeliberation
	case entities.WindowVoting:
		return entities.PhaseVoting
	default:
		return entities.PhaseBetweenPhases
	}
}
