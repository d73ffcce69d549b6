package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/consideration-service/domain/errors"
	"grantflow/contexts/grant-governance/consideration-service/ports"
)

// Store backs every consideration-service port in tests and local wiring,
// including a programmable stand-in for the vote oracle.
type Store struct {
	mu sync.RWMutex

	votes     map[string]map[string]entities.ConsiderationVote
	snapshots map[string]entities.OCVSnapshot
	proposals map[string]ports.ProposalProjection
	reviewers map[string]bool
	rounds    map[string]ports.RoundProjection

	oracleSnapshots map[string]entities.OCVSnapshot
	oracleErr       error

	now time.Time
}

func NewStore() *Store {
	return &Store{
		votes:           make(map[string]map[string]entities.ConsiderationVote),
		snapshots:       make(map[string]entities.OCVSnapshot),
		proposals:       make(map[string]ports.ProposalProjection),
		reviewers:       make(map[string]bool),
		rounds:          make(map[string]ports.RoundProjection),
		oracleSnapshots: make(map[string]entities.OCVSnapshot),
	}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) SetProposal(projection ports.ProposalProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[projection.ProposalID] = projection
}

func (s *Store) SetReviewer(userID, roundID string, isReviewer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviewers[reviewerKey(userID, roundID)] = isReviewer
}

func (s *Store) SetRound(round ports.RoundProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[round.RoundID] = round
}

func (s *Store) SetOracleSnapshot(snapshot entities.OCVSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oracleSnapshots[snapshot.ProposalID] = snapshot
}

func (s *Store) SetOracleErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oracleErr = err
}

func (s *Store) UpsertVote(_ context.Context, vote entities.ConsiderationVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byVoter, found := s.votes[vote.ProposalID]
	if !found {
		byVoter = make(map[string]entities.ConsiderationVote)
		s.votes[vote.ProposalID] = byVoter
	}
	if existing, found := byVoter[vote.VoterID]; found {
		vote.CreatedAt = existing.CreatedAt
	}
	byVoter[vote.VoterID] = vote
	return nil
}

func (s *Store) CountReviewerDecisions(_ context.Context, proposalID string) (ports.DecisionCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts ports.DecisionCounts
	for _, vote := range s.votes[proposalID] {
		if !vote.IsReviewer {
			continue
		}
		switch vote.Decision {
		case entities.DecisionApproved:
			counts.Approved++
		case entities.DecisionRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (s *Store) ListVotesByProposal(_ context.Context, proposalID string) ([]entities.ConsiderationVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.ConsiderationVote, 0, len(s.votes[proposalID]))
	for _, vote := range s.votes[proposalID] {
		items = append(items, vote)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].VoterID < items[j].VoterID })
	return items, nil
}

func (s *Store) GetSnapshot(_ context.Context, proposalID string) (entities.OCVSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, found := s.snapshots[proposalID]
	return snapshot, found, nil
}

func (s *Store) SaveSnapshot(_ context.Context, snapshot entities.OCVSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ProposalID] = snapshot
	return nil
}

func (s *Store) GetProposal(_ context.Context, proposalID string) (ports.ProposalProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projection, found := s.proposals[strings.TrimSpace(proposalID)]
	if !found {
		return ports.ProposalProjection{}, domainerrors.ErrProposalNotFound
	}
	return projection, nil
}

func (s *Store) ListByRoundAndStatus(_ context.Context, roundID string, status entities.ProposalStatus) ([]ports.ProposalProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []ports.ProposalProjection
	for _, projection := range s.proposals {
		if projection.RoundID == roundID && projection.Status == status {
			items = append(items, projection)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProposalID < items[j].ProposalID })
	return items, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	proposalID string,
	from entities.ProposalStatus,
	to entities.ProposalStatus,
	_ time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projection, found := s.proposals[proposalID]
	if !found {
		return false, domainerrors.ErrProposalNotFound
	}
	if projection.Status != from {
		return false, nil
	}
	projection.Status = to
	s.proposals[proposalID] = projection
	return true, nil
}

func (s *Store) EligibilityFor(_ context.Context, userID string, roundID string) (ports.ReviewerEligibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.ReviewerEligibility{IsReviewer: s.reviewers[reviewerKey(userID, roundID)]}, nil
}

func (s *Store) ListActiveRounds(_ context.Context, _ time.Time) ([]ports.RoundProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.RoundProjection, 0, len(s.rounds))
	for _, round := range s.rounds {
		items = append(items, round)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].RoundID < items[j].RoundID })
	return items, nil
}

func (s *Store) GetConsiderationVotes(
	_ context.Context,
	_ int64,
	proposalID string,
	_ time.Time,
	_ time.Time,
) (entities.OCVSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.oracleErr != nil {
		return entities.OCVSnapshot{}, s.oracleErr
	}
	snapshot, found := s.oracleSnapshots[proposalID]
	if !found {
		return entities.EmptySnapshot(proposalID), nil
	}
	return snapshot, nil
}

func reviewerKey(userID, roundID string) string {
	return strings.TrimSpace(roundID) + "/" + strings.TrimSpace(userID)
}
