package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"grantflow/contexts/grant-governance/round-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"

	"github.com/google/uuid"
)

type proposalRecord struct {
	ProposalID string
	RoundID    string
	Status     string
	UpdatedAt  time.Time
}

// Store is the in-memory adapter backing round-service ports in tests and
// local wiring. It also serves as Clock and IDGenerator.
type Store struct {
	mu sync.RWMutex

	rounds    map[string]entities.FundingRound
	proposals map[string]proposalRecord
	now       time.Time
}

func NewStore() *Store {
	return &Store{
		rounds:    make(map[string]entities.FundingRound),
		proposals: make(map[string]proposalRecord),
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

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) SeedProposal(proposalID, roundID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposalID] = proposalRecord{
		ProposalID: proposalID,
		RoundID:    roundID,
		Status:     status,
	}
}

func (s *Store) ProposalStatus(proposalID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposals[proposalID].Status
}

func (s *Store) CreateRound(_ context.Context, round entities.FundingRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rounds[round.RoundID]; exists {
		return domainerrors.ErrRoundExists
	}
	s.rounds[round.RoundID] = round
	return nil
}

func (s *Store) GetRound(_ context.Context, roundID string) (entities.FundingRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, found := s.rounds[strings.TrimSpace(roundID)]
	if !found {
		return entities.FundingRound{}, domainerrors.ErrRoundNotFound
	}
	return round, nil
}

func (s *Store) ListActiveRounds(_ context.Context, now time.Time) ([]entities.FundingRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.FundingRound, 0, len(s.rounds))
	for _, round := range s.rounds {
		if !round.StartsAt.After(now) && !round.EndsAt.Before(now) {
			items = append(items, round)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].RoundID < items[j].RoundID })
	return items, nil
}

func (s *Store) TransitionProposalsByRound(
	_ context.Context,
	roundID string,
	fromStatus string,
	toStatus string,
	updatedAt time.Time,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var moved int64
	for id, record := range s.proposals {
		if record.RoundID != roundID || record.Status != fromStatus {
			continue
		}
		record.Status = toStatus
		record.UpdatedAt = updatedAt.UTC()
		s.proposals[id] = record
		moved++
	}
	return moved, nil
}
