package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"grantflow/contexts/grant-governance/allocation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	"grantflow/contexts/grant-governance/allocation-service/ports"
)

type proposalRecord struct {
	proposal entities.VotingProposal
	roundID  string
	status   entities.ProposalStatus
}

// Store backs every allocation-service port in tests and local wiring,
// including a programmable ranked-vote oracle.
type Store struct {
	mu sync.RWMutex

	rounds    map[string]ports.RoundProjection
	proposals map[string]proposalRecord
	winners   map[string][]int64

	oracleWinners map[int64][]int64
	oracleErr     error

	now time.Time
}

func NewStore() *Store {
	return &Store{
		rounds:        make(map[string]ports.RoundProjection),
		proposals:     make(map[string]proposalRecord),
		winners:       make(map[string][]int64),
		oracleWinners: make(map[int64][]int64),
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

func (s *Store) SetRound(round ports.RoundProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[round.RoundID] = round
}

func (s *Store) SetProposal(roundID string, proposal entities.VotingProposal, status entities.ProposalStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.ProposalID] = proposalRecord{
		proposal: proposal,
		roundID:  roundID,
		status:   status,
	}
}

func (s *Store) ProposalStatus(proposalID string) entities.ProposalStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposals[proposalID].status
}

func (s *Store) SetOracleWinners(mefID int64, winners []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oracleWinners[mefID] = winners
}

func (s *Store) SetOracleErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oracleErr = err
}

func (s *Store) GetRound(_ context.Context, roundID string) (ports.RoundProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, found := s.rounds[strings.TrimSpace(roundID)]
	if !found {
		return ports.RoundProjection{}, domainerrors.ErrRoundNotFound
	}
	return round, nil
}

func (s *Store) ListEndedRounds(_ context.Context, now time.Time) ([]ports.RoundProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []ports.RoundProjection
	for _, round := range s.rounds {
		if !now.Before(round.EndsAt) {
			items = append(items, round)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].RoundID < items[j].RoundID })
	return items, nil
}

func (s *Store) ListVotingSlate(_ context.Context, roundID string) ([]entities.VotingProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.VotingProposal
	for _, record := range s.proposals {
		if record.roundID != roundID {
			continue
		}
		switch record.status {
		case entities.ProposalStatusVoting, entities.ProposalStatusApproved, entities.ProposalStatusRejected:
			items = append(items, record.proposal)
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
	record, found := s.proposals[proposalID]
	if !found || record.status != from {
		return false, nil
	}
	record.status = to
	s.proposals[proposalID] = record
	return true, nil
}

func (s *Store) GetRankedVotes(_ context.Context, mefID int64, _ time.Time, _ time.Time) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.oracleErr != nil {
		return nil, s.oracleErr
	}
	return s.oracleWinners[mefID], nil
}

func (s *Store) GetWinners(_ context.Context, roundID string) ([]int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	winners, found := s.winners[roundID]
	return winners, found, nil
}

func (s *Store) SaveWinners(_ context.Context, roundID string, winners []int64, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.winners[roundID] = winners
	return nil
}
