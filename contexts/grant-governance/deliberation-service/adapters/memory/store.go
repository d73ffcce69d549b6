package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"grantflow/contexts/grant-governance/deliberation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/deliberation-service/domain/errors"
	"grantflow/contexts/grant-governance/deliberation-service/domain/services"
	"grantflow/contexts/grant-governance/deliberation-service/ports"
)

// Store backs every deliberation-service port in tests and local wiring.
type Store struct {
	mu sync.RWMutex

	reviewerVotes map[string]map[string]entities.ReviewerVote
	feedback      map[string]map[string]entities.CommunityFeedback
	proposals     map[string]ports.ProposalProjection
	reviewers     map[string]bool

	now time.Time
}

func NewStore() *Store {
	return &Store{
		reviewerVotes: make(map[string]map[string]entities.ReviewerVote),
		feedback:      make(map[string]map[string]entities.CommunityFeedback),
		proposals:     make(map[string]ports.ProposalProjection),
		reviewers:     make(map[string]bool),
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

func (s *Store) UpsertReviewerVote(_ context.Context, vote entities.ReviewerVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byReviewer, found := s.reviewerVotes[vote.ProposalID]
	if !found {
		byReviewer = make(map[string]entities.ReviewerVote)
		s.reviewerVotes[vote.ProposalID] = byReviewer
	}
	if existing, found := byReviewer[vote.ReviewerID]; found {
		vote.CreatedAt = existing.CreatedAt
	}
	byReviewer[vote.ReviewerID] = vote
	return nil
}

func (s *Store) CountRecommendations(_ context.Context, proposalID string) (services.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tally services.Tally
	for _, vote := range s.reviewerVotes[proposalID] {
		if vote.Recommended {
			tally.Yes++
		} else {
			tally.No++
		}
	}
	return tally, nil
}

func (s *Store) ListReviewerVotes(_ context.Context, proposalID string) ([]entities.ReviewerVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.ReviewerVote, 0, len(s.reviewerVotes[proposalID]))
	for _, vote := range s.reviewerVotes[proposalID] {
		items = append(items, vote)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ReviewerID < items[j].ReviewerID })
	return items, nil
}

func (s *Store) UpsertCommunityFeedback(_ context.Context, feedback entities.CommunityFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byAuthor, found := s.feedback[feedback.ProposalID]
	if !found {
		byAuthor = make(map[string]entities.CommunityFeedback)
		s.feedback[feedback.ProposalID] = byAuthor
	}
	if existing, found := byAuthor[feedback.AuthorID]; found {
		feedback.CreatedAt = existing.CreatedAt
	}
	byAuthor[feedback.AuthorID] = feedback
	return nil
}

func (s *Store) ListCommunityFeedback(_ context.Context, proposalID string) ([]entities.CommunityFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.CommunityFeedback, 0, len(s.feedback[proposalID]))
	for _, feedback := range s.feedback[proposalID] {
		items = append(items, feedback)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AuthorID < items[j].AuthorID })
	return items, nil
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

func (s *Store) EligibilityFor(_ context.Context, userID string, roundID string) (ports.ReviewerEligibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.ReviewerEligibility{IsReviewer: s.reviewers[reviewerKey(userID, roundID)]}, nil
}

func reviewerKey(userID, roundID string) string {
	return strings.TrimSpace(roundID) + "/" + strings.TrimSpace(userID)
}
