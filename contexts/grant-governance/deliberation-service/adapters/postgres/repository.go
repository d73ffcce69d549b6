package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"grantflow/contexts/grant-governance/deliberation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/deliberation-service/domain/errors"
	"grantflow/contexts/grant-governance/deliberation-service/domain/services"
	"grantflow/contexts/grant-governance/deliberation-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UpsertReviewerVote(ctx context.Context, vote entities.ReviewerVote) error {
	row := reviewerVoteModel{
		ProposalID:  strings.TrimSpace(vote.ProposalID),
		ReviewerID:  strings.TrimSpace(vote.ReviewerID),
		Recommended: vote.Recommended,
		Memo:        vote.Memo,
		CreatedAt:   vote.CreatedAt.UTC(),
		UpdatedAt:   vote.UpdatedAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "proposal_id"}, {Name: "reviewer_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"recommended": row.Recommended,
			"memo":        row.Memo,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("deliberation_repo_upsert_vote_failed", create.Error,
			"proposal_id", row.ProposalID,
			"reviewer_id", row.ReviewerID,
		)
	}
	return nil
}

func (r *Repository) CountRecommendations(ctx context.Context, proposalID string) (services.Tally, error) {
	type bucket struct {
		Recommended bool
		Total       int
	}
	var rows []bucket
	err := r.db.WithContext(ctx).
		Model(&reviewerVoteModel{}).
		Select("recommended, COUNT(*) AS total").
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Group("recommended").
		Scan(&rows).Error
	if err != nil {
		return services.Tally{}, r.logError("deliberation_repo_count_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	var tally services.Tally
	for _, row := range rows {
		if row.Recommended {
			tally.Yes = row.Total
		} else {
			tally.No = row.Total
		}
	}
	return tally, nil
}

func (r *Repository) ListReviewerVotes(ctx context.Context, proposalID string) ([]entities.ReviewerVote, error) {
	var rows []reviewerVoteModel
	if err := r.db.WithContext(ctx).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("deliberation_repo_list_votes_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	items := make([]entities.ReviewerVote, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.ReviewerVote{
			ProposalID:  row.ProposalID,
			ReviewerID:  row.ReviewerID,
			Recommended: row.Recommended,
			Memo:        row.Memo,
			CreatedAt:   row.CreatedAt.UTC(),
			UpdatedAt:   row.UpdatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) UpsertCommunityFeedback(ctx context.Context, feedback entities.CommunityFeedback) error {
	row := communityFeedbackModel{
		ProposalID: strings.TrimSpace(feedback.ProposalID),
		AuthorID:   strings.TrimSpace(feedback.AuthorID),
		Feedback:   feedback.Feedback,
		CreatedAt:  feedback.CreatedAt.UTC(),
		UpdatedAt:  feedback.UpdatedAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "proposal_id"}, {Name: "author_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"feedback":   row.Feedback,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("deliberation_repo_upsert_feedback_failed", create.Error,
			"proposal_id", row.ProposalID,
			"author_id", row.AuthorID,
		)
	}
	return nil
}

func (r *Repository) ListCommunityFeedback(ctx context.Context, proposalID string) ([]entities.CommunityFeedback, error) {
	var rows []communityFeedbackModel
	if err := r.db.WithContext(ctx).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("deliberation_repo_list_feedback_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	items := make([]entities.CommunityFeedback, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.CommunityFeedback{
			ProposalID: row.ProposalID,
			AuthorID:   row.AuthorID,
			Feedback:   row.Feedback,
			CreatedAt:  row.CreatedAt.UTC(),
			UpdatedAt:  row.UpdatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) GetProposal(ctx context.Context, proposalID string) (ports.ProposalProjection, error) {
	var row proposalProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(proposalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProposalProjection{}, domainerrors.ErrProposalNotFound
		}
		return ports.ProposalProjection{}, r.logError("deliberation_repo_get_proposal_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	return ports.ProposalProjection{
		ProposalID: row.ID,
		RoundID:    row.FundingRoundID,
		Status:     entities.ProposalStatus(row.Status),
	}, nil
}

func (r *Repository) EligibilityFor(ctx context.Context, userID string, roundID string) (ports.ReviewerEligibility, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("reviewer_group_members AS m").
		Joins("JOIN reviewer_groups AS g ON g.id = m.group_id").
		Joins("JOIN funding_rounds AS r ON r.topic_id = g.topic_id").
		Where("m.user_id = ?", strings.TrimSpace(userID)).
		Where("r.id = ?", strings.TrimSpace(roundID)).
		Count(&total).Error
	if err != nil {
		return ports.ReviewerEligibility{}, r.logError("deliberation_repo_reviewer_lookup_failed", err,
			"user_id", strings.TrimSpace(userID),
			"round_id", strings.TrimSpace(roundID),
		)
	}
	return ports.ReviewerEligibility{IsReviewer: total > 0}, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "grant-governance/deliberation-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("deliberation repository operation failed", fields...)
	return err
}

type reviewerVoteModel struct {
	ProposalID  string    `gorm:"column:proposal_id;primaryKey"`
	ReviewerID  string    `gorm:"column:reviewer_id;primaryKey"`
	Recommended bool      `gorm:"column:recommended"`
	Memo        string    `gorm:"column:memo"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (reviewerVoteModel) TableName() string {
	return "deliberation_reviewer_votes"
}

type communityFeedbackModel struct {
	ProposalID string    `gorm:"column:proposal_id;primaryKey"`
	AuthorID   string    `gorm:"column:author_id;primaryKey"`
	Feedback   string    `gorm:"column:feedback"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (communityFeedbackModel) TableName() string {
	return "deliberation_community_feedback"
}

type proposalProjectionModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	FundingRoundID string `gorm:"column:funding_round_id"`
	Status         string `gorm:"column:status"`
}

func (proposalProjectionModel) TableName() string {
	return "proposals"
}
