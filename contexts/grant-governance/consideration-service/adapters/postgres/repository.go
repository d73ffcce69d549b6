package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/consideration-service/domain/errors"
	"grantflow/contexts/grant-governance/consideration-service/ports"

	"github.com/shopspring/decimal"
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

func (r *Repository) UpsertVote(ctx context.Context, vote entities.ConsiderationVote) error {
	row := voteModelFromEntity(vote)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "proposal_id"}, {Name: "voter_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"decision":    row.Decision,
			"feedback":    row.Feedback,
			"is_reviewer": row.IsReviewer,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("consideration_repo_upsert_vote_failed", create.Error,
			"proposal_id", vote.ProposalID,
			"voter_id", vote.VoterID,
		)
	}
	return nil
}

func (r *Repository) CountReviewerDecisions(ctx context.Context, proposalID string) (ports.DecisionCounts, error) {
	type tally struct {
		Decision string
		Total    int
	}
	var rows []tally
	err := r.db.WithContext(ctx).
		Model(&considerationVoteModel{}).
		Select("decision, COUNT(*) AS total").
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Where("is_reviewer = ?", true).
		Group("decision").
		Scan(&rows).Error
	if err != nil {
		return ports.DecisionCounts{}, r.logError("consideration_repo_count_decisions_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	var counts ports.DecisionCounts
	for _, row := range rows {
		switch entities.Decision(row.Decision) {
		case entities.DecisionApproved:
			counts.Approved = row.Total
		case entities.DecisionRejected:
			counts.Rejected = row.Total
		}
	}
	return counts, nil
}

func (r *Repository) ListVotesByProposal(ctx context.Context, proposalID string) ([]entities.ConsiderationVote, error) {
	var rows []considerationVoteModel
	if err := r.db.WithContext(ctx).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("consideration_repo_list_votes_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	items := make([]entities.ConsiderationVote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetSnapshot(ctx context.Context, proposalID string) (entities.OCVSnapshot, bool, error) {
	var row ocvSnapshotModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OCVSnapshot{}, false, nil
		}
		return entities.OCVSnapshot{}, false, r.logError("consideration_repo_get_snapshot_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveSnapshot(ctx context.Context, snapshot entities.OCVSnapshot) error {
	row, err := snapshotModelFromEntity(snapshot)
	if err != nil {
		return r.logError("consideration_repo_snapshot_marshal_failed", err,
			"proposal_id", snapshot.ProposalID,
		)
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "proposal_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_community_votes": row.TotalCommunityVotes,
			"total_positive_votes":  row.TotalPositiveVotes,
			"positive_stake_weight": row.PositiveStakeWeight,
			"eligible":              row.Eligible,
			"votes":                 row.Votes,
			"refreshed_at":          row.RefreshedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("consideration_repo_save_snapshot_failed", create.Error,
			"proposal_id", snapshot.ProposalID,
		)
	}
	return nil
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
		return ports.ProposalProjection{}, r.logError("consideration_repo_get_proposal_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListByRoundAndStatus(
	ctx context.Context,
	roundID string,
	status entities.ProposalStatus,
) ([]ports.ProposalProjection, error) {
	var rows []proposalProjectionModel
	if err := r.db.WithContext(ctx).
		Where("funding_round_id = ?", strings.TrimSpace(roundID)).
		Where("status = ?", string(status)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("consideration_repo_list_proposals_failed", err,
			"round_id", strings.TrimSpace(roundID),
			"status", string(status),
		)
	}
	items := make([]ports.ProposalProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	proposalID string,
	from entities.ProposalStatus,
	to entities.ProposalStatus,
	updatedAt time.Time,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&proposalProjectionModel{}).
		Where("id = ?", strings.TrimSpace(proposalID)).
		Where("status = ?", string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return false, r.logError("consideration_repo_transition_failed", result.Error,
			"proposal_id", strings.TrimSpace(proposalID),
			"from_status", string(from),
			"to_status", string(to),
		)
	}
	return result.RowsAffected > 0, nil
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
		return ports.ReviewerEligibility{}, r.logError("consideration_repo_reviewer_lookup_failed", err,
			"user_id", strings.TrimSpace(userID),
			"round_id", strings.TrimSpace(roundID),
		)
	}
	return ports.ReviewerEligibility{IsReviewer: total > 0}, nil
}

func (r *Repository) ListActiveRounds(ctx context.Context, now time.Time) ([]ports.RoundProjection, error) {
	var rows []roundProjectionModel
	if err := r.db.WithContext(ctx).
		Where("starts_at <= ?", now.UTC()).
		Where("ends_at >= ?", now.UTC()).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("consideration_repo_list_rounds_failed", err)
	}
	items := make([]ports.RoundProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.RoundProjection{
			RoundID:            row.ID,
			MEFID:              row.MEFID,
			ConsiderationStart: row.ConsiderationStartsAt,
			ConsiderationEnd:   row.ConsiderationEndsAt,
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "grant-governance/consideration-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("consideration repository operation failed", fields...)
	return err
}

type considerationVoteModel struct {
	ProposalID string    `gorm:"column:proposal_id;primaryKey"`
	VoterID    string    `gorm:"column:voter_id;primaryKey"`
	Decision   string    `gorm:"column:decision"`
	Feedback   string    `gorm:"column:feedback"`
	IsReviewer bool      `gorm:"column:is_reviewer"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (considerationVoteModel) TableName() string {
	return "consideration_votes"
}

func (m considerationVoteModel) toEntity() entities.ConsiderationVote {
	return entities.ConsiderationVote{
		ProposalID: m.ProposalID,
		VoterID:    m.VoterID,
		Decision:   entities.Decision(m.Decision),
		Feedback:   m.Feedback,
		IsReviewer: m.IsReviewer,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

func voteModelFromEntity(vote entities.ConsiderationVote) considerationVoteModel {
	return considerationVoteModel{
		ProposalID: strings.TrimSpace(vote.ProposalID),
		VoterID:    strings.TrimSpace(vote.VoterID),
		Decision:   string(vote.Decision),
		Feedback:   vote.Feedback,
		IsReviewer: vote.IsReviewer,
		CreatedAt:  vote.CreatedAt.UTC(),
		UpdatedAt:  vote.UpdatedAt.UTC(),
	}
}

type ocvSnapshotModel struct {
	ProposalID          string          `gorm:"column:proposal_id;primaryKey"`
	TotalCommunityVotes int             `gorm:"column:total_community_votes"`
	TotalPositiveVotes  int             `gorm:"column:total_positive_votes"`
	PositiveStakeWeight decimal.Decimal `gorm:"column:positive_stake_weight;type:numeric"`
	Eligible            bool            `gorm:"column:eligible"`
	Votes               []byte          `gorm:"column:votes;type:jsonb"`
	RefreshedAt         time.Time       `gorm:"column:refreshed_at"`
}

func (ocvSnapshotModel) TableName() string {
	return "ocv_snapshots"
}

func (m ocvSnapshotModel) toEntity() entities.OCVSnapshot {
	snapshot := entities.OCVSnapshot{
		ProposalID:          m.ProposalID,
		TotalCommunityVotes: m.TotalCommunityVotes,
		TotalPositiveVotes:  m.TotalPositiveVotes,
		PositiveStakeWeight: m.PositiveStakeWeight,
		Eligible:            m.Eligible,
		RefreshedAt:         m.RefreshedAt.UTC(),
	}
	if len(m.Votes) > 0 {
		// Rows written by older revisions may hold malformed blobs; the
		// tally columns stay authoritative either way.
		_ = json.Unmarshal(m.Votes, &snapshot.Votes)
	}
	return snapshot
}

func snapshotModelFromEntity(snapshot entities.OCVSnapshot) (ocvSnapshotModel, error) {
	votes, err := json.Marshal(snapshot.Votes)
	if err != nil {
		return ocvSnapshotModel{}, err
	}
	return ocvSnapshotModel{
		ProposalID:          strings.TrimSpace(snapshot.ProposalID),
		TotalCommunityVotes: snapshot.TotalCommunityVotes,
		TotalPositiveVotes:  snapshot.TotalPositiveVotes,
		PositiveStakeWeight: snapshot.PositiveStakeWeight,
		Eligible:            snapshot.Eligible,
		Votes:               votes,
		RefreshedAt:         snapshot.RefreshedAt.UTC(),
	}, nil
}

type proposalProjectionModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	FundingRoundID string    `gorm:"column:funding_round_id"`
	OwnerID        string    `gorm:"column:owner_id"`
	Status         string    `gorm:"column:status"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (proposalProjectionModel) TableName() string {
	return "proposals"
}

func (m proposalProjectionModel) toProjection() ports.ProposalProjection {
	return ports.ProposalProjection{
		ProposalID: m.ID,
		RoundID:    m.FundingRoundID,
		OwnerID:    m.OwnerID,
		Status:     entities.ProposalStatus(m.Status),
	}
}

type roundProjectionModel struct {
	ID                    string     `gorm:"column:id;primaryKey"`
	MEFID                 int64      `gorm:"column:mef_id"`
	ConsiderationStartsAt *time.Time `gorm:"column:consideration_starts_at"`
	ConsiderationEndsAt   *time.Time `gorm:"column:consideration_ends_at"`
}

func (roundProjectionModel) TableName() string {
	return "funding_rounds"
}
