package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"grantflow/contexts/grant-governance/allocation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	"grantflow/contexts/grant-governance/allocation-service/ports"

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

func (r *Repository) GetRound(ctx context.Context, roundID string) (ports.RoundProjection, error) {
	var row roundModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(roundID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RoundProjection{}, domainerrors.ErrRoundNotFound
		}
		return ports.RoundProjection{}, r.logError("allocation_repo_get_round_failed", err,
			"round_id", strings.TrimSpace(roundID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListEndedRounds(ctx context.Context, now time.Time) ([]ports.RoundProjection, error) {
	var rows []roundModel
	if err := r.db.WithContext(ctx).
		Where("ends_at <= ?", now.UTC()).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("allocation_repo_list_ended_failed", err)
	}
	items := make([]ports.RoundProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) ListVotingSlate(ctx context.Context, roundID string) ([]entities.VotingProposal, error) {
	var rows []proposalModel
	err := r.db.WithContext(ctx).
		Where("funding_round_id = ?", strings.TrimSpace(roundID)).
		Where("status IN ?", []string{
			string(entities.ProposalStatusVoting),
			string(entities.ProposalStatusApproved),
			string(entities.ProposalStatusRejected),
		}).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("allocation_repo_list_slate_failed", err,
			"round_id", strings.TrimSpace(roundID),
		)
	}
	items := make([]entities.VotingProposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.VotingProposal{
			ProposalID:      row.ID,
			OCVID:           row.OCVID,
			Name:            row.Name,
			RequestedAmount: row.TotalFundingRequired,
		})
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
		Model(&proposalModel{}).
		Where("id = ?", strings.TrimSpace(proposalID)).
		Where("status = ?", string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return false, r.logError("allocation_repo_transition_failed", result.Error,
			"proposal_id", strings.TrimSpace(proposalID),
			"from_status", string(from),
			"to_status", string(to),
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) GetWinners(ctx context.Context, roundID string) ([]int64, bool, error) {
	var row winnersModel
	err := r.db.WithContext(ctx).
		Where("round_id = ?", strings.TrimSpace(roundID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, r.logError("allocation_repo_get_winners_failed", err,
			"round_id", strings.TrimSpace(roundID),
		)
	}
	var winners []int64
	if len(row.Winners) > 0 {
		if err := json.Unmarshal(row.Winners, &winners); err != nil {
			return nil, false, r.logError("allocation_repo_winners_decode_failed", err,
				"round_id", strings.TrimSpace(roundID),
			)
		}
	}
	return winners, true, nil
}

func (r *Repository) SaveWinners(ctx context.Context, roundID string, winners []int64, fetchedAt time.Time) error {
	payload, err := json.Marshal(winners)
	if err != nil {
		return r.logError("allocation_repo_winners_encode_failed", err,
			"round_id", strings.TrimSpace(roundID),
		)
	}
	row := winnersModel{
		RoundID:   strings.TrimSpace(roundID),
		Winners:   payload,
		FetchedAt: fetchedAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "round_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"winners":    row.Winners,
			"fetched_at": row.FetchedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("allocation_repo_save_winners_failed", create.Error,
			"round_id", row.RoundID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "grant-governance/allocation-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("allocation repository operation failed", fields...)
	return err
}

type roundModel struct {
	ID             string          `gorm:"column:id;primaryKey"`
	MEFID          int64           `gorm:"column:mef_id"`
	TotalBudget    decimal.Decimal `gorm:"column:total_budget;type:numeric"`
	VotingStartsAt *time.Time      `gorm:"column:voting_starts_at"`
	VotingEndsAt   *time.Time      `gorm:"column:voting_ends_at"`
	EndsAt         time.Time       `gorm:"column:ends_at"`
}

func (roundModel) TableName() string {
	return "funding_rounds"
}

func (m roundModel) toProjection() ports.RoundProjection {
	return ports.RoundProjection{
		RoundID:     m.ID,
		MEFID:       m.MEFID,
		TotalBudget: m.TotalBudget,
		VotingStart: m.VotingStartsAt,
		VotingEnd:   m.VotingEndsAt,
		EndsAt:      m.EndsAt.UTC(),
	}
}

type proposalModel struct {
	ID                   string          `gorm:"column:id;primaryKey"`
	OCVID                int64           `gorm:"column:ocv_id"`
	FundingRoundID       string          `gorm:"column:funding_round_id"`
	Name                 string          `gorm:"column:name"`
	TotalFundingRequired decimal.Decimal `gorm:"column:total_funding_required;type:numeric"`
	Status               string          `gorm:"column:status"`
	UpdatedAt            time.Time       `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string {
	return "proposals"
}

type winnersModel struct {
	RoundID   string    `gorm:"column:round_id;primaryKey"`
	Winners   []byte    `gorm:"column:winners;type:jsonb"`
	FetchedAt time.Time `gorm:"column:fetched_at"`
}

func (winnersModel) TableName() string {
	return "ranked_vote_winners"
}
