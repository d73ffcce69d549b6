package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"grantflow/contexts/grant-governance/round-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
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

func (r *Repository) CreateRound(ctx context.Context, round entities.FundingRound) error {
	row := roundModelFromEntity(round)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRoundExists
		}
		return r.logError("round_repo_create_failed", err, "round_id", round.RoundID)
	}
	return nil
}

func (r *Repository) GetRound(ctx context.Context, roundID string) (entities.FundingRound, error) {
	var row fundingRoundModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(roundID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.FundingRound{}, domainerrors.ErrRoundNotFound
		}
		return entities.FundingRound{}, r.logError("round_repo_get_failed", err, "round_id", strings.TrimSpace(roundID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListActiveRounds(ctx context.Context, now time.Time) ([]entities.FundingRound, error) {
	var rows []fundingRoundModel
	if err := r.db.WithContext(ctx).
		Where("starts_at <= ?", now.UTC()).
		Where("ends_at >= ?", now.UTC()).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("round_repo_list_active_failed", err)
	}
	items := make([]entities.FundingRound, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) TransitionProposalsByRound(
	ctx context.Context,
	roundID string,
	fromStatus string,
	toStatus string,
	updatedAt time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Table("proposals").
		Where("funding_round_id = ?", strings.TrimSpace(roundID)).
		Where("status = ?", fromStatus).
		Updates(map[string]any{
			"status":     toStatus,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return 0, r.logError("round_repo_sweep_transition_failed", result.Error,
			"round_id", strings.TrimSpace(roundID),
			"from_status", fromStatus,
			"to_status", toStatus,
		)
	}
	return result.RowsAffected, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "grant-governance/round-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("round repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type fundingRoundModel struct {
	ID          string          `gorm:"column:id;primaryKey"`
	MEFID       int64           `gorm:"column:mef_id"`
	Name        string          `gorm:"column:name"`
	TopicID     string          `gorm:"column:topic_id"`
	TotalBudget decimal.Decimal `gorm:"column:total_budget;type:numeric"`
	StartsAt    time.Time       `gorm:"column:starts_at"`
	EndsAt      time.Time       `gorm:"column:ends_at"`

	SubmissionStartsAt    *time.Time `gorm:"column:submission_starts_at"`
	SubmissionEndsAt      *time.Time `gorm:"column:submission_ends_at"`
	ConsiderationStartsAt *time.Time `gorm:"column:consideration_starts_at"`
	ConsiderationEndsAt   *time.Time `gorm:"column:consideration_ends_at"`
	DeliberationStartsAt  *time.Time `gorm:"column:deliberation_starts_at"`
	DeliberationEndsAt    *time.Time `gorm:"column:deliberation_ends_at"`
	VotingStartsAt        *time.Time `gorm:"column:voting_starts_at"`
	VotingEndsAt          *time.Time `gorm:"column:voting_ends_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (fundingRoundModel) TableName() string {
	return "funding_rounds"
}

func (m fundingRoundModel) toEntity() entities.FundingRound {
	return entities.FundingRound{
		RoundID:       m.ID,
		MEFID:         m.MEFID,
		Name:          m.Name,
		TopicID:       m.TopicID,
		TotalBudget:   m.TotalBudget,
		StartsAt:      m.StartsAt.UTC(),
		EndsAt:        m.EndsAt.UTC(),
		Submission:    windowFromColumns(m.SubmissionStartsAt, m.SubmissionEndsAt),
		Consideration: windowFromColumns(m.ConsiderationStartsAt, m.ConsiderationEndsAt),
		Deliberation:  windowFromColumns(m.DeliberationStartsAt, m.DeliberationEndsAt),
		Voting:        windowFromColumns(m.VotingStartsAt, m.VotingEndsAt),
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func roundModelFromEntity(round entities.FundingRound) fundingRoundModel {
	row := fundingRoundModel{
		ID:          strings.TrimSpace(round.RoundID),
		MEFID:       round.MEFID,
		Name:        strings.TrimSpace(round.Name),
		TopicID:     strings.TrimSpace(round.TopicID),
		TotalBudget: round.TotalBudget,
		StartsAt:    round.StartsAt.UTC(),
		EndsAt:      round.EndsAt.UTC(),
		CreatedAt:   round.CreatedAt.UTC(),
		UpdatedAt:   round.UpdatedAt.UTC(),
	}
	row.SubmissionStartsAt, row.SubmissionEndsAt = windowToColumns(round.Submission)
	row.ConsiderationStartsAt, row.ConsiderationEndsAt = windowToColumns(round.Consideration)
	row.DeliberationStartsAt, row.DeliberationEndsAt = windowToColumns(round.Deliberation)
	row.VotingStartsAt, row.VotingEndsAt = windowToColumns(round.Voting)
	return row
}

func windowFromColumns(startsAt, endsAt *time.Time) *entities.PhaseWindow {
	if startsAt == nil || endsAt == nil {
		return nil
	}
	return &entities.PhaseWindow{
		StartsAt: startsAt.UTC(),
		EndsAt:   endsAt.UTC(),
	}
}

func windowToColumns(window *entities.PhaseWindow) (*time.Time, *time.Time) {
	if window == nil {
		return nil, nil
	}
	startsAt := window.StartsAt.UTC()
	endsAt := window.EndsAt.UTC()
	return &startsAt, &endsAt
}
