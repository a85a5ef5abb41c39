package report

import (
	"context"
	"time"

	ledgerdomain "mess-manager-go/internal/domain/ledger"
	messdomain "mess-manager-go/internal/domain/mess"
	settlementdomain "mess-manager-go/internal/domain/settlement"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListRoster(ctx context.Context, messID string) ([]ledgerdomain.RosterMember, error) {
	var roster []ledgerdomain.RosterMember
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Select("id, name, role, total_deposit").
		Where("mess_id = ?", messID).
		Order("created_at asc").
		Find(&roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *PostgresRepository) ListMealRecordsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledgerdomain.MealRecord, error) {
	var records []ledgerdomain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("mess_id = ? AND date >= ? AND date < ?", messID, from, to).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledgerdomain.DepositEntry, error) {
	var entries []ledgerdomain.DepositEntry
	if err := r.db.WithContext(ctx).
		Where("mess_id = ? AND date >= ? AND date < ?", messID, from, to).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) IsPeriodSettled(ctx context.Context, messID string, period ledgerdomain.Period) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&settlementdomain.Run{}).
		Where("mess_id = ? AND year = ? AND month = ? AND status = ?", messID, period.Year, period.Month, settlementdomain.StatusCommitted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
