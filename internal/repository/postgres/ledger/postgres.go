package ledger

import (
	"context"
	"errors"
	"time"

	ledgerdomain "mess-manager-go/internal/domain/ledger"
	messdomain "mess-manager-go/internal/domain/mess"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(ledgerdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetMealRecordForDay(ctx context.Context, memberID, messID string, day time.Time) (*ledgerdomain.MealRecord, error) {
	var record ledgerdomain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND mess_id = ? AND date = ?", memberID, messID, day).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgerdomain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) CreateMealRecord(ctx context.Context, record *ledgerdomain.MealRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) UpdateMealRecord(ctx context.Context, record *ledgerdomain.MealRecord) error {
	return r.db.WithContext(ctx).
		Model(&ledgerdomain.MealRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"lunch_units":  record.LunchUnits,
			"dinner_units": record.DinnerUnits,
			"total_units":  record.TotalUnits,
			"updated_at":   record.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) ListMealRecordsForDate(ctx context.Context, messID string, day time.Time) ([]ledgerdomain.MealRecord, error) {
	var records []ledgerdomain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("mess_id = ? AND date = ?", messID, day).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListMealRecordsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledgerdomain.MealRecord, error) {
	var records []ledgerdomain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("mess_id = ? AND date >= ? AND date < ?", messID, from, to).
		Order("date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListMemberMealRecordsInRange(ctx context.Context, memberID, messID string, from, to time.Time) ([]ledgerdomain.MealRecord, error) {
	var records []ledgerdomain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND mess_id = ? AND date >= ? AND date < ?", memberID, messID, from, to).
		Order("date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) CreateDepositEntries(ctx context.Context, entries []ledgerdomain.DepositEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *PostgresRepository) ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledgerdomain.DepositEntry, error) {
	var entries []ledgerdomain.DepositEntry
	if err := r.db.WithContext(ctx).
		Where("mess_id = ? AND date >= ? AND date < ?", messID, from, to).
		Order("date asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) IncrementMemberDeposit(ctx context.Context, memberID string, amount float64) error {
	return r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("id = ?", memberID).
		Update("total_deposit", gorm.Expr("total_deposit + ?", amount)).Error
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

func (r *PostgresRepository) CountRosterMembersByIDs(ctx context.Context, messID string, memberIDs []string) (int64, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("mess_id = ? AND id IN ?", messID, memberIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
