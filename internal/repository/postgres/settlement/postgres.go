package settlement

import (
	"context"
	"errors"

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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(settlementdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetRun(ctx context.Context, messID string, period ledgerdomain.Period) (*settlementdomain.Run, error) {
	var run settlementdomain.Run
	if err := r.db.WithContext(ctx).
		Where("mess_id = ? AND year = ? AND month = ?", messID, period.Year, period.Month).
		First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settlementdomain.ErrRunNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (r *PostgresRepository) CreateRun(ctx context.Context, run *settlementdomain.Run) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return settlementdomain.ErrAlreadySettled
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) DecrementMemberDeposit(ctx context.Context, memberID string, amount float64) error {
	return r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("id = ?", memberID).
		Update("total_deposit", gorm.Expr("total_deposit - ?", amount)).Error
}

func (r *PostgresRepository) ListMessIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Mess{}).
		Order("created_at asc").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
