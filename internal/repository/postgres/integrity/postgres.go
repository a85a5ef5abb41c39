package integrity

import (
	"context"

	integritydomain "mess-manager-go/internal/domain/integrity"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(integritydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListMealRecords(ctx context.Context, messID string) ([]ledgerdomain.MealRecord, error) {
	var records []ledgerdomain.MealRecord
	if err := r.db.WithContext(ctx).
		Where("mess_id = ?", messID).
		Order("date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListRoster(ctx context.Context, messID string) ([]ledgerdomain.RosterMember, error) {
	var roster []ledgerdomain.RosterMember
	if err := r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Select("id, name, role, total_deposit").
		Where("mess_id = ?", messID).
		Find(&roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *PostgresRepository) SumMemberDeposits(ctx context.Context, memberID, messID string) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&ledgerdomain.DepositEntry{}).
		Select("coalesce(sum(amount), 0)").
		Where("member_id = ? AND mess_id = ?", memberID, messID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepository) ListBillChecks(ctx context.Context, messID string) ([]integritydomain.BillCheck, error) {
	var checks []integritydomain.BillCheck
	if err := r.db.WithContext(ctx).
		Table("bills").
		Select("bills.id, bills.name, bills.total_amount, bills.per_head_amount as per_head, count(bill_payments.member_id) as member_count").
		Joins("left join bill_payments on bill_payments.bill_id = bills.id").
		Where("bills.mess_id = ?", messID).
		Group("bills.id, bills.name, bills.total_amount, bills.per_head_amount").
		Scan(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

func (r *PostgresRepository) UpdateMealRecordTotal(ctx context.Context, recordID string, total float64) error {
	return r.db.WithContext(ctx).
		Model(&ledgerdomain.MealRecord{}).
		Where("id = ?", recordID).
		Update("total_units", total).Error
}

func (r *PostgresRepository) UpdateMemberTotalDeposit(ctx context.Context, memberID string, total float64) error {
	return r.db.WithContext(ctx).
		Model(&messdomain.Member{}).
		Where("id = ?", memberID).
		Update("total_deposit", total).Error
}

func (r *PostgresRepository) UpdateBillPerHead(ctx context.Context, billID string, perHead float64) error {
	return r.db.WithContext(ctx).
		Table("bills").
		Where("id = ?", billID).
		Update("per_head_amount", perHead).Error
}
