package bills

import (
	"context"
	"errors"

	billsdomain "mess-manager-go/internal/domain/bills"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(billsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateBill(ctx context.Context, bill *billsdomain.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *PostgresRepository) GetBill(ctx context.Context, billID string) (*billsdomain.Bill, error) {
	var bill billsdomain.Bill
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("id = ?", billID).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billsdomain.ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *PostgresRepository) ListBills(ctx context.Context, messID string, filter billsdomain.ListFilter) ([]billsdomain.Bill, error) {
	query := r.db.WithContext(ctx).
		Preload("Payments").
		Where("mess_id = ?", messID)
	if filter.Month != 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var items []billsdomain.Bill
	if err := query.Order("date desc, created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) UpdateBillAmount(ctx context.Context, billID string, total, perHead float64) error {
	return r.db.WithContext(ctx).
		Model(&billsdomain.Bill{}).
		Where("id = ?", billID).
		Updates(map[string]interface{}{
			"total_amount":    total,
			"per_head_amount": perHead,
		}).Error
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, payment *billsdomain.Payment) error {
	return r.db.WithContext(ctx).
		Model(&billsdomain.Payment{}).
		Where("bill_id = ? AND member_id = ?", payment.BillID, payment.MemberID).
		Updates(map[string]interface{}{
			"paid":    payment.Paid,
			"paid_at": payment.PaidAt,
		}).Error
}

func (r *PostgresRepository) DeleteBill(ctx context.Context, billID string) error {
	return r.db.WithContext(ctx).Delete(&billsdomain.Bill{}, "id = ?", billID).Error
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
