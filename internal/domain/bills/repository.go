package bills

import (
	"context"

	"mess-manager-go/internal/domain/ledger"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateBill(ctx context.Context, bill *Bill) error
	GetBill(ctx context.Context, billID string) (*Bill, error)
	ListBills(ctx context.Context, messID string, filter ListFilter) ([]Bill, error)
	UpdateBillAmount(ctx context.Context, billID string, total, perHead float64) error
	UpdatePayment(ctx context.Context, payment *Payment) error
	DeleteBill(ctx context.Context, billID string) error
	ListRoster(ctx context.Context, messID string) ([]ledger.RosterMember, error)
}
