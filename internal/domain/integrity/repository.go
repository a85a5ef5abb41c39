package integrity

import (
	"context"

	"mess-manager-go/internal/domain/ledger"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListMealRecords(ctx context.Context, messID string) ([]ledger.MealRecord, error)
	ListRoster(ctx context.Context, messID string) ([]ledger.RosterMember, error)
	SumMemberDeposits(ctx context.Context, memberID, messID string) (float64, error)
	ListBillChecks(ctx context.Context, messID string) ([]BillCheck, error)
	UpdateMealRecordTotal(ctx context.Context, recordID string, total float64) error
	UpdateMemberTotalDeposit(ctx context.Context, memberID string, total float64) error
	UpdateBillPerHead(ctx context.Context, billID string, perHead float64) error
}
