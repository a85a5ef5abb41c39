package report

import (
	"context"
	"time"

	"mess-manager-go/internal/domain/ledger"
)

type Repository interface {
	ListRoster(ctx context.Context, messID string) ([]ledger.RosterMember, error)
	ListMealRecordsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledger.MealRecord, error)
	ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledger.DepositEntry, error)
	IsPeriodSettled(ctx context.Context, messID string, period ledger.Period) (bool, error)
}
