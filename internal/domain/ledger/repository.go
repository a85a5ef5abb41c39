package ledger

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetMealRecordForDay(ctx context.Context, memberID, messID string, day time.Time) (*MealRecord, error)
	CreateMealRecord(ctx context.Context, record *MealRecord) error
	UpdateMealRecord(ctx context.Context, record *MealRecord) error
	ListMealRecordsForDate(ctx context.Context, messID string, day time.Time) ([]MealRecord, error)
	ListMealRecordsInRange(ctx context.Context, messID string, from, to time.Time) ([]MealRecord, error)
	ListMemberMealRecordsInRange(ctx context.Context, memberID, messID string, from, to time.Time) ([]MealRecord, error)
	CreateDepositEntries(ctx context.Context, entries []DepositEntry) error
	ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]DepositEntry, error)
	IncrementMemberDeposit(ctx context.Context, memberID string, amount float64) error
	ListRoster(ctx context.Context, messID string) ([]RosterMember, error)
	CountRosterMembersByIDs(ctx context.Context, messID string, memberIDs []string) (int64, error)
}
