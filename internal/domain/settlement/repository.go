package settlement

import (
	"context"

	"mess-manager-go/internal/domain/ledger"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetRun(ctx context.Context, messID string, period ledger.Period) (*Run, error)
	// CreateRun must surface the (mess, year, month) unique-constraint
	// violation as ErrAlreadySettled.
	CreateRun(ctx context.Context, run *Run) error
	DecrementMemberDeposit(ctx context.Context, memberID string, amount float64) error
	ListMessIDs(ctx context.Context) ([]string, error)
}
