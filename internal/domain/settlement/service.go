package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mess-manager-go/internal/domain/ledger"
	"mess-manager-go/internal/domain/notification"
	"mess-manager-go/internal/domain/report"
	"mess-manager-go/internal/metrics"
	"mess-manager-go/pkg/logger"

	"github.com/google/uuid"
)

// Aggregator is the slice of the report service the settlement engine needs.
type Aggregator interface {
	Aggregate(ctx context.Context, messID string, from, to time.Time) (report.Aggregate, error)
}

type Service struct {
	repo       Repository
	aggregator Aggregator
	notifier   notification.Notifier
	log        logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, aggregator Aggregator, notifier notification.Notifier, log logger.Logger) *Service {
	return &Service{
		repo:       repo,
		aggregator: aggregator,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
	}
}

// SettlePeriod applies the cost deduction for one mess and one closed period:
// every roster member's lifetime deposit total is debited by their period
// meal units times the period's meal rate. The run marker and every debit
// commit in one transaction; a period that already has a run is skipped, so
// retries and overlapping ticks never double-deduct.
func (s *Service) SettlePeriod(ctx context.Context, messID string, period ledger.Period) (*Outcome, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period")
	}
	from, to := period.Bounds()
	if s.now().UTC().Before(to) {
		return nil, ErrPeriodOpen
	}

	existing, err := s.repo.GetRun(ctx, messID, period)
	if err != nil && !errors.Is(err, ErrRunNotFound) {
		return nil, err
	}
	if existing != nil {
		metrics.SettlementRuns.WithLabelValues("skipped").Inc()
		return &Outcome{Run: *existing, Skipped: true}, nil
	}

	aggregate, err := s.aggregator.Aggregate(ctx, messID, from, to)
	if err != nil {
		return nil, err
	}

	rate := report.MealRate(aggregate.TotalDeposits, aggregate.TotalMeals)

	members := make([]MemberSettlement, 0, len(aggregate.Members))
	for _, member := range aggregate.Members {
		members = append(members, MemberSettlement{
			MemberID: member.MemberID,
			Units:    member.TotalUnits,
			Cost:     report.MealCost(member.TotalUnits, rate),
		})
	}

	committedAt := s.now().UTC()
	run := Run{
		ID:             uuid.NewString(),
		MessID:         messID,
		Year:           period.Year,
		Month:          period.Month,
		Status:         StatusCommitted,
		MealRate:       rate,
		TotalMeals:     aggregate.TotalMeals,
		TotalDeposits:  aggregate.TotalDeposits,
		MembersSettled: len(members),
		CommittedAt:    &committedAt,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateRun(ctx, &run); err != nil {
			return err
		}
		for _, member := range members {
			if member.Cost == 0 {
				continue
			}
			if err := tx.DecrementMemberDeposit(ctx, member.MemberID, member.Cost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			// Lost the race to a concurrent tick; the winner applied the
			// deductions exactly once.
			metrics.SettlementRuns.WithLabelValues("skipped").Inc()
			return &Outcome{Run: run, Skipped: true}, nil
		}
		metrics.SettlementRuns.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.SettlementRuns.WithLabelValues("committed").Inc()
	metrics.SettledMembers.Add(float64(len(members)))

	for _, member := range members {
		s.notifier.NotifyMember(ctx, messID, member.MemberID, notification.Note{
			Title:   "Monthly Settlement",
			Message: fmt.Sprintf("Your account has been deducted %.2f for meals in %d/%d.", member.Cost, period.Month, period.Year),
			Event: notification.SettlementEvent{
				Month:    period.Month,
				Year:     period.Year,
				Amount:   member.Cost,
				MealRate: rate,
			},
		})
	}

	return &Outcome{Run: run, Members: members}, nil
}

// SettleAll runs SettlePeriod for every mess. Messes are independent units of
// atomicity: a failure in one is logged and counted, and the sweep continues.
func (s *Service) SettleAll(ctx context.Context, period ledger.Period) BatchResult {
	var result BatchResult

	messIDs, err := s.repo.ListMessIDs(ctx)
	if err != nil {
		s.log.InternalError("settlement: list messes failed", err)
		result.Failed++
		return result
	}

	s.log.Info("settlement: sweep started", "period", fmt.Sprintf("%d/%d", period.Month, period.Year), "messes", len(messIDs))

	for _, messID := range messIDs {
		outcome, err := s.SettlePeriod(ctx, messID, period)
		if err != nil {
			result.Failed++
			s.log.InternalError("settlement: mess failed", err, "mess_id", messID)
			continue
		}
		if outcome.Skipped {
			result.Skipped++
			continue
		}
		result.Committed++
		s.log.Info("settlement: mess committed",
			"mess_id", messID,
			"meal_rate", outcome.Run.MealRate,
			"members", outcome.Run.MembersSettled,
		)
	}

	s.log.Info("settlement: sweep finished",
		"committed", result.Committed,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result
}
