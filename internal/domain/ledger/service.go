package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"mess-manager-go/internal/domain/notification"

	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	notifier notification.Notifier
}

func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// SubmitMeals records lunch/dinner units for a set of members on one day.
// Existing records for that day are overwritten, and the cached total is
// recomputed in the same write. All writes for the batch share a transaction.
func (s *Service) SubmitMeals(ctx context.Context, input SubmitMealsInput) error {
	if len(input.Meals) == 0 {
		return ErrEmptyBatch
	}
	if input.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	for _, meal := range input.Meals {
		if err := validateUnits(meal.Lunch); err != nil {
			return err
		}
		if err := validateUnits(meal.Dinner); err != nil {
			return err
		}
	}

	memberIDs := make([]string, 0, len(input.Meals))
	for _, meal := range input.Meals {
		memberIDs = append(memberIDs, meal.MemberID)
	}
	count, err := s.repo.CountRosterMembersByIDs(ctx, input.MessID, memberIDs)
	if err != nil {
		return err
	}
	if count != int64(len(memberIDs)) {
		return ErrMemberNotInMess
	}

	day := startOfDay(input.Date)

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		for _, meal := range input.Meals {
			record, err := tx.GetMealRecordForDay(ctx, meal.MemberID, input.MessID, day)
			if err != nil {
				if !errors.Is(err, ErrRecordNotFound) {
					return err
				}
				record = &MealRecord{
					ID:       uuid.NewString(),
					MemberID: meal.MemberID,
					MessID:   input.MessID,
					Date:     day,
				}
				record.LunchUnits = meal.Lunch
				record.DinnerUnits = meal.Dinner
				record.TotalUnits = meal.Lunch + meal.Dinner
				if err := tx.CreateMealRecord(ctx, record); err != nil {
					return err
				}
				continue
			}

			record.LunchUnits = meal.Lunch
			record.DinnerUnits = meal.Dinner
			record.TotalUnits = meal.Lunch + meal.Dinner
			if err := tx.UpdateMealRecord(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if hasAnyUnits(input.Meals) {
		s.notifier.NotifyMess(ctx, input.MessID, notification.Note{
			Title:   "Meal Counts Added",
			Message: fmt.Sprintf("Meal counts were recorded for %s", day.Format("Jan 2, 2006")),
			Event: notification.MealEntryEvent{
				Date:      day.Format("2006-01-02"),
				EnteredBy: input.SubmittedBy,
			},
		})
	}

	return nil
}

// MealsForDate returns the full roster joined with that day's records.
// A member without a record contributes zeros, not a gap.
func (s *Service) MealsForDate(ctx context.Context, messID string, date time.Time) ([]MemberDayMeals, error) {
	day := startOfDay(date)

	roster, err := s.repo.ListRoster(ctx, messID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListMealRecordsForDate(ctx, messID, day)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string]MealRecord, len(records))
	for _, record := range records {
		byMember[record.MemberID] = record
	}

	result := make([]MemberDayMeals, 0, len(roster))
	for _, member := range roster {
		row := MemberDayMeals{
			MemberID: member.ID,
			Name:     member.Name,
			Role:     member.Role,
		}
		if record, ok := byMember[member.ID]; ok {
			row.Lunch = record.LunchUnits
			row.Dinner = record.DinnerUnits
			row.Total = record.TotalUnits
		}
		result = append(result, row)
	}

	return result, nil
}

// MonthSummary returns per-member meal totals for a period across the roster.
func (s *Service) MonthSummary(ctx context.Context, messID string, period Period) ([]MemberMonthMeals, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period")
	}

	roster, err := s.repo.ListRoster(ctx, messID)
	if err != nil {
		return nil, err
	}

	from, to := period.Bounds()
	records, err := s.repo.ListMealRecordsInRange(ctx, messID, from, to)
	if err != nil {
		return nil, err
	}

	type totals struct {
		lunch  float64
		dinner float64
	}
	byMember := make(map[string]totals, len(roster))
	for _, record := range records {
		t := byMember[record.MemberID]
		t.lunch += record.LunchUnits
		t.dinner += record.DinnerUnits
		byMember[record.MemberID] = t
	}

	result := make([]MemberMonthMeals, 0, len(roster))
	for _, member := range roster {
		t := byMember[member.ID]
		result = append(result, MemberMonthMeals{
			MemberID:        member.ID,
			Name:            member.Name,
			Role:            member.Role,
			Lunch:           t.lunch,
			Dinner:          t.dinner,
			Total:           t.lunch + t.dinner,
			LifetimeDeposit: member.TotalDeposit,
		})
	}

	return result, nil
}

// MemberStatistics returns one member's per-day table for a period.
func (s *Service) MemberStatistics(ctx context.Context, memberID, messID string, period Period) (MemberStatistics, error) {
	if !period.Valid() {
		return MemberStatistics{}, fmt.Errorf("invalid period")
	}

	from, to := period.Bounds()
	records, err := s.repo.ListMemberMealRecordsInRange(ctx, memberID, messID, from, to)
	if err != nil {
		return MemberStatistics{}, err
	}

	result := MemberStatistics{Days: make([]DayStatistics, 0, len(records))}
	for _, record := range records {
		result.Days = append(result.Days, DayStatistics{
			Date:   record.Date.Format("2006-01-02"),
			Lunch:  record.LunchUnits,
			Dinner: record.DinnerUnits,
			Total:  record.TotalUnits,
		})
		result.Totals.Lunch += record.LunchUnits
		result.Totals.Dinner += record.DinnerUnits
		result.Totals.Total += record.TotalUnits
	}

	return result, nil
}

// AddDeposits appends a batch of deposit entries and increments each member's
// lifetime total in one transaction: either the whole batch lands or none of
// it does.
func (s *Service) AddDeposits(ctx context.Context, input AddDepositsInput) error {
	if len(input.Entries) == 0 {
		return ErrEmptyBatch
	}
	for _, entry := range input.Entries {
		if math.IsNaN(entry.Amount) || math.IsInf(entry.Amount, 0) {
			return ErrInvalidAmount
		}
		if entry.Amount < 0 {
			return ErrNegativeAmount
		}
	}

	memberIDs := make([]string, 0, len(input.Entries))
	for _, entry := range input.Entries {
		memberIDs = append(memberIDs, entry.MemberID)
	}
	count, err := s.repo.CountRosterMembersByIDs(ctx, input.MessID, memberIDs)
	if err != nil {
		return err
	}
	if count != int64(len(memberIDs)) {
		return ErrMemberNotInMess
	}

	now := time.Now().UTC()
	entries := make([]DepositEntry, 0, len(input.Entries))
	for _, entry := range input.Entries {
		entries = append(entries, DepositEntry{
			ID:        uuid.NewString(),
			MemberID:  entry.MemberID,
			MessID:    input.MessID,
			Amount:    entry.Amount,
			Date:      now,
			CreatedBy: input.RecordedBy,
		})
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateDepositEntries(ctx, entries); err != nil {
			return err
		}
		for _, entry := range input.Entries {
			if err := tx.IncrementMemberDeposit(ctx, entry.MemberID, entry.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, entry := range input.Entries {
		if entry.Amount <= 0 {
			continue
		}
		s.notifier.NotifyMember(ctx, input.MessID, entry.MemberID, notification.Note{
			Title:   "Deposit Added",
			Message: fmt.Sprintf("A deposit of %.2f has been added to your account.", entry.Amount),
			Event: notification.DepositEvent{
				Amount:     entry.Amount,
				RecordedBy: input.RecordedBy,
			},
		})
	}

	return nil
}

func validateUnits(units float64) error {
	if math.IsNaN(units) || math.IsInf(units, 0) {
		return ErrInvalidUnits
	}
	if units < 0 {
		return ErrNegativeUnits
	}
	return nil
}

func hasAnyUnits(meals []MemberMealInput) bool {
	for _, meal := range meals {
		if meal.Lunch > 0 || meal.Dinner > 0 {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
