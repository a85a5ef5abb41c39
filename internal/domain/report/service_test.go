package report

import (
	"context"
	"testing"
	"time"

	"mess-manager-go/internal/domain/ledger"
)

type fakeReportRepo struct {
	roster   []ledger.RosterMember
	records  []ledger.MealRecord
	deposits []ledger.DepositEntry
	settled  map[string]bool
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{settled: make(map[string]bool)}
}

func (r *fakeReportRepo) ListRoster(ctx context.Context, messID string) ([]ledger.RosterMember, error) {
	return r.roster, nil
}

func (r *fakeReportRepo) ListMealRecordsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledger.MealRecord, error) {
	result := make([]ledger.MealRecord, 0)
	for _, record := range r.records {
		if !record.Date.Before(from) && record.Date.Before(to) {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakeReportRepo) ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]ledger.DepositEntry, error) {
	result := make([]ledger.DepositEntry, 0)
	for _, entry := range r.deposits {
		if !entry.Date.Before(from) && entry.Date.Before(to) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *fakeReportRepo) IsPeriodSettled(ctx context.Context, messID string, period ledger.Period) (bool, error) {
	return r.settled[messID], nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateEmptyRoster(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewService(repo)

	result, err := svc.Aggregate(context.Background(), "mess-1", day(2026, 7, 1), day(2026, 8, 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.TotalMeals != 0 || result.TotalDeposits != 0 {
		t.Fatalf("expected zero aggregate, got %+v", result)
	}
	if len(result.Members) != 0 {
		t.Fatalf("expected no members, got %d", len(result.Members))
	}
}

func TestAggregateSumsPerMember(t *testing.T) {
	repo := newFakeReportRepo()
	repo.roster = []ledger.RosterMember{
		{ID: "m1", Name: "Alice"},
		{ID: "m2", Name: "Bob"},
	}
	repo.records = []ledger.MealRecord{
		{MemberID: "m1", Date: day(2026, 7, 1), LunchUnits: 1, DinnerUnits: 1},
		{MemberID: "m1", Date: day(2026, 7, 2), LunchUnits: 2, DinnerUnits: 0},
		{MemberID: "m2", Date: day(2026, 7, 1), LunchUnits: 0, DinnerUnits: 1},
	}
	repo.deposits = []ledger.DepositEntry{
		{MemberID: "m1", Amount: 500, Date: day(2026, 7, 3)},
		{MemberID: "m2", Amount: 300, Date: day(2026, 7, 4)},
		{MemberID: "m2", Amount: 200, Date: day(2026, 7, 5)},
	}

	svc := NewService(repo)
	result, err := svc.Aggregate(context.Background(), "mess-1", day(2026, 7, 1), day(2026, 8, 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.TotalMeals != 5 {
		t.Fatalf("expected 5 total meals, got %v", result.TotalMeals)
	}
	if result.TotalDeposits != 1000 {
		t.Fatalf("expected 1000 total deposits, got %v", result.TotalDeposits)
	}
	if result.Members[0].TotalUnits != 4 || result.Members[0].Deposits != 500 {
		t.Fatalf("unexpected m1 aggregate: %+v", result.Members[0])
	}
	if result.Members[1].TotalUnits != 1 || result.Members[1].Deposits != 500 {
		t.Fatalf("unexpected m2 aggregate: %+v", result.Members[1])
	}
}

func TestAggregateIgnoresDepartedMembers(t *testing.T) {
	repo := newFakeReportRepo()
	repo.roster = []ledger.RosterMember{{ID: "m1", Name: "Alice"}}
	repo.records = []ledger.MealRecord{
		{MemberID: "m1", Date: day(2026, 7, 1), LunchUnits: 1},
		{MemberID: "gone", Date: day(2026, 7, 1), LunchUnits: 9},
	}
	repo.deposits = []ledger.DepositEntry{
		{MemberID: "gone", Amount: 999, Date: day(2026, 7, 2)},
	}

	svc := NewService(repo)
	result, err := svc.Aggregate(context.Background(), "mess-1", day(2026, 7, 1), day(2026, 8, 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.TotalMeals != 1 || result.TotalDeposits != 0 {
		t.Fatalf("departed member leaked into aggregate: %+v", result)
	}
}

func TestAggregateExcludesOutOfRangeRecords(t *testing.T) {
	repo := newFakeReportRepo()
	repo.roster = []ledger.RosterMember{{ID: "m1", Name: "Alice"}}
	repo.records = []ledger.MealRecord{
		{MemberID: "m1", Date: day(2026, 6, 30), LunchUnits: 5},
		{MemberID: "m1", Date: day(2026, 7, 1), LunchUnits: 1},
		{MemberID: "m1", Date: day(2026, 8, 1), LunchUnits: 7},
	}

	svc := NewService(repo)
	result, err := svc.Aggregate(context.Background(), "mess-1", day(2026, 7, 1), day(2026, 8, 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.TotalMeals != 1 {
		t.Fatalf("expected only in-range meals, got %v", result.TotalMeals)
	}
}

func TestPeriodReportBalances(t *testing.T) {
	repo := newFakeReportRepo()
	repo.roster = []ledger.RosterMember{
		{ID: "m1", Name: "Alice", TotalDeposit: 5000},
		{ID: "m2", Name: "Bob", TotalDeposit: 2000},
	}
	repo.records = []ledger.MealRecord{
		{MemberID: "m1", Date: day(2026, 7, 1), LunchUnits: 20, DinnerUnits: 10},
		{MemberID: "m2", Date: day(2026, 7, 1), LunchUnits: 15, DinnerUnits: 15},
	}
	repo.deposits = []ledger.DepositEntry{
		{MemberID: "m1", Amount: 2000, Date: day(2026, 7, 2)},
		{MemberID: "m2", Amount: 1000, Date: day(2026, 7, 2)},
	}

	svc := NewService(repo)
	result, err := svc.PeriodReport(context.Background(), "mess-1", ledger.Period{Month: 7, Year: 2026})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 3000 deposits / 60 meals = 50 per meal.
	if result.MealRate != 50 {
		t.Fatalf("expected rate 50, got %v", result.MealRate)
	}
	if result.Settled {
		t.Fatalf("expected unsettled period")
	}
	if result.Members[0].Balance != 2000-30*50 {
		t.Fatalf("unexpected m1 balance %v", result.Members[0].Balance)
	}
	if result.Members[0].LifetimeDeposit != 5000 {
		t.Fatalf("expected lifetime deposit preserved, got %v", result.Members[0].LifetimeDeposit)
	}
	if result.Members[1].Balance != 1000-30*50 {
		t.Fatalf("unexpected m2 balance %v", result.Members[1].Balance)
	}
}

func TestPeriodReportSettledFlag(t *testing.T) {
	repo := newFakeReportRepo()
	repo.roster = []ledger.RosterMember{{ID: "m1", Name: "Alice"}}
	repo.settled["mess-1"] = true

	svc := NewService(repo)
	result, err := svc.PeriodReport(context.Background(), "mess-1", ledger.Period{Month: 7, Year: 2026})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Settled {
		t.Fatalf("expected settled flag")
	}
}

func TestPeriodReportInvalidPeriod(t *testing.T) {
	svc := NewService(newFakeReportRepo())
	if _, err := svc.PeriodReport(context.Background(), "mess-1", ledger.Period{Month: 13, Year: 2026}); err == nil {
		t.Fatalf("expected error for invalid period")
	}
}
