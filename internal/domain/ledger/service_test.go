package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mess-manager-go/internal/domain/notification"
)

type fakeLedgerRepo struct {
	records       map[string]*MealRecord
	deposits      []DepositEntry
	roster        []RosterMember
	balances      map[string]float64
	failIncrFor   string
	savedDeposits []DepositEntry
	savedBalances map[string]float64
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		records:  make(map[string]*MealRecord),
		balances: make(map[string]float64),
	}
}

func recordKey(memberID string, day time.Time) string {
	return memberID + "|" + day.Format("2006-01-02")
}

func (r *fakeLedgerRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	r.savedDeposits = append([]DepositEntry(nil), r.deposits...)
	r.savedBalances = make(map[string]float64, len(r.balances))
	for k, v := range r.balances {
		r.savedBalances[k] = v
	}

	err := fn(r)
	if err != nil {
		r.deposits = r.savedDeposits
		r.balances = r.savedBalances
	}
	return err
}

func (r *fakeLedgerRepo) GetMealRecordForDay(ctx context.Context, memberID, messID string, day time.Time) (*MealRecord, error) {
	record, ok := r.records[recordKey(memberID, day)]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeLedgerRepo) CreateMealRecord(ctx context.Context, record *MealRecord) error {
	copied := *record
	r.records[recordKey(record.MemberID, record.Date)] = &copied
	return nil
}

func (r *fakeLedgerRepo) UpdateMealRecord(ctx context.Context, record *MealRecord) error {
	copied := *record
	r.records[recordKey(record.MemberID, record.Date)] = &copied
	return nil
}

func (r *fakeLedgerRepo) ListMealRecordsForDate(ctx context.Context, messID string, day time.Time) ([]MealRecord, error) {
	result := make([]MealRecord, 0)
	for _, record := range r.records {
		if record.MessID == messID && record.Date.Equal(day) {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeLedgerRepo) ListMealRecordsInRange(ctx context.Context, messID string, from, to time.Time) ([]MealRecord, error) {
	result := make([]MealRecord, 0)
	for _, record := range r.records {
		if record.MessID == messID && !record.Date.Before(from) && record.Date.Before(to) {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeLedgerRepo) ListMemberMealRecordsInRange(ctx context.Context, memberID, messID string, from, to time.Time) ([]MealRecord, error) {
	result := make([]MealRecord, 0)
	for _, record := range r.records {
		if record.MemberID == memberID && record.MessID == messID && !record.Date.Before(from) && record.Date.Before(to) {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeLedgerRepo) CreateDepositEntries(ctx context.Context, entries []DepositEntry) error {
	r.deposits = append(r.deposits, entries...)
	return nil
}

func (r *fakeLedgerRepo) ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]DepositEntry, error) {
	result := make([]DepositEntry, 0)
	for _, entry := range r.deposits {
		if entry.MessID == messID && !entry.Date.Before(from) && entry.Date.Before(to) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *fakeLedgerRepo) IncrementMemberDeposit(ctx context.Context, memberID string, amount float64) error {
	if memberID == r.failIncrFor {
		return fmt.Errorf("write failed for %s", memberID)
	}
	r.balances[memberID] += amount
	return nil
}

func (r *fakeLedgerRepo) ListRoster(ctx context.Context, messID string) ([]RosterMember, error) {
	return r.roster, nil
}

func (r *fakeLedgerRepo) CountRosterMembersByIDs(ctx context.Context, messID string, memberIDs []string) (int64, error) {
	known := make(map[string]struct{}, len(r.roster))
	for _, member := range r.roster {
		known[member.ID] = struct{}{}
	}
	var count int64
	for _, id := range memberIDs {
		if _, ok := known[id]; ok {
			count++
		}
	}
	return count, nil
}

type fakeNotifier struct {
	memberNotes int
	messNotes   int
}

func (n *fakeNotifier) NotifyMember(ctx context.Context, messID, memberID string, note notification.Note) {
	n.memberNotes++
}

func (n *fakeNotifier) NotifyMess(ctx context.Context, messID string, note notification.Note) {
	n.messNotes++
}

func testDay() time.Time {
	return time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
}

func TestSubmitMealsCreatesWithCachedTotal(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}, {ID: "m2"}}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	err := svc.SubmitMeals(context.Background(), SubmitMealsInput{
		MessID:      "mess-1",
		SubmittedBy: "m1",
		Date:        testDay(),
		Meals: []MemberMealInput{
			{MemberID: "m1", Lunch: 1, Dinner: 2},
			{MemberID: "m2", Lunch: 0, Dinner: 0},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	record := repo.records[recordKey("m1", testDay())]
	if record == nil {
		t.Fatalf("expected record for m1")
	}
	if record.TotalUnits != 3 {
		t.Fatalf("expected cached total 3, got %v", record.TotalUnits)
	}
	if notifier.messNotes != 1 {
		t.Fatalf("expected one mess notification, got %d", notifier.messNotes)
	}
}

func TestSubmitMealsOverwritesSameDay(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}}
	svc := NewService(repo, &fakeNotifier{})

	input := SubmitMealsInput{
		MessID: "mess-1", SubmittedBy: "m1", Date: testDay(),
		Meals: []MemberMealInput{{MemberID: "m1", Lunch: 1, Dinner: 1}},
	}
	if err := svc.SubmitMeals(context.Background(), input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	input.Meals[0].Lunch = 2
	input.Meals[0].Dinner = 0.5
	if err := svc.SubmitMeals(context.Background(), input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected one record per member per day, got %d", len(repo.records))
	}
	record := repo.records[recordKey("m1", testDay())]
	if record.LunchUnits != 2 || record.DinnerUnits != 0.5 || record.TotalUnits != 2.5 {
		t.Fatalf("overwrite did not recompute totals: %+v", record)
	}
}

func TestSubmitMealsRejectsInvalidUnits(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}}
	svc := NewService(repo, &fakeNotifier{})

	err := svc.SubmitMeals(context.Background(), SubmitMealsInput{
		MessID: "mess-1", SubmittedBy: "m1", Date: testDay(),
		Meals: []MemberMealInput{{MemberID: "m1", Lunch: -1}},
	})
	if !errors.Is(err, ErrNegativeUnits) {
		t.Fatalf("expected ErrNegativeUnits, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("rejected batch must not write records")
	}
}

func TestSubmitMealsRejectsOutsideRoster(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}}
	svc := NewService(repo, &fakeNotifier{})

	err := svc.SubmitMeals(context.Background(), SubmitMealsInput{
		MessID: "mess-1", SubmittedBy: "m1", Date: testDay(),
		Meals: []MemberMealInput{
			{MemberID: "m1", Lunch: 1},
			{MemberID: "stranger", Lunch: 1},
		},
	})
	if !errors.Is(err, ErrMemberNotInMess) {
		t.Fatalf("expected ErrMemberNotInMess, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("rejected batch must not write records")
	}
}

func TestMealsForDateFillsRosterGapsWithZeros(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1", Name: "Alice"}, {ID: "m2", Name: "Bob"}}
	svc := NewService(repo, &fakeNotifier{})

	if err := svc.SubmitMeals(context.Background(), SubmitMealsInput{
		MessID: "mess-1", SubmittedBy: "m1", Date: testDay(),
		Meals: []MemberMealInput{{MemberID: "m1", Lunch: 1, Dinner: 1}},
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rows, err := svc.MealsForDate(context.Background(), "mess-1", testDay())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected the whole roster, got %d rows", len(rows))
	}
	if rows[0].Total != 2 {
		t.Fatalf("expected m1 total 2, got %v", rows[0].Total)
	}
	if rows[1].Total != 0 || rows[1].Lunch != 0 || rows[1].Dinner != 0 {
		t.Fatalf("expected zeros for member without a record, got %+v", rows[1])
	}
}

func TestAddDepositsAtomicBatch(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}, {ID: "m2"}}
	repo.balances["m1"] = 100
	repo.balances["m2"] = 100
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	err := svc.AddDeposits(context.Background(), AddDepositsInput{
		MessID: "mess-1", RecordedBy: "m1",
		Entries: []DepositInput{
			{MemberID: "m1", Amount: 500},
			{MemberID: "m2", Amount: 300},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.deposits) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(repo.deposits))
	}
	if repo.balances["m1"] != 600 || repo.balances["m2"] != 400 {
		t.Fatalf("lifetime totals not incremented: %+v", repo.balances)
	}
	if notifier.memberNotes != 2 {
		t.Fatalf("expected a notification per entry, got %d", notifier.memberNotes)
	}
}

func TestAddDepositsRollsBackOnFailure(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}, {ID: "m2"}}
	repo.balances["m1"] = 100
	repo.balances["m2"] = 100
	repo.failIncrFor = "m2"
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	err := svc.AddDeposits(context.Background(), AddDepositsInput{
		MessID: "mess-1", RecordedBy: "m1",
		Entries: []DepositInput{
			{MemberID: "m1", Amount: 500},
			{MemberID: "m2", Amount: 300},
		},
	})
	if err == nil {
		t.Fatalf("expected error from failed increment")
	}
	if len(repo.deposits) != 0 {
		t.Fatalf("entries leaked from failed batch: %d", len(repo.deposits))
	}
	if repo.balances["m1"] != 100 || repo.balances["m2"] != 100 {
		t.Fatalf("partial increments leaked: %+v", repo.balances)
	}
	if notifier.memberNotes != 0 {
		t.Fatalf("no notifications for a failed batch, got %d", notifier.memberNotes)
	}
}

func TestAddDepositsRejectsNegativeAmount(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}}
	svc := NewService(repo, &fakeNotifier{})

	err := svc.AddDeposits(context.Background(), AddDepositsInput{
		MessID: "mess-1", RecordedBy: "m1",
		Entries: []DepositInput{{MemberID: "m1", Amount: -5}},
	})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestAddDepositsRejectsOutsideRoster(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1"}}
	svc := NewService(repo, &fakeNotifier{})

	err := svc.AddDeposits(context.Background(), AddDepositsInput{
		MessID: "mess-1", RecordedBy: "m1",
		Entries: []DepositInput{{MemberID: "stranger", Amount: 100}},
	})
	if !errors.Is(err, ErrMemberNotInMess) {
		t.Fatalf("expected ErrMemberNotInMess, got %v", err)
	}
	if len(repo.deposits) != 0 {
		t.Fatalf("rejected batch must not write entries")
	}
}

func TestMonthSummaryTotals(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.roster = []RosterMember{{ID: "m1", Name: "Alice", TotalDeposit: 900}}
	svc := NewService(repo, &fakeNotifier{})

	for d := 1; d <= 3; d++ {
		if err := svc.SubmitMeals(context.Background(), SubmitMealsInput{
			MessID: "mess-1", SubmittedBy: "m1",
			Date:  time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC),
			Meals: []MemberMealInput{{MemberID: "m1", Lunch: 1, Dinner: 1}},
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	summary, err := svc.MonthSummary(context.Background(), "mess-1", Period{Month: 7, Year: 2026})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summary) != 1 {
		t.Fatalf("expected one roster row, got %d", len(summary))
	}
	if summary[0].Total != 6 || summary[0].Lunch != 3 || summary[0].Dinner != 3 {
		t.Fatalf("unexpected totals: %+v", summary[0])
	}
	if summary[0].LifetimeDeposit != 900 {
		t.Fatalf("expected lifetime deposit carried, got %v", summary[0].LifetimeDeposit)
	}
}

func TestPeriodBounds(t *testing.T) {
	period := Period{Month: 12, Year: 2026}
	from, to := period.Bounds()
	if !from.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from: %v", from)
	}
	if !to.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected to: %v", to)
	}

	prev := period.Previous()
	if prev.Month != 11 || prev.Year != 2026 {
		t.Fatalf("unexpected previous: %+v", prev)
	}

	jan := Period{Month: 1, Year: 2026}.Previous()
	if jan.Month != 12 || jan.Year != 2025 {
		t.Fatalf("expected year rollover, got %+v", jan)
	}
}
