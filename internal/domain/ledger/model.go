package ledger

import "time"

// MealRecord is one member's meal counts for one calendar day. TotalUnits is
// a cached sum of lunch and dinner; every write path recomputes it in the
// same operation. Records are keyed by (member, mess, day): a second
// submission for the same day overwrites.
type MealRecord struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	MemberID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_meal_member_day,priority:1"`
	MessID      string    `gorm:"type:uuid;index;not null;uniqueIndex:idx_meal_member_day,priority:2"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_meal_member_day,priority:3"`
	LunchUnits  float64   `gorm:"type:numeric(6,2);not null;default:0"`
	DinnerUnits float64   `gorm:"type:numeric(6,2);not null;default:0"`
	TotalUnits  float64   `gorm:"type:numeric(6,2);not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// DepositEntry is one deposit transaction. The ledger is append-only; the
// member's lifetime total is incremented alongside, never recomputed outside
// the integrity checker.
type DepositEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	MemberID  string    `gorm:"type:uuid;index;not null"`
	MessID    string    `gorm:"type:uuid;index;not null"`
	Amount    float64   `gorm:"type:numeric(12,2);not null"`
	Date      time.Time `gorm:"not null"`
	CreatedBy string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Period is a calendar month aggregation window.
type Period struct {
	Month int
	Year  int
}

// Bounds returns the window as [from, to): inclusive first day, exclusive
// first day of the next month.
func (p Period) Bounds() (time.Time, time.Time) {
	from := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Previous returns the period one month before p.
func (p Period) Previous() Period {
	from, _ := p.Bounds()
	prev := from.AddDate(0, -1, 0)
	return Period{Month: int(prev.Month()), Year: prev.Year()}
}

func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 1970
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// RosterMember is the slice of a mess member the ledger views need.
type RosterMember struct {
	ID           string
	Name         string
	Role         string
	TotalDeposit float64
}

type MemberMealInput struct {
	MemberID string
	Lunch    float64
	Dinner   float64
}

type SubmitMealsInput struct {
	MessID      string
	SubmittedBy string
	Date        time.Time
	Meals       []MemberMealInput
}

type DepositInput struct {
	MemberID string
	Amount   float64
}

type AddDepositsInput struct {
	MessID     string
	RecordedBy string
	Entries    []DepositInput
}

// MemberDayMeals joins a roster member with their record for one day; members
// with no record contribute zeros.
type MemberDayMeals struct {
	MemberID string  `json:"member_id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Lunch    float64 `json:"lunch"`
	Dinner   float64 `json:"dinner"`
	Total    float64 `json:"total"`
}

type MemberMonthMeals struct {
	MemberID        string  `json:"member_id"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	Lunch           float64 `json:"lunch"`
	Dinner          float64 `json:"dinner"`
	Total           float64 `json:"total"`
	LifetimeDeposit float64 `json:"lifetime_deposit"`
}

type DayStatistics struct {
	Date   string  `json:"date"`
	Lunch  float64 `json:"lunch"`
	Dinner float64 `json:"dinner"`
	Total  float64 `json:"total"`
}

type MonthTotals struct {
	Lunch  float64 `json:"lunch"`
	Dinner float64 `json:"dinner"`
	Total  float64 `json:"total"`
}

type MemberStatistics struct {
	Days   []DayStatistics `json:"statistics"`
	Totals MonthTotals     `json:"monthly_totals"`
}
