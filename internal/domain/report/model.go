package report

import "mess-manager-go/internal/domain/ledger"

// MemberAggregate is one member's primitive totals for a period. Deposits is
// period-scoped: the sum of entries dated within the window, not the lifetime
// cached total.
type MemberAggregate struct {
	MemberID    string
	Name        string
	LunchUnits  float64
	DinnerUnits float64
	TotalUnits  float64
	Deposits    float64
}

// Aggregate is the full aggregation for a mess and range. A mess with no
// members yields a zero aggregate, not an error.
type Aggregate struct {
	TotalMeals    float64
	TotalDeposits float64
	Members       []MemberAggregate
}

type MemberReport struct {
	MemberID        string  `json:"member_id"`
	Name            string  `json:"name"`
	LunchUnits      float64 `json:"lunch_units"`
	DinnerUnits     float64 `json:"dinner_units"`
	TotalUnits      float64 `json:"total_units"`
	PeriodDeposits  float64 `json:"period_deposits"`
	Balance         float64 `json:"balance"`
	LifetimeDeposit float64 `json:"lifetime_deposit"`
}

// PeriodReport is the monthly statement: aggregate totals, the derived meal
// rate, and every member's period balance. Balance and LifetimeDeposit are
// different quantities and both are exposed, labelled.
type PeriodReport struct {
	Period        ledger.Period  `json:"-"`
	Month         int            `json:"month"`
	Year          int            `json:"year"`
	TotalMeals    float64        `json:"total_meals"`
	TotalDeposits float64        `json:"total_deposits"`
	MealRate      float64        `json:"meal_rate"`
	Members       []MemberReport `json:"members"`
	Settled       bool           `json:"settled"`
}
