package report

import "github.com/shopspring/decimal"

// MealRate derives the per-meal cost rate for a period. A period with no
// meals has a rate of zero; the division is guarded, never NaN or Inf.
// Rounding is half away from zero to 2 places.
func MealRate(totalDeposits, totalMeals float64) float64 {
	if totalMeals == 0 {
		return 0
	}
	rate := decimal.NewFromFloat(totalDeposits).Div(decimal.NewFromFloat(totalMeals))
	return round2(rate)
}

// Balance is a member's period-scoped standing: period deposits minus the
// cost of their period meal units at the given rate. The sum of all member
// balances equals totalDeposits − totalMeals×rate up to a rounding residue
// bounded by ±0.005 per member, which is accepted.
func Balance(periodDeposits, periodUnits, mealRate float64) float64 {
	cost := decimal.NewFromFloat(periodUnits).Mul(decimal.NewFromFloat(mealRate))
	return round2(decimal.NewFromFloat(periodDeposits).Sub(cost))
}

// MealCost is the settlement debit for a member: period units × rate.
func MealCost(periodUnits, mealRate float64) float64 {
	return round2(decimal.NewFromFloat(periodUnits).Mul(decimal.NewFromFloat(mealRate)))
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
