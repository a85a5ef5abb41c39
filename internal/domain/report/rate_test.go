package report

import (
	"math"
	"testing"
)

func TestMealRateZeroMeals(t *testing.T) {
	if rate := MealRate(5000, 0); rate != 0 {
		t.Fatalf("expected zero rate with no meals, got %v", rate)
	}
	if rate := MealRate(0, 0); rate != 0 {
		t.Fatalf("expected zero rate with empty period, got %v", rate)
	}
}

func TestMealRateRounding(t *testing.T) {
	// 1000 / 3 = 333.333... -> 333.33
	if rate := MealRate(1000, 3); rate != 333.33 {
		t.Fatalf("expected 333.33, got %v", rate)
	}
	// 100 / 8 = 12.5, exact
	if rate := MealRate(100, 8); rate != 12.5 {
		t.Fatalf("expected 12.5, got %v", rate)
	}
	// half away from zero: 0.125 -> 0.13
	if rate := MealRate(1, 8); rate != 0.13 {
		t.Fatalf("expected 0.13, got %v", rate)
	}
}

func TestBalanceIdentity(t *testing.T) {
	// Exact rate, no rounding: 2000 deposits minus 30 meals at 50.
	if balance := Balance(2000, 30, 50); balance != 500 {
		t.Fatalf("expected 500, got %v", balance)
	}
	// Rounded cost: 30 x 33.33 = 999.90.
	if balance := Balance(1000, 30, 33.33); balance != 0.1 {
		t.Fatalf("expected 0.1, got %v", balance)
	}
}

func TestBalanceResidueBound(t *testing.T) {
	// Awkward totals so the rate rounds. The sum of member balances must
	// stay within 0.005 per member of the exact group total.
	deposits := []float64{333.33, 333.33, 333.34}
	units := []float64{7, 11, 13}

	var totalDeposits, totalUnits float64
	for i := range deposits {
		totalDeposits += deposits[i]
		totalUnits += units[i]
	}

	rate := MealRate(totalDeposits, totalUnits)

	var sum float64
	for i := range deposits {
		sum += Balance(deposits[i], units[i], rate)
	}

	exact := totalDeposits - totalUnits*rate
	if residue := math.Abs(sum - exact); residue > 0.005*float64(len(deposits)) {
		t.Fatalf("residue %v exceeds bound", residue)
	}
}

func TestMealCost(t *testing.T) {
	if cost := MealCost(0, 50); cost != 0 {
		t.Fatalf("expected zero cost for zero units, got %v", cost)
	}
	if cost := MealCost(30, 33.33); cost != 999.90 {
		t.Fatalf("expected 999.90, got %v", cost)
	}
}
