package report

import (
	"context"
	"fmt"
	"time"

	"mess-manager-go/internal/domain/ledger"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Aggregate sums meal units and period deposits for every roster member over
// [from, to). Reading twice with no intervening writes yields identical
// results; members absent from the ledger contribute zeros.
func (s *Service) Aggregate(ctx context.Context, messID string, from, to time.Time) (Aggregate, error) {
	roster, err := s.repo.ListRoster(ctx, messID)
	if err != nil {
		return Aggregate{}, err
	}
	if len(roster) == 0 {
		return Aggregate{Members: []MemberAggregate{}}, nil
	}

	records, err := s.repo.ListMealRecordsInRange(ctx, messID, from, to)
	if err != nil {
		return Aggregate{}, err
	}

	deposits, err := s.repo.ListDepositsInRange(ctx, messID, from, to)
	if err != nil {
		return Aggregate{}, err
	}

	byMember := make(map[string]*MemberAggregate, len(roster))
	result := Aggregate{Members: make([]MemberAggregate, 0, len(roster))}
	for _, member := range roster {
		result.Members = append(result.Members, MemberAggregate{
			MemberID: member.ID,
			Name:     member.Name,
		})
		byMember[member.ID] = &result.Members[len(result.Members)-1]
	}

	for _, record := range records {
		agg, ok := byMember[record.MemberID]
		if !ok {
			// Record of a member who has since left the mess; history is
			// retained but settled against the current roster only.
			continue
		}
		agg.LunchUnits += record.LunchUnits
		agg.DinnerUnits += record.DinnerUnits
		agg.TotalUnits += record.LunchUnits + record.DinnerUnits
	}

	for _, entry := range deposits {
		agg, ok := byMember[entry.MemberID]
		if !ok {
			continue
		}
		agg.Deposits += entry.Amount
	}

	for _, member := range result.Members {
		result.TotalMeals += member.TotalUnits
		result.TotalDeposits += member.Deposits
	}

	return result, nil
}

// PeriodReport builds the monthly statement for a mess: aggregates, meal
// rate, and per-member balances.
func (s *Service) PeriodReport(ctx context.Context, messID string, period ledger.Period) (PeriodReport, error) {
	if !period.Valid() {
		return PeriodReport{}, fmt.Errorf("invalid period")
	}

	from, to := period.Bounds()
	aggregate, err := s.Aggregate(ctx, messID, from, to)
	if err != nil {
		return PeriodReport{}, err
	}

	settled, err := s.repo.IsPeriodSettled(ctx, messID, period)
	if err != nil {
		return PeriodReport{}, err
	}

	roster, err := s.repo.ListRoster(ctx, messID)
	if err != nil {
		return PeriodReport{}, err
	}
	lifetimeByMember := make(map[string]float64, len(roster))
	for _, member := range roster {
		lifetimeByMember[member.ID] = member.TotalDeposit
	}

	rate := MealRate(aggregate.TotalDeposits, aggregate.TotalMeals)

	members := make([]MemberReport, 0, len(aggregate.Members))
	for _, agg := range aggregate.Members {
		members = append(members, MemberReport{
			MemberID:        agg.MemberID,
			Name:            agg.Name,
			LunchUnits:      agg.LunchUnits,
			DinnerUnits:     agg.DinnerUnits,
			TotalUnits:      agg.TotalUnits,
			PeriodDeposits:  agg.Deposits,
			Balance:         Balance(agg.Deposits, agg.TotalUnits, rate),
			LifetimeDeposit: lifetimeByMember[agg.MemberID],
		})
	}

	return PeriodReport{
		Period:        period,
		Month:         period.Month,
		Year:          period.Year,
		TotalMeals:    aggregate.TotalMeals,
		TotalDeposits: aggregate.TotalDeposits,
		MealRate:      rate,
		Members:       members,
		Settled:       settled,
	}, nil
}
