package integrity

import (
	"context"
	"math"

	"mess-manager-go/internal/metrics"

	"github.com/shopspring/decimal"
)

// Service recomputes cached derived fields from primitive ledger records and
// reports or repairs divergence. Verify never writes; Fix writes every
// correction for the mess in one transaction or none at all.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Verify(ctx context.Context, messID string) (Report, error) {
	report := Report{Issues: []Issue{}}

	records, err := s.repo.ListMealRecords(ctx, messID)
	if err != nil {
		return Report{}, err
	}
	for _, record := range records {
		recomputed := record.LunchUnits + record.DinnerUnits
		if !diverges(record.TotalUnits, recomputed) {
			continue
		}
		report.Summary.Breakdown.MealCountIssues++
		report.Issues = append(report.Issues, Issue{
			Type:       IssueMealCountMismatch,
			RecordID:   record.ID,
			MemberID:   record.MemberID,
			Date:       record.Date.Format("2006-01-02"),
			Stored:     record.TotalUnits,
			Recomputed: recomputed,
			Difference: record.TotalUnits - recomputed,
		})
	}

	roster, err := s.repo.ListRoster(ctx, messID)
	if err != nil {
		return Report{}, err
	}
	for _, member := range roster {
		recomputed, err := s.repo.SumMemberDeposits(ctx, member.ID, messID)
		if err != nil {
			return Report{}, err
		}
		if !diverges(member.TotalDeposit, recomputed) {
			continue
		}
		report.Summary.Breakdown.DepositIssues++
		report.Issues = append(report.Issues, Issue{
			Type:       IssueDepositMismatch,
			MemberID:   member.ID,
			Name:       member.Name,
			Stored:     member.TotalDeposit,
			Recomputed: recomputed,
			Difference: member.TotalDeposit - recomputed,
		})
	}

	bills, err := s.repo.ListBillChecks(ctx, messID)
	if err != nil {
		return Report{}, err
	}
	for _, bill := range bills {
		if bill.MemberCount == 0 {
			report.Summary.Breakdown.BillIssues++
			report.Issues = append(report.Issues, Issue{
				Type:   IssueBillNoMembers,
				BillID: bill.ID,
				Name:   bill.Name,
			})
			continue
		}

		recomputed := bill.TotalAmount / float64(bill.MemberCount)
		if !diverges(bill.PerHead, recomputed) {
			continue
		}
		report.Summary.Breakdown.BillIssues++
		report.Issues = append(report.Issues, Issue{
			Type:       IssueBillCalculationMismatch,
			BillID:     bill.ID,
			Name:       bill.Name,
			Stored:     bill.PerHead,
			Recomputed: recomputed,
			Difference: bill.PerHead - recomputed,
		})
	}

	report.Summary.TotalChecks = len(records) + len(roster) + len(bills)
	report.Summary.TotalIssues = len(report.Issues)
	for _, issue := range report.Issues {
		metrics.IntegrityIssues.WithLabelValues(string(issue.Type)).Inc()
	}
	report.Status = StatusHealthy
	if report.Summary.TotalIssues > 0 {
		report.Status = StatusIssuesFound
	}

	return report, nil
}

func (s *Service) Fix(ctx context.Context, messID string) (FixResult, error) {
	result := FixResult{Details: []Correction{}}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		records, err := tx.ListMealRecords(ctx, messID)
		if err != nil {
			return err
		}
		for _, record := range records {
			recomputed := record.LunchUnits + record.DinnerUnits
			if !diverges(record.TotalUnits, recomputed) {
				continue
			}
			if err := tx.UpdateMealRecordTotal(ctx, record.ID, recomputed); err != nil {
				return err
			}
			result.Details = append(result.Details, Correction{
				Type:     IssueMealCountMismatch,
				RecordID: record.ID,
				OldValue: record.TotalUnits,
				NewValue: recomputed,
			})
		}

		roster, err := tx.ListRoster(ctx, messID)
		if err != nil {
			return err
		}
		for _, member := range roster {
			recomputed, err := tx.SumMemberDeposits(ctx, member.ID, messID)
			if err != nil {
				return err
			}
			if !diverges(member.TotalDeposit, recomputed) {
				continue
			}
			if err := tx.UpdateMemberTotalDeposit(ctx, member.ID, recomputed); err != nil {
				return err
			}
			result.Details = append(result.Details, Correction{
				Type:     IssueDepositMismatch,
				MemberID: member.ID,
				OldValue: member.TotalDeposit,
				NewValue: recomputed,
			})
		}

		bills, err := tx.ListBillChecks(ctx, messID)
		if err != nil {
			return err
		}
		for _, bill := range bills {
			if bill.MemberCount == 0 {
				// Structural fault; nothing numeric to repair.
				result.Skipped++
				continue
			}

			recomputed := round2(bill.TotalAmount / float64(bill.MemberCount))
			if !diverges(bill.PerHead, recomputed) {
				continue
			}
			if err := tx.UpdateBillPerHead(ctx, bill.ID, recomputed); err != nil {
				return err
			}
			result.Details = append(result.Details, Correction{
				Type:     IssueBillCalculationMismatch,
				BillID:   bill.ID,
				OldValue: bill.PerHead,
				NewValue: recomputed,
			})
		}

		return nil
	})
	if err != nil {
		return FixResult{}, err
	}

	result.FixedCount = len(result.Details)
	metrics.IntegrityFixes.Add(float64(result.FixedCount))
	return result, nil
}

func diverges(stored, recomputed float64) bool {
	return math.Abs(stored-recomputed) > Tolerance
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
