package bills

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"mess-manager-go/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo     Repository
	notifier notification.Notifier
}

func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create splits a lump amount evenly across the current roster and freezes
// that roster into the bill's payment list. An empty roster is a structural
// error, not a division fault.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Bill, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Total <= 0 || math.IsNaN(input.Total) || math.IsInf(input.Total, 0) {
		return nil, ErrInvalidAmount
	}

	roster, err := s.repo.ListRoster(ctx, input.MessID)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	bill := Bill{
		ID:            uuid.NewString(),
		MessID:        input.MessID,
		Name:          name,
		TotalAmount:   input.Total,
		PerHeadAmount: perHead(input.Total, len(roster)),
		Month:         int(date.Month()),
		Year:          date.Year(),
		Date:          date,
		CreatedBy:     input.CreatedBy,
		Payments:      make([]Payment, 0, len(roster)),
	}
	for _, member := range roster {
		bill.Payments = append(bill.Payments, Payment{
			BillID:   bill.ID,
			MemberID: member.ID,
		})
	}

	if err := s.repo.CreateBill(ctx, &bill); err != nil {
		return nil, err
	}

	s.notifier.NotifyMess(ctx, input.MessID, notification.Note{
		Title:   "New Bill Added",
		Message: fmt.Sprintf("A new bill %q of %.2f was added (%.2f per head).", bill.Name, bill.TotalAmount, bill.PerHeadAmount),
		Event: notification.BillCreatedEvent{
			BillID:      bill.ID,
			BillName:    bill.Name,
			TotalAmount: bill.TotalAmount,
			CreatedBy:   input.CreatedBy,
		},
	})

	return &bill, nil
}

func (s *Service) Get(ctx context.Context, messID, billID string) (*Bill, error) {
	bill, err := s.repo.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.MessID != messID {
		return nil, ErrAccessDenied
	}
	return bill, nil
}

func (s *Service) List(ctx context.Context, messID string, filter ListFilter) ([]Bill, error) {
	return s.repo.ListBills(ctx, messID, filter)
}

// TogglePayment flips one frozen-roster member's paid flag and stamps or
// clears the payment time. A member outside the frozen roster is a not-found,
// even if they since joined the mess.
func (s *Service) TogglePayment(ctx context.Context, messID, billID, memberID, toggledBy string) (*Bill, error) {
	bill, err := s.Get(ctx, messID, billID)
	if err != nil {
		return nil, err
	}

	var payment *Payment
	for i := range bill.Payments {
		if bill.Payments[i].MemberID == memberID {
			payment = &bill.Payments[i]
			break
		}
	}
	if payment == nil {
		return nil, ErrMemberNotOnBill
	}

	payment.Paid = !payment.Paid
	if payment.Paid {
		now := time.Now().UTC()
		payment.PaidAt = &now
	} else {
		payment.PaidAt = nil
	}

	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}

	status := "marked as unpaid"
	if payment.Paid {
		status = "marked as paid"
	}
	s.notifier.NotifyMember(ctx, messID, memberID, notification.Note{
		Title:   "Bill Payment Update",
		Message: fmt.Sprintf("Your payment for %q has been %s.", bill.Name, status),
		Event: notification.BillPaymentEvent{
			BillID:        bill.ID,
			BillName:      bill.Name,
			PerHeadAmount: bill.PerHeadAmount,
			Paid:          payment.Paid,
			ToggledBy:     toggledBy,
		},
	})

	return bill, nil
}

// UpdateAmount re-splits a new total across the bill's original frozen
// roster. Paid flags are untouched; the live mess roster is irrelevant even
// if membership changed since the split.
func (s *Service) UpdateAmount(ctx context.Context, messID, billID, updatedBy string, newTotal float64) (*Bill, error) {
	if newTotal <= 0 || math.IsNaN(newTotal) || math.IsInf(newTotal, 0) {
		return nil, ErrInvalidAmount
	}

	bill, err := s.Get(ctx, messID, billID)
	if err != nil {
		return nil, err
	}
	if len(bill.Payments) == 0 {
		return nil, ErrEmptyRoster
	}

	bill.TotalAmount = newTotal
	bill.PerHeadAmount = perHead(newTotal, len(bill.Payments))

	if err := s.repo.UpdateBillAmount(ctx, bill.ID, bill.TotalAmount, bill.PerHeadAmount); err != nil {
		return nil, err
	}

	s.notifier.NotifyMess(ctx, messID, notification.Note{
		Title:   "Bill Amount Updated",
		Message: fmt.Sprintf("The bill %q was updated to %.2f (%.2f per head).", bill.Name, bill.TotalAmount, bill.PerHeadAmount),
		Event: notification.BillUpdatedEvent{
			BillID:        bill.ID,
			BillName:      bill.Name,
			TotalAmount:   bill.TotalAmount,
			PerHeadAmount: bill.PerHeadAmount,
			UpdatedBy:     updatedBy,
		},
	})

	return bill, nil
}

// Delete removes a bill outright. There is no soft delete or audit trail.
func (s *Service) Delete(ctx context.Context, messID, billID string) error {
	bill, err := s.Get(ctx, messID, billID)
	if err != nil {
		return err
	}
	return s.repo.DeleteBill(ctx, bill.ID)
}

// Summary aggregates every bill in a period: totals, per-bill paid counts,
// and each current roster member's owed/paid/pending with an itemized list.
func (s *Service) Summary(ctx context.Context, messID string, month, year int) (PeriodSummary, error) {
	billsInPeriod, err := s.repo.ListBills(ctx, messID, ListFilter{Month: month, Year: year})
	if err != nil {
		return PeriodSummary{}, err
	}

	roster, err := s.repo.ListRoster(ctx, messID)
	if err != nil {
		return PeriodSummary{}, err
	}

	summary := PeriodSummary{
		Month:         month,
		Year:          year,
		TotalBills:    len(billsInPeriod),
		Bills:         make([]BillOverview, 0, len(billsInPeriod)),
		MemberSummary: make([]BillMemberSummary, 0, len(roster)),
	}

	for _, bill := range billsInPeriod {
		summary.TotalAmount += bill.TotalAmount
		summary.TotalPerHead += bill.PerHeadAmount

		paidCount := 0
		for _, payment := range bill.Payments {
			if payment.Paid {
				paidCount++
			}
		}
		summary.Bills = append(summary.Bills, BillOverview{
			BillID:        bill.ID,
			Name:          bill.Name,
			TotalAmount:   bill.TotalAmount,
			PerHeadAmount: bill.PerHeadAmount,
			Date:          bill.Date,
			PaidCount:     paidCount,
			TotalMembers:  len(bill.Payments),
		})
	}

	for _, member := range roster {
		row := BillMemberSummary{
			MemberID: member.ID,
			Name:     member.Name,
			Bills:    []BillDetail{},
		}
		for _, bill := range billsInPeriod {
			for _, payment := range bill.Payments {
				if payment.MemberID != member.ID {
					continue
				}
				row.Owed += bill.PerHeadAmount
				if payment.Paid {
					row.Paid += bill.PerHeadAmount
				}
				row.Bills = append(row.Bills, BillDetail{
					BillID: bill.ID,
					Name:   bill.Name,
					Amount: bill.PerHeadAmount,
					Paid:   payment.Paid,
				})
			}
		}
		row.Pending = row.Owed - row.Paid
		summary.MemberSummary = append(summary.MemberSummary, row)
	}

	return summary, nil
}

func perHead(total float64, memberCount int) float64 {
	share := decimal.NewFromFloat(total).Div(decimal.NewFromInt(int64(memberCount)))
	f, _ := share.Round(2).Float64()
	return f
}
