package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	billsdomain "mess-manager-go/internal/domain/bills"
	ledgerdomain "mess-manager-go/internal/domain/ledger"
	messdomain "mess-manager-go/internal/domain/mess"
	notificationdomain "mess-manager-go/internal/domain/notification"
	"mess-manager-go/internal/transport/httpserver/middleware"
	"mess-manager-go/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// stubMessRepo backs the authz predicates; only member lookups matter here.
type stubMessRepo struct {
	members map[string]*messdomain.Member
}

func (r *stubMessRepo) GetMember(ctx context.Context, memberID string) (*messdomain.Member, error) {
	member, ok := r.members[memberID]
	if !ok {
		return nil, messdomain.ErrMemberNotFound
	}
	return member, nil
}

func (r *stubMessRepo) Transaction(ctx context.Context, fn func(messdomain.Repository) error) error {
	return fn(r)
}

func (r *stubMessRepo) GetMess(ctx context.Context, messID string) (*messdomain.Mess, error) {
	return nil, errors.New("not implemented")
}

func (r *stubMessRepo) GetMessByCode(ctx context.Context, code string) (*messdomain.Mess, error) {
	return nil, errors.New("not implemented")
}

func (r *stubMessRepo) ListMembers(ctx context.Context, messID string) ([]messdomain.Member, error) {
	return nil, errors.New("not implemented")
}

func (r *stubMessRepo) CountMembers(ctx context.Context, messID string) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *stubMessRepo) CreateMess(ctx context.Context, m *messdomain.Mess) error {
	return errors.New("not implemented")
}

func (r *stubMessRepo) CreateMember(ctx context.Context, member *messdomain.Member) error {
	return errors.New("not implemented")
}

func (r *stubMessRepo) UpdateMemberMess(ctx context.Context, memberID string, messID *string, role string) error {
	return errors.New("not implemented")
}

func (r *stubMessRepo) UpdateMemberRole(ctx context.Context, memberID, role string) error {
	return errors.New("not implemented")
}

func (r *stubMessRepo) UpdateMemberProfile(ctx context.Context, memberID, name, email string) error {
	return errors.New("not implemented")
}

func (r *stubMessRepo) DeleteMess(ctx context.Context, messID string) error {
	return errors.New("not implemented")
}

func (r *stubMessRepo) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	return false, errors.New("not implemented")
}

type stubBillsRepo struct {
	bill *billsdomain.Bill
}

func (r *stubBillsRepo) Transaction(ctx context.Context, fn func(billsdomain.Repository) error) error {
	return fn(r)
}

func (r *stubBillsRepo) CreateBill(ctx context.Context, bill *billsdomain.Bill) error {
	return errors.New("not implemented")
}

func (r *stubBillsRepo) GetBill(ctx context.Context, billID string) (*billsdomain.Bill, error) {
	if r.bill == nil || r.bill.ID != billID {
		return nil, billsdomain.ErrBillNotFound
	}
	return r.bill, nil
}

func (r *stubBillsRepo) ListBills(ctx context.Context, messID string, filter billsdomain.ListFilter) ([]billsdomain.Bill, error) {
	return nil, errors.New("not implemented")
}

func (r *stubBillsRepo) UpdateBillAmount(ctx context.Context, billID string, total, perHead float64) error {
	return errors.New("not implemented")
}

func (r *stubBillsRepo) UpdatePayment(ctx context.Context, payment *billsdomain.Payment) error {
	return nil
}

func (r *stubBillsRepo) DeleteBill(ctx context.Context, billID string) error {
	return errors.New("not implemented")
}

func (r *stubBillsRepo) ListRoster(ctx context.Context, messID string) ([]ledgerdomain.RosterMember, error) {
	return nil, errors.New("not implemented")
}

type nopNotifier struct{}

func (nopNotifier) NotifyMember(ctx context.Context, messID, memberID string, note notificationdomain.Note) {
}

func (nopNotifier) NotifyMess(ctx context.Context, messID string, note notificationdomain.Note) {}

func newBillToggleFixture() (*chi.Mux, *stubBillsRepo) {
	messID := "mess-1"
	messRepo := &stubMessRepo{members: map[string]*messdomain.Member{
		"admin": {ID: "admin", Name: "Alice", Role: messdomain.RoleAdmin, MessID: &messID},
		"m2":    {ID: "m2", Name: "Bob", Role: messdomain.RoleMember, MessID: &messID},
	}}
	billsRepo := &stubBillsRepo{bill: &billsdomain.Bill{
		ID:            "bill-1",
		MessID:        messID,
		Name:          "Electricity",
		TotalAmount:   300,
		PerHeadAmount: 150,
		Payments: []billsdomain.Payment{
			{BillID: "bill-1", MemberID: "admin"},
			{BillID: "bill-1", MemberID: "m2"},
		},
	}}

	log := logger.NewNop()
	handlers := New(
		messdomain.NewService(messRepo, nopNotifier{}),
		nil, nil, nil,
		billsdomain.NewService(billsRepo, nopNotifier{}),
		nil, nil,
		log,
	)

	router := chi.NewRouter()
	router.Post("/bills/{id}/payments/{member_id}", handlers.ToggleBillPayment)
	return router, billsRepo
}

func doToggle(router *chi.Mux, callerID, billID, memberID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bills/"+billID+"/payments/"+memberID, nil)
	req = req.WithContext(middleware.WithUser(req.Context(), middleware.User{ID: callerID}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestToggleBillPaymentRequiresAdmin(t *testing.T) {
	router, billsRepo := newBillToggleFixture()

	rec := doToggle(router, "m2", "bill-1", "m2")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin caller, got %d", rec.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected error envelope, got %v", err)
	}
	if body.Error.Code != "admin_required" {
		t.Fatalf("expected admin_required, got %q", body.Error.Code)
	}
	for _, payment := range billsRepo.bill.Payments {
		if payment.Paid {
			t.Fatalf("expected no payment flipped by a rejected caller")
		}
	}
}

func TestToggleBillPaymentAdminFlipsFlag(t *testing.T) {
	router, billsRepo := newBillToggleFixture()

	rec := doToggle(router, "admin", "bill-1", "m2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin caller, got %d", rec.Code)
	}
	if !billsRepo.bill.Payments[1].Paid {
		t.Fatalf("expected m2's payment marked paid")
	}
}
