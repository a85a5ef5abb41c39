package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	billsdomain "mess-manager-go/internal/domain/bills"

	"github.com/go-chi/chi/v5"
)

type createBillRequest struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Date  string  `json:"date"`
}

type updateBillAmountRequest struct {
	Total float64 `json:"total"`
}

type billResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	TotalAmount   float64               `json:"total_amount"`
	PerHeadAmount float64               `json:"per_head_amount"`
	Month         int                   `json:"month"`
	Year          int                   `json:"year"`
	Date          time.Time             `json:"date"`
	Payments      []billPaymentResponse `json:"payments"`
}

type billPaymentResponse struct {
	MemberID string     `json:"member_id"`
	Paid     bool       `json:"paid"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`
}

func toBillResponse(bill *billsdomain.Bill) billResponse {
	payments := make([]billPaymentResponse, 0, len(bill.Payments))
	for _, payment := range bill.Payments {
		payments = append(payments, billPaymentResponse{
			MemberID: payment.MemberID,
			Paid:     payment.Paid,
			PaidAt:   payment.PaidAt,
		})
	}
	return billResponse{
		ID:            bill.ID,
		Name:          bill.Name,
		TotalAmount:   bill.TotalAmount,
		PerHeadAmount: bill.PerHeadAmount,
		Month:         bill.Month,
		Year:          bill.Year,
		Date:          bill.Date,
		Payments:      payments,
	}
}

func (h *Handlers) CreateBill(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req createBillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	date := time.Now().UTC()
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := parseDateRequired(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	bill, err := h.Bills.Create(r.Context(), billsdomain.CreateInput{
		MessID:    *admin.MessID,
		CreatedBy: admin.ID,
		Name:      req.Name,
		Total:     req.Total,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, billsdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_amount", "bill amount must be positive")
		case errors.Is(err, billsdomain.ErrEmptyRoster):
			h.log.BusinessError("bills.create: empty roster", err, "member_id", admin.ID)
			writeError(w, http.StatusConflict, "empty_roster", "mess has no members")
		default:
			h.log.InternalError("bills.create: create failed", err, "member_id", admin.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toBillResponse(bill))
}

func (h *Handlers) GetBill(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	bill, err := h.Bills.Get(r.Context(), *member.MessID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeBillError(w, err, member.ID)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponse(bill))
}

func (h *Handlers) ListBills(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	month, err := parseIntParam(r.URL.Query().Get("month"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}
	year, err := parseIntParam(r.URL.Query().Get("year"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid year")
		return
	}

	items, err := h.Bills.List(r.Context(), *member.MessID, billsdomain.ListFilter{Month: month, Year: year})
	if err != nil {
		h.log.InternalError("bills.list: list failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]billResponse, 0, len(items))
	for i := range items {
		result = append(result, toBillResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) UpdateBillAmount(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req updateBillAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	bill, err := h.Bills.UpdateAmount(r.Context(), *admin.MessID, chi.URLParam(r, "id"), admin.ID, req.Total)
	if err != nil {
		if errors.Is(err, billsdomain.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, "invalid_amount", "bill amount must be positive")
			return
		}
		h.writeBillError(w, err, admin.ID)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponse(bill))
}

func (h *Handlers) ToggleBillPayment(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	bill, err := h.Bills.TogglePayment(r.Context(), *admin.MessID, chi.URLParam(r, "id"), chi.URLParam(r, "member_id"), admin.ID)
	if err != nil {
		if errors.Is(err, billsdomain.ErrMemberNotOnBill) {
			writeError(w, http.StatusNotFound, "member_not_on_bill", "member not on this bill")
			return
		}
		h.writeBillError(w, err, admin.ID)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponse(bill))
}

func (h *Handlers) DeleteBill(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := h.Bills.Delete(r.Context(), *admin.MessID, chi.URLParam(r, "id")); err != nil {
		h.writeBillError(w, err, admin.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) BillsSummary(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	summary, err := h.Bills.Summary(r.Context(), *member.MessID, period.Month, period.Year)
	if err != nil {
		h.log.InternalError("bills.summary: summary failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) writeBillError(w http.ResponseWriter, err error, memberID string) {
	switch {
	case errors.Is(err, billsdomain.ErrBillNotFound), errors.Is(err, billsdomain.ErrAccessDenied):
		writeError(w, http.StatusNotFound, "bill_not_found", "bill not found")
	default:
		h.log.InternalError("bills: operation failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
