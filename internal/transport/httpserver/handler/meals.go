package handler

import (
	"errors"
	"net/http"

	ledgerdomain "mess-manager-go/internal/domain/ledger"
)

type mealEntryRequest struct {
	MemberID string  `json:"member_id"`
	Lunch    float64 `json:"lunch"`
	Dinner   float64 `json:"dinner"`
}

type submitMealsRequest struct {
	Date  string             `json:"date"`
	Meals []mealEntryRequest `json:"meals"`
}

func (h *Handlers) SubmitMeals(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req submitMealsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	input := ledgerdomain.SubmitMealsInput{
		MessID:      *admin.MessID,
		SubmittedBy: admin.ID,
		Date:        date,
	}
	for _, meal := range req.Meals {
		input.Meals = append(input.Meals, ledgerdomain.MemberMealInput{
			MemberID: meal.MemberID,
			Lunch:    meal.Lunch,
			Dinner:   meal.Dinner,
		})
	}

	if err := h.Ledger.SubmitMeals(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, ledgerdomain.ErrEmptyBatch):
			writeError(w, http.StatusBadRequest, "invalid_request", "meals are required")
		case errors.Is(err, ledgerdomain.ErrNegativeUnits), errors.Is(err, ledgerdomain.ErrInvalidUnits):
			writeError(w, http.StatusBadRequest, "invalid_units", "meal units must be finite and non-negative")
		case errors.Is(err, ledgerdomain.ErrMemberNotInMess):
			h.log.BusinessError("meals.submit: member outside mess", err, "member_id", admin.ID)
			writeError(w, http.StatusBadRequest, "member_not_in_mess", "member does not belong to this mess")
		default:
			h.log.InternalError("meals.submit: submit failed", err, "member_id", admin.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *Handlers) MealsForDate(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	date, err := parseDateRequired(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	meals, err := h.Ledger.MealsForDate(r.Context(), *member.MessID, date)
	if err != nil {
		h.log.InternalError("meals.by_date: list failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, meals)
}

func (h *Handlers) MealsSummary(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	summary, err := h.Ledger.MonthSummary(r.Context(), *member.MessID, period)
	if err != nil {
		h.log.InternalError("meals.summary: summary failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) MealsStatistics(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	stats, err := h.Ledger.MemberStatistics(r.Context(), member.ID, *member.MessID, period)
	if err != nil {
		h.log.InternalError("meals.statistics: statistics failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
