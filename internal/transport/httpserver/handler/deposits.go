package handler

import (
	"errors"
	"net/http"

	ledgerdomain "mess-manager-go/internal/domain/ledger"
)

type depositEntryRequest struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

type addDepositsRequest struct {
	Entries []depositEntryRequest `json:"entries"`
}

func (h *Handlers) AddDeposits(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req addDepositsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := ledgerdomain.AddDepositsInput{
		MessID:     *admin.MessID,
		RecordedBy: admin.ID,
	}
	for _, entry := range req.Entries {
		input.Entries = append(input.Entries, ledgerdomain.DepositInput{
			MemberID: entry.MemberID,
			Amount:   entry.Amount,
		})
	}

	if err := h.Ledger.AddDeposits(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, ledgerdomain.ErrEmptyBatch):
			writeError(w, http.StatusBadRequest, "invalid_request", "entries are required")
		case errors.Is(err, ledgerdomain.ErrNegativeAmount), errors.Is(err, ledgerdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_amount", "deposit amounts must be finite and non-negative")
		case errors.Is(err, ledgerdomain.ErrMemberNotInMess):
			h.log.BusinessError("deposits.add: member outside mess", err, "member_id", admin.ID)
			writeError(w, http.StatusBadRequest, "member_not_in_mess", "member does not belong to this mess")
		default:
			h.log.InternalError("deposits.add: add failed", err, "member_id", admin.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"saved": true})
}
