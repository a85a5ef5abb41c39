package handler

import (
	"errors"
	"net/http"

	settlementdomain "mess-manager-go/internal/domain/settlement"
)

func (h *Handlers) RunSettlement(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	outcome, err := h.Settlement.SettlePeriod(r.Context(), *admin.MessID, period)
	if err != nil {
		switch {
		case errors.Is(err, settlementdomain.ErrPeriodOpen):
			h.log.BusinessError("settlement.run: period still open", err, "member_id", admin.ID)
			writeError(w, http.StatusConflict, "period_open", "period has not ended yet")
		default:
			h.log.InternalError("settlement.run: settle failed", err, "member_id", admin.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
