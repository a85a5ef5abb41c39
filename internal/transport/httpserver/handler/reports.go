package handler

import "net/http"

func (h *Handlers) PeriodReport(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	report, err := h.Reports.PeriodReport(r.Context(), *member.MessID, period)
	if err != nil {
		h.log.InternalError("reports.period: report failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
