package handler

import "net/http"

func (h *Handlers) IntegrityVerify(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	report, err := h.Integrity.Verify(r.Context(), *admin.MessID)
	if err != nil {
		h.log.InternalError("integrity.verify: verify failed", err, "member_id", admin.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) IntegrityFix(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	result, err := h.Integrity.Fix(r.Context(), *admin.MessID)
	if err != nil {
		h.log.InternalError("integrity.fix: fix failed", err, "member_id", admin.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
