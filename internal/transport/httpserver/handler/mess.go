package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	messdomain "mess-manager-go/internal/domain/mess"
	"mess-manager-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type createMessRequest struct {
	Name string `json:"name"`
}

type joinMessRequest struct {
	Code string `json:"code"`
}

type messResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type memberResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	TotalDeposit float64   `json:"total_deposit"`
	JoinedAt     time.Time `json:"joined_at"`
}

func toMessResponse(m *messdomain.Mess) messResponse {
	return messResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

func toMemberResponse(member messdomain.Member) memberResponse {
	return memberResponse{
		ID:           member.ID,
		Name:         member.Name,
		Email:        member.Email,
		Role:         member.Role,
		TotalDeposit: member.TotalDeposit,
		JoinedAt:     member.CreatedAt,
	}
}

func (h *Handlers) GetMessMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Mess.GetMessByMember(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, messdomain.ErrNotInMess), errors.Is(err, messdomain.ErrMessNotFound):
			writeError(w, http.StatusNotFound, "mess_not_found", "mess not found")
		case errors.Is(err, messdomain.ErrMemberNotFound):
			writeError(w, http.StatusUnauthorized, "member_not_found", "member not found")
		default:
			h.log.InternalError("mess.get_me: get mess failed", err, "member_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMessResponse(result))
}

func (h *Handlers) CreateMess(w http.ResponseWriter, r *http.Request) {
	var req createMessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Mess.CreateMess(r.Context(), user.ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, messdomain.ErrAlreadyInMess):
			h.log.BusinessError("mess.create: member already in mess", err, "member_id", user.ID)
			writeError(w, http.StatusConflict, "already_in_mess", "already in a mess")
		default:
			h.log.InternalError("mess.create: create mess failed", err, "member_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toMessResponse(result))
}

func (h *Handlers) JoinMess(w http.ResponseWriter, r *http.Request) {
	var req joinMessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Mess.JoinMess(r.Context(), user.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, messdomain.ErrMessCodeNotFound):
			h.log.BusinessError("mess.join: code not found", err, "member_id", user.ID, "code", req.Code)
			writeError(w, http.StatusNotFound, "mess_code_not_found", "mess code not found")
		case errors.Is(err, messdomain.ErrAlreadyInMess):
			h.log.BusinessError("mess.join: member already in mess", err, "member_id", user.ID)
			writeError(w, http.StatusConflict, "already_in_mess", "already in a mess")
		default:
			h.log.InternalError("mess.join: join mess failed", err, "member_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMessResponse(result))
}

func (h *Handlers) LeaveMess(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Mess.LeaveMess(r.Context(), user.ID); err != nil {
		switch {
		case errors.Is(err, messdomain.ErrNotInMess):
			writeError(w, http.StatusConflict, "not_in_mess", "not in a mess")
		case errors.Is(err, messdomain.ErrMemberNotFound):
			writeError(w, http.StatusUnauthorized, "member_not_found", "member not found")
		default:
			h.log.InternalError("mess.leave: leave mess failed", err, "member_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"left": true})
}

func (h *Handlers) ListMessMembers(w http.ResponseWriter, r *http.Request) {
	member, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	members, err := h.Mess.ListMembers(r.Context(), member.ID)
	if err != nil {
		h.log.InternalError("mess.members: list members failed", err, "member_id", member.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]memberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) RemoveMessMember(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	targetID := chi.URLParam(r, "member_id")
	if err := h.Mess.RemoveMember(r.Context(), admin.ID, targetID); err != nil {
		switch {
		case errors.Is(err, messdomain.ErrCannotRemoveSelf):
			writeError(w, http.StatusBadRequest, "cannot_remove_self", "cannot remove yourself")
		case errors.Is(err, messdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, messdomain.ErrAdminRequired):
			writeError(w, http.StatusForbidden, "admin_required", "admin access required")
		default:
			h.log.InternalError("mess.remove_member: remove failed", err, "member_id", admin.ID, "target_id", targetID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (h *Handlers) PromoteMessMember(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	targetID := chi.URLParam(r, "member_id")
	if err := h.Mess.PromoteMember(r.Context(), admin.ID, targetID); err != nil {
		switch {
		case errors.Is(err, messdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, messdomain.ErrAdminRequired):
			writeError(w, http.StatusForbidden, "admin_required", "admin access required")
		default:
			h.log.InternalError("mess.promote: promote failed", err, "member_id", admin.ID, "target_id", targetID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"promoted": true})
}

func (h *Handlers) DemoteMessMember(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	targetID := chi.URLParam(r, "member_id")
	if err := h.Mess.DemoteMember(r.Context(), admin.ID, targetID); err != nil {
		switch {
		case errors.Is(err, messdomain.ErrCannotDemoteSelf):
			writeError(w, http.StatusBadRequest, "cannot_demote_self", "cannot demote yourself")
		case errors.Is(err, messdomain.ErrMemberNotAdmin):
			writeError(w, http.StatusBadRequest, "member_not_admin", "member is not an admin")
		case errors.Is(err, messdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, messdomain.ErrAdminRequired):
			writeError(w, http.StatusForbidden, "admin_required", "admin access required")
		default:
			h.log.InternalError("mess.demote: demote failed", err, "member_id", admin.ID, "target_id", targetID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"demoted": true})
}
