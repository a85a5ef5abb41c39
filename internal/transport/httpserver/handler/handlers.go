package handler

import (
	"errors"
	"net/http"

	billsdomain "mess-manager-go/internal/domain/bills"
	integritydomain "mess-manager-go/internal/domain/integrity"
	ledgerdomain "mess-manager-go/internal/domain/ledger"
	messdomain "mess-manager-go/internal/domain/mess"
	notificationdomain "mess-manager-go/internal/domain/notification"
	reportdomain "mess-manager-go/internal/domain/report"
	settlementdomain "mess-manager-go/internal/domain/settlement"
	"mess-manager-go/internal/transport/httpserver/middleware"
	"mess-manager-go/pkg/logger"
)

type Handlers struct {
	Mess          *messdomain.Service
	Ledger        *ledgerdomain.Service
	Reports       *reportdomain.Service
	Integrity     *integritydomain.Service
	Bills         *billsdomain.Service
	Settlement    *settlementdomain.Service
	Notifications *notificationdomain.Service
	log           logger.Logger
}

func New(
	mess *messdomain.Service,
	ledger *ledgerdomain.Service,
	reports *reportdomain.Service,
	integrity *integritydomain.Service,
	bills *billsdomain.Service,
	settlement *settlementdomain.Service,
	notifications *notificationdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Mess:          mess,
		Ledger:        ledger,
		Reports:       reports,
		Integrity:     integrity,
		Bills:         bills,
		Settlement:    settlement,
		Notifications: notifications,
		log:           log,
	}
}

// requireMember resolves the authenticated caller to a member attached to a
// mess, writing the error response itself on failure.
func (h *Handlers) requireMember(w http.ResponseWriter, r *http.Request) (*messdomain.Member, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return nil, false
	}

	member, err := h.Mess.RequireMember(r.Context(), user.ID)
	if err != nil {
		h.writeAuthzError(w, err, user.ID)
		return nil, false
	}
	return member, true
}

func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) (*messdomain.Member, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return nil, false
	}

	member, err := h.Mess.RequireAdmin(r.Context(), user.ID)
	if err != nil {
		h.writeAuthzError(w, err, user.ID)
		return nil, false
	}
	return member, true
}

func (h *Handlers) writeAuthzError(w http.ResponseWriter, err error, memberID string) {
	switch {
	case errors.Is(err, messdomain.ErrMemberNotFound):
		writeError(w, http.StatusUnauthorized, "member_not_found", "member not found")
	case errors.Is(err, messdomain.ErrNotInMess):
		writeError(w, http.StatusForbidden, "not_in_mess", "not in a mess")
	case errors.Is(err, messdomain.ErrAdminRequired):
		writeError(w, http.StatusForbidden, "admin_required", "admin access required")
	default:
		h.log.InternalError("authz: member lookup failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
