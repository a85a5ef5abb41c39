package handler

import (
	"errors"
	"net/http"

	notificationdomain "mess-manager-go/internal/domain/notification"
	"mess-manager-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type notificationsResponse struct {
	Items       []notificationdomain.Notification `json:"items"`
	UnreadCount int64                             `json:"unread_count"`
}

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	limit, err := parseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(r.URL.Query().Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	items, unread, err := h.Notifications.List(r.Context(), user.ID, notificationdomain.ListFilter{
		UnreadOnly: parseBoolParam(r.URL.Query().Get("unread")),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.log.InternalError("notifications.list: list failed", err, "member_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, notificationsResponse{Items: items, UnreadCount: unread})
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, notificationdomain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification_not_found", "notification not found")
			return
		}
		h.log.InternalError("notifications.read: mark failed", err, "member_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}

func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	count, err := h.Notifications.MarkAllRead(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("notifications.read_all: mark failed", err, "member_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"marked": count})
}
