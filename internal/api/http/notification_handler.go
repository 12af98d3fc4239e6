package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListCustomerNotifications handles GET /api/notification/customer/{customerId}.
func (h *NotificationHandler) ListCustomerNotifications(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]
	page := parseInt32(r.URL.Query().Get("page"), 1)
	pageSize := parseInt32(r.URL.Query().Get("page_size"), 20)

	notes, total, err := h.notifications.ListNotifications(r.Context(), customerID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: notes, Total: total, Page: page, PageSize: pageSize})
}

type markReadRequest struct {
	Read *bool `json:"read"`
}

// MarkRead handles PATCH /api/notification/{id}/read. Omitting the body marks
// the notification read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	read := true
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Read != nil {
		read = *req.Read
	}

	if err := h.notifications.MarkRead(r.Context(), id, read); err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Delete handles DELETE /api/notification/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.notifications.Delete(r.Context(), id); err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
