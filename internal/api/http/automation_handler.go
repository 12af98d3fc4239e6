package http

import (
	"net/http"

	"rentdesk-backend/internal/jobs"
)

// AutomationHandler exposes the scheduled jobs as on-demand admin endpoints
// so operators can trigger a run without waiting for the cron tick.
type AutomationHandler struct {
	runner *jobs.Runner
}

func NewAutomationHandler(runner *jobs.Runner) *AutomationHandler {
	return &AutomationHandler{runner: runner}
}

type automationResponse struct {
	Job    string `json:"job"`
	Result string `json:"result"`
}

// RefreshNotifications handles POST /api/automation/refresh-notifications.
func (h *AutomationHandler) RefreshNotifications(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.RefreshNotifications(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, automationResponse{Job: "refresh_notifications", Result: "ok"})
}

// SendUpcomingReminders handles POST /api/automation/send-upcoming-reminders.
func (h *AutomationHandler) SendUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.SendUpcomingReminders(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, automationResponse{Job: "send_upcoming_reminders", Result: "ok"})
}

// SendOverdueReminders handles POST /api/automation/send-overdue-reminders.
func (h *AutomationHandler) SendOverdueReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.SendOverdueReminders(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, automationResponse{Job: "send_overdue_reminders", Result: "ok"})
}

// ApplyLateFees handles POST /api/automation/apply-late-fees.
func (h *AutomationHandler) ApplyLateFees(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.ApplyLateFees(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, automationResponse{Job: "apply_late_fees", Result: "ok"})
}
