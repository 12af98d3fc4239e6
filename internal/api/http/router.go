// Package http exposes the REST API: rental order lifecycle, payments,
// notifications, and on-demand automation.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/jobs"
	"rentdesk-backend/internal/middleware"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Orders        service.OrderService
	Payments      service.PaymentService
	Notifications service.NotificationService
	Runner        *jobs.Runner
	Tokens        security.TokenManager
	Config        *config.Config
}

// NewRouter builds the full HTTP handler chain: panic recovery, request
// logging, metrics, CORS, then the routed handlers.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	auth := middleware.NewAuthMiddleware(deps.Tokens)
	staffOnly := auth.RequireRole(security.RoleAdmin, security.RoleStaff)
	adminOnly := auth.RequireRole(security.RoleAdmin)

	orderHandler := NewOrderHandler(deps.Orders)
	paymentHandler := NewPaymentHandler(deps.Payments)
	notificationHandler := NewNotificationHandler(deps.Notifications)
	automationHandler := NewAutomationHandler(deps.Runner)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Metrics)

	rental := api.PathPrefix("/rental").Subrouter()
	rental.Handle("", auth.Authenticate(http.HandlerFunc(orderHandler.CreateQuotation))).Methods(http.MethodPost)
	rental.Handle("", auth.Authenticate(http.HandlerFunc(orderHandler.ListOrders))).Methods(http.MethodGet)
	rental.Handle("/{id}", auth.Authenticate(http.HandlerFunc(orderHandler.GetOrder))).Methods(http.MethodGet)
	rental.Handle("/{id}", staffOnly(http.HandlerFunc(orderHandler.DeleteOrder))).Methods(http.MethodDelete)
	rental.Handle("/{id}/status", staffOnly(http.HandlerFunc(orderHandler.Transition))).Methods(http.MethodPatch)

	payment := api.PathPrefix("/payment").Subrouter()
	payment.Use(auth.Authenticate)
	payment.HandleFunc("", paymentHandler.RecordPayment).Methods(http.MethodPost)
	payment.HandleFunc("/order/{orderId}", paymentHandler.ListOrderPayments).Methods(http.MethodGet)
	payment.HandleFunc("/order/{orderId}/balance", paymentHandler.OrderBalance).Methods(http.MethodGet)
	payment.HandleFunc("/customer/{customerId}", paymentHandler.ListCustomerPayments).Methods(http.MethodGet)

	notification := api.PathPrefix("/notification").Subrouter()
	notification.Use(auth.Authenticate)
	notification.HandleFunc("/customer/{customerId}", notificationHandler.ListCustomerNotifications).Methods(http.MethodGet)
	notification.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods(http.MethodPatch)
	notification.HandleFunc("/{id}", notificationHandler.Delete).Methods(http.MethodDelete)

	automation := api.PathPrefix("/automation").Subrouter()
	automation.Use(adminOnly)
	automation.HandleFunc("/apply-late-fees", automationHandler.ApplyLateFees).Methods(http.MethodPost)
	automation.HandleFunc("/refresh-notifications", automationHandler.RefreshNotifications).Methods(http.MethodPost)
	automation.HandleFunc("/send-upcoming-reminders", automationHandler.SendUpcomingReminders).Methods(http.MethodPost)
	automation.HandleFunc("/send-overdue-reminders", automationHandler.SendOverdueReminders).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	var handler http.Handler = r
	handler = c.Handler(handler)
	handler = middleware.RequestLogging(handler)
	handler = middleware.PanicRecovery(handler)
	return handler
}
