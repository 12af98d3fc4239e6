package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type recordPaymentRequest struct {
	OrderID       string `json:"order_id"`
	AmountCents   int64  `json:"amount_cents"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

// RecordPayment handles POST /api/payment.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.OrderID == "" {
		respondBadRequest(w, "order_id is required")
		return
	}
	if req.AmountCents <= 0 {
		respondBadRequest(w, "amount_cents must be positive")
		return
	}

	payment, err := h.payments.RecordPayment(r.Context(), req.OrderID, req.AmountCents, req.Method, req.TransactionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// ListOrderPayments handles GET /api/payment/order/{orderId}.
func (h *PaymentHandler) ListOrderPayments(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	payments, err := h.payments.ListOrderPayments(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// ListCustomerPayments handles GET /api/payment/customer/{customerId}.
func (h *PaymentHandler) ListCustomerPayments(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]
	page := parseInt32(r.URL.Query().Get("page"), 1)
	pageSize := parseInt32(r.URL.Query().Get("page_size"), 20)

	payments, total, err := h.payments.ListCustomerPayments(r.Context(), customerID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: payments, Total: total, Page: page, PageSize: pageSize})
}

// OrderBalance handles GET /api/payment/order/{orderId}/balance.
func (h *PaymentHandler) OrderBalance(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	summary, err := h.payments.OrderBalance(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
