package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/metrics"
	"rentdesk-backend/internal/middleware"
	"rentdesk-backend/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	CustomerID    string            `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Products      []domain.LineItem `json:"products"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
}

// CreateQuotation handles POST /api/rental.
func (h *OrderHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.CustomerID == "" {
		respondBadRequest(w, "customer_id is required")
		return
	}
	if len(req.Products) == 0 {
		respondBadRequest(w, "at least one product is required")
		return
	}

	order, err := h.orders.CreateQuotation(r.Context(), req.CustomerID, req.CustomerName, req.CustomerEmail,
		req.Products, req.StartDate, req.EndDate)
	if err != nil {
		if domain.IsMalformedOrder(err) {
			respondBadRequest(w, err.Error())
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

type orderDetailResponse struct {
	Order   *domain.Order         `json:"order"`
	History []domain.OrderHistory `json:"history"`
	Next    []domain.OrderStatus  `json:"next_legal_states"`
}

// GetOrder handles GET /api/rental/{id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	order, history, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderDetailResponse{
		Order:   order,
		History: history,
		Next:    domain.NextLegalStates(order.Status),
	})
}

// ListOrders handles GET /api/rental with optional status, customer_id, page
// and page_size query parameters.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	customerID := r.URL.Query().Get("customer_id")
	page := parseInt32(r.URL.Query().Get("page"), 1)
	pageSize := parseInt32(r.URL.Query().Get("page_size"), 20)

	var (
		orders []domain.Order
		total  int32
		err    error
	)
	if customerID != "" {
		orders, total, err = h.orders.ListCustomerOrders(r.Context(), customerID, status, page, pageSize)
	} else {
		orders, total, err = h.orders.ListOrders(r.Context(), status, page, pageSize)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: orders, Total: total, Page: page, PageSize: pageSize})
}

type transitionRequest struct {
	Status string `json:"status"`
}

// Transition handles PATCH /api/rental/{id}/status.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	changedBy, _ := middleware.GetUserIDFromContext(r.Context())
	order, err := h.orders.Transition(r.Context(), id, target, changedBy)
	if err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues(string(target), "rejected").Inc()
		respondError(w, err)
		return
	}
	metrics.OrderTransitionsTotal.WithLabelValues(string(target), "applied").Inc()
	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/rental/{id}.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
