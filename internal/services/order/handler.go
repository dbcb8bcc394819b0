package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"warung-pos/internal/database"
	"warung-pos/internal/logger"
	"warung-pos/internal/menu"
	"warung-pos/internal/order"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes builds the router for the order service
func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/orders", h.CreateOrder)
	r.Get("/menu", h.ListMenu)
	r.Get("/health", h.HealthCheck)

	return r
}

// CreateOrder handles POST /orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	h.logger.Debug("order_received", "Received order creation request", requestID, map[string]interface{}{
		"content_length": r.ContentLength,
		"remote_addr":    r.RemoteAddr,
	})

	var req CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.CreateOrder(ctx, &req, requestID)
	if err != nil {
		status, message := classifyError(err)
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_id": req.CustomerID,
		})
		h.writeErrorResponse(w, status, message, requestID)
		return
	}

	h.logger.Debug("order_created", "Order created successfully", requestID, map[string]interface{}{
		"order_number": response.OrderNumber,
		"total":        response.Total,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// ListMenu handles GET /menu requests
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		h.logger.Error("menu_listing_failed", "Failed to list menu", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	type menuEntry struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		BasePrice   int64  `json:"base_price"`
		Description string `json:"description,omitempty"`
	}

	entries := make([]menuEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, menuEntry{
			ID:          item.ID,
			Name:        item.Name,
			Category:    string(item.Category),
			BasePrice:   item.BasePrice,
			Description: item.Description,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// classifyError maps domain errors to HTTP statuses. Validation and
// precondition failures are the caller's to fix; everything else is ours.
func classifyError(err error) (int, string) {
	var validationErr *menu.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	if errors.Is(err, order.ErrEmptyOrder) || errors.Is(err, order.ErrInvalidQuantity) {
		return http.StatusBadRequest, err.Error()
	}

	if errors.Is(err, database.ErrNotFound) {
		return http.StatusNotFound, err.Error()
	}

	return http.StatusInternalServerError, "Internal server error"
}

// writeErrorResponse writes a JSON error envelope
func (h *Handler) writeErrorResponse(w http.ResponseWriter, status int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":      message,
		"request_id": requestID,
	})
}
