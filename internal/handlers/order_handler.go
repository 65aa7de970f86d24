package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuudigital/storefront/internal/cart"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/orders"
	"github.com/sonuudigital/storefront/internal/web"
)

type OrderHandler struct {
	logger    logs.Logger
	repo      OrderRepository
	publisher OrderCreatedPublisher
}

func NewOrderHandler(logger logs.Logger, repo OrderRepository, publisher OrderCreatedPublisher) *OrderHandler {
	return &OrderHandler{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

type CreateOrderRequest struct {
	Shipping      orders.Address `json:"shipping"`
	Items         []cart.Item    `json:"items"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"paymentMethod"`
}

type CreateOrderResponse struct {
	Message string       `json:"message"`
	Order   orders.Order `json:"order"`
}

type UpdateOrderStatusRequest struct {
	Status orders.Status `json:"status"`
}

func (h *OrderHandler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, http.StatusRequestTimeout, requestCancelledMsg)
		return
	}

	all, err := h.repo.List(ctx)
	if err != nil {
		h.logger.Error("failed to retrieve orders", "error", err)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, all)
}

func (h *OrderHandler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, http.StatusRequestTimeout, requestCancelledMsg)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid create order body", "error", err)
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}

	order, err := h.repo.Create(ctx, orders.CreateOrderParams{
		Items:         req.Items,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, orders.ErrMissingFields) {
			web.RespondWithError(w, h.logger, http.StatusBadRequest, missingOrderDataMsg)
			return
		}
		h.logger.Error("failed to process order", "error", err)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	// The event is best-effort: a broker outage must not undo a stored order.
	if h.publisher != nil {
		if err := h.publisher.PublishOrderCreated(ctx, order); err != nil {
			h.logger.Error("failed to publish order created event", "error", err, "order_id", order.ID)
		}
	}

	web.RespondWithJSON(w, h.logger, http.StatusCreated, CreateOrderResponse{
		Message: orderCreatedMsg,
		Order:   order,
	})
}

func (h *OrderHandler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, http.StatusRequestTimeout, requestCancelledMsg)
		return
	}

	orderID := r.PathValue("orderId")
	order, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			web.RespondWithError(w, h.logger, http.StatusNotFound, orderNotFoundMsg)
			return
		}
		h.logger.Error("failed to get order", "error", err, "order_id", orderID)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, http.StatusRequestTimeout, requestCancelledMsg)
		return
	}

	orderID := r.PathValue("orderId")

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}

	order, err := h.repo.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidStatus):
			web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidStatusMsg)
		case errors.Is(err, orders.ErrOrderNotFound):
			web.RespondWithError(w, h.logger, http.StatusNotFound, orderNotFoundMsg)
		default:
			h.logger.Error("failed to update order", "error", err, "order_id", orderID)
			web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		}
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, order)
}
