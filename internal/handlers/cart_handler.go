package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuudigital/storefront/internal/cart"
	"github.com/sonuudigital/storefront/internal/catalog"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/session"
	"github.com/sonuudigital/storefront/internal/web"
)

type CartHandler struct {
	logger   logs.Logger
	sessions SessionStore
	catalog  ProductCatalog
}

func NewCartHandler(logger logs.Logger, sessions SessionStore, productCatalog ProductCatalog) *CartHandler {
	return &CartHandler{
		logger:   logger,
		sessions: sessions,
		catalog:  productCatalog,
	}
}

// AddToCartRequest carries the product the storefront page displayed. Only
// the id is trusted; price and stock come from the catalog.
type AddToCartRequest struct {
	Product struct {
		ID string `json:"id"`
	} `json:"product"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

type RemoveFromCartRequest struct {
	ItemID        string `json:"itemId"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

type UpdateCartRequest struct {
	ItemID        string `json:"itemId"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

func (h *CartHandler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	data := h.sessions.Load(r)
	if data.Cart == nil {
		empty := cart.New()
		web.RespondWithJSON(w, h.logger, http.StatusOK, empty)
		return
	}
	web.RespondWithJSON(w, h.logger, http.StatusOK, data.Cart)
}

func (h *CartHandler) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	if !web.CheckContext(r.Context(), h.logger) {
		web.RespondWithError(w, h.logger, http.StatusRequestTimeout, requestCancelledMsg)
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid add to cart body", "error", err)
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}

	if req.Product.ID == "" || req.SelectedColor == "" || req.SelectedSize == "" {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, missingFieldsMsg)
		return
	}
	if req.Quantity <= 0 {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidQuantityMsg)
		return
	}

	product, err := h.catalog.GetByID(req.Product.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.logger.Warn("add to cart for unknown product", "product_id", req.Product.ID)
			web.RespondWithError(w, h.logger, http.StatusBadRequest, productNotFoundMsg)
			return
		}
		h.logger.Error("failed to resolve product", "error", err, "product_id", req.Product.ID)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	data := h.sessions.Load(r)
	current := cart.New()
	if data.Cart != nil {
		current = *data.Cart
	}

	item := cart.Item{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Images:        product.Images,
		SelectedColor: req.SelectedColor,
		SelectedSize:  req.SelectedSize,
	}

	updated, err := cart.Add(current, item, req.Quantity, product.Stock)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInsufficientStock):
			web.RespondWithError(w, h.logger, http.StatusBadRequest, insufficientStockMsg)
		case errors.Is(err, cart.ErrInvalidQuantity):
			web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidQuantityMsg)
		default:
			web.RespondWithError(w, h.logger, http.StatusBadRequest, missingFieldsMsg)
		}
		return
	}

	if err := h.saveCart(w, updated); err != nil {
		return
	}
	web.RespondWithJSON(w, h.logger, http.StatusOK, updated)
}

func (h *CartHandler) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	var req RemoveFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}
	if req.ItemID == "" {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, missingFieldsMsg)
		return
	}

	data := h.sessions.Load(r)
	if data.Cart == nil {
		web.RespondWithError(w, h.logger, http.StatusNotFound, cartNotFoundMsg)
		return
	}

	updated := cart.Remove(*data.Cart, cart.LineKey{
		ItemID:        req.ItemID,
		SelectedColor: req.SelectedColor,
		SelectedSize:  req.SelectedSize,
	})

	if err := h.saveCart(w, updated); err != nil {
		return
	}
	web.RespondWithJSON(w, h.logger, http.StatusOK, updated)
}

func (h *CartHandler) UpdateCartHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}
	if req.ItemID == "" {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, missingFieldsMsg)
		return
	}

	data := h.sessions.Load(r)
	if data.Cart == nil {
		web.RespondWithError(w, h.logger, http.StatusNotFound, cartNotFoundMsg)
		return
	}

	updated, err := cart.UpdateQuantity(*data.Cart, cart.LineKey{
		ItemID:        req.ItemID,
		SelectedColor: req.SelectedColor,
		SelectedSize:  req.SelectedSize,
	}, req.Quantity)
	if err != nil {
		web.RespondWithError(w, h.logger, http.StatusNotFound, itemNotFoundMsg)
		return
	}

	if err := h.saveCart(w, updated); err != nil {
		return
	}
	web.RespondWithJSON(w, h.logger, http.StatusOK, updated)
}

func (h *CartHandler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	empty := cart.New()
	if err := h.saveCart(w, empty); err != nil {
		return
	}
	web.RespondWithJSON(w, h.logger, http.StatusOK, empty)
}

func (h *CartHandler) saveCart(w http.ResponseWriter, c cart.Cart) error {
	if err := h.sessions.Save(w, session.Data{Cart: &c}); err != nil {
		h.logger.Error("failed to save session", "error", err)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return err
	}
	return nil
}
