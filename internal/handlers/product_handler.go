package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuudigital/storefront/internal/catalog"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/web"
)

type ProductHandler struct {
	logger  logs.Logger
	catalog ProductCatalog
}

func NewProductHandler(logger logs.Logger, productCatalog ProductCatalog) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		catalog: productCatalog,
	}
}

func (h *ProductHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	web.RespondWithJSON(w, h.logger, http.StatusOK, h.catalog.List())
}

func (h *ProductHandler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")

	product, err := h.catalog.GetByID(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			web.RespondWithError(w, h.logger, http.StatusNotFound, productNotFoundMsg)
			return
		}
		h.logger.Error("failed to get product", "error", err, "product_id", productID)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, product)
}

// UpdateProductHandler is the admin single-product edit. The path id wins
// over whatever id the body carries.
func (h *ProductHandler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !web.CheckContext(r.Context(), h.logger) {
		web.RespondWithError(w, h.logger, http.StatusRequestTimeout, requestCancelledMsg)
		return
	}

	productID := r.PathValue("productId")

	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, invalidRequestBodyMsg)
		return
	}
	product.ID = productID

	if product.Name == "" || product.Price < 0 || product.Stock < 0 {
		web.RespondWithError(w, h.logger, http.StatusBadRequest, missingFieldsMsg)
		return
	}

	updated, err := h.catalog.Update(product)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			web.RespondWithError(w, h.logger, http.StatusNotFound, productNotFoundMsg)
			return
		}
		h.logger.Error("failed to update product", "error", err, "product_id", productID)
		web.RespondWithError(w, h.logger, http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, updated)
}
