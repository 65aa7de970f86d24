package handlers

import (
	"net/http"

	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/web"
)

const lowStockThreshold = 10

type MetricsHandler struct {
	logger  logs.Logger
	catalog ProductCatalog
}

func NewMetricsHandler(logger logs.Logger, productCatalog ProductCatalog) *MetricsHandler {
	return &MetricsHandler{
		logger:  logger,
		catalog: productCatalog,
	}
}

type KPIs struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalInventory int     `json:"totalInventory"`
	AveragePrice   float64 `json:"averagePrice"`
}

type StockEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type MetricsResponse struct {
	KPIs             KPIs         `json:"kpis"`
	StockData        []StockEntry `json:"stockData"`
	LowStockProducts []StockEntry `json:"lowStockProducts"`
}

// GetMetricsHandler aggregates the dashboard KPIs over the whole catalog.
func (h *MetricsHandler) GetMetricsHandler(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.List()

	metrics := MetricsResponse{
		StockData:        make([]StockEntry, 0, len(products)),
		LowStockProducts: []StockEntry{},
	}

	var priceSum float64
	for _, p := range products {
		entry := StockEntry{ID: p.ID, Name: p.Name, Stock: p.Stock}
		metrics.StockData = append(metrics.StockData, entry)
		metrics.KPIs.TotalInventory += p.Stock
		priceSum += p.Price

		if p.Stock > 0 && p.Stock < lowStockThreshold {
			metrics.LowStockProducts = append(metrics.LowStockProducts, entry)
		}
	}

	metrics.KPIs.TotalProducts = len(products)
	if len(products) > 0 {
		metrics.KPIs.AveragePrice = priceSum / float64(len(products))
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, metrics)
}
