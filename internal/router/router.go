package router

import (
	"net/http"

	"github.com/sonuudigital/storefront/internal/handlers"
)

type adminMiddleware func(http.Handler) http.Handler

// New builds the storefront route table. Wrong methods on any matched path
// get the stdlib's 405 with an Allow header.
func New(
	cartHandler *handlers.CartHandler,
	orderHandler *handlers.OrderHandler,
	productHandler *handlers.ProductHandler,
	authHandler *handlers.AuthHandler,
	metricsHandler *handlers.MetricsHandler,
	adminMw adminMiddleware,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/cart", cartHandler.GetCartHandler)
	mux.HandleFunc("POST /api/cart/add", cartHandler.AddToCartHandler)
	mux.HandleFunc("POST /api/cart/remove", cartHandler.RemoveFromCartHandler)
	mux.HandleFunc("POST /api/cart/update", cartHandler.UpdateCartHandler)
	mux.HandleFunc("POST /api/cart/clear", cartHandler.ClearCartHandler)

	mux.HandleFunc("GET /api/orders", orderHandler.ListOrdersHandler)
	mux.HandleFunc("POST /api/orders/create", orderHandler.CreateOrderHandler)
	mux.HandleFunc("GET /api/orders/{orderId}", orderHandler.GetOrderHandler)
	mux.HandleFunc("PUT /api/orders/{orderId}", orderHandler.UpdateOrderStatusHandler)

	mux.HandleFunc("GET /api/products", productHandler.ListProductsHandler)
	mux.HandleFunc("GET /api/products/{productId}", productHandler.GetProductHandler)
	mux.Handle("PUT /api/products/{productId}", adminMw(http.HandlerFunc(productHandler.UpdateProductHandler)))

	mux.HandleFunc("POST /api/auth/login", authHandler.LoginHandler)
	mux.Handle("GET /api/admin/metrics", adminMw(http.HandlerFunc(metricsHandler.GetMetricsHandler)))

	return mux
}
