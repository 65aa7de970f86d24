package handlers

import (
	"context"
	"net/http"

	"github.com/sonuudigital/storefront/internal/catalog"
	"github.com/sonuudigital/storefront/internal/orders"
	"github.com/sonuudigital/storefront/internal/session"
)

const (
	invalidRequestBodyMsg  = "Invalid request body."
	internalServerErrorMsg = "An internal server error occurred."
	requestCancelledMsg    = "Request cancelled."

	missingFieldsMsg      = "Missing required fields."
	invalidQuantityMsg    = "Invalid quantity."
	insufficientStockMsg  = "Not enough stock available."
	cartNotFoundMsg       = "Cart not found"
	itemNotFoundMsg       = "Item not found in cart"
	productNotFoundMsg    = "Product not found"
	orderNotFoundMsg      = "Order not found."
	missingOrderDataMsg   = "Missing required order information."
	invalidStatusMsg      = "Invalid status provided."
	orderCreatedMsg       = "Order created successfully!"
	invalidCredentialsMsg = "Invalid email or password."
)

// SessionStore resolves and persists the per-browser session carrying the
// cart. The handle is resolved once per request and never shared.
type SessionStore interface {
	Load(r *http.Request) session.Data
	Save(w http.ResponseWriter, data session.Data) error
}

// ProductCatalog is the read/write surface of the product catalog. Reads
// back the cart's stock checks; Update serves the admin product edit.
type ProductCatalog interface {
	List() []catalog.Product
	GetByID(id string) (catalog.Product, error)
	Update(p catalog.Product) (catalog.Product, error)
}

type OrderRepository interface {
	Create(ctx context.Context, params orders.CreateOrderParams) (orders.Order, error)
	List(ctx context.Context) ([]orders.Order, error)
	GetByID(ctx context.Context, id string) (orders.Order, error)
	UpdateStatus(ctx context.Context, id string, status orders.Status) (orders.Order, error)
}

// OrderCreatedPublisher fans out created orders to interested consumers. A
// nil publisher disables eventing.
type OrderCreatedPublisher interface {
	PublishOrderCreated(ctx context.Context, order orders.Order) error
}
