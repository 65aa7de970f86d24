// Package orders persists finalized purchases in a single JSON document.
package orders

import (
	"errors"
	"time"

	"github.com/sonuudigital/storefront/internal/cart"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status provided")
	ErrMissingFields = errors.New("missing required order information")
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Address is the shipping contact block. Every field is required on order
// creation.
type Address struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a Address) complete() bool {
	return a.FirstName != "" && a.LastName != "" && a.Email != "" &&
		a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

type Order struct {
	ID            string      `json:"id"`
	Items         []cart.Item `json:"items"`
	Total         float64     `json:"total"`
	Shipping      Address     `json:"shipping"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     *time.Time  `json:"updatedAt,omitempty"`
}

// CreateOrderParams is the validated input for Create. Total is derived from
// the items, never taken from the caller.
type CreateOrderParams struct {
	Items         []cart.Item
	Shipping      Address
	PaymentMethod string
}
