// Package cart implements the per-session shopping cart as pure value
// operations. Persisting the returned cart (into the session cookie) is the
// caller's responsibility.
package cart

import "errors"

var (
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrLineNotFound      = errors.New("item not found in cart")
)

// Item is one purchase line. Two lines are the same line only when id,
// selected color and selected size all match.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Images        []string `json:"images"`
	Quantity      int      `json:"quantity"`
	SelectedColor string   `json:"selectedColor"`
	SelectedSize  string   `json:"selectedSize"`
}

type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// LineKey addresses lines in a cart. Empty SelectedColor or SelectedSize act
// as wildcards, so a key holding only an id addresses every variant of that
// product.
type LineKey struct {
	ItemID        string
	SelectedColor string
	SelectedSize  string
}

func (k LineKey) matches(it Item) bool {
	if it.ID != k.ItemID {
		return false
	}
	if k.SelectedColor != "" && it.SelectedColor != k.SelectedColor {
		return false
	}
	if k.SelectedSize != "" && it.SelectedSize != k.SelectedSize {
		return false
	}
	return true
}

// New returns the empty cart every session starts from.
func New() Cart {
	return Cart{Items: []Item{}, Total: 0}
}

// Add merges quantity units of item into the cart. stock is the catalog's
// available stock for the product; the merged line quantity may not exceed it.
func Add(c Cart, item Item, quantity, stock int) (Cart, error) {
	if quantity <= 0 {
		return c, ErrInvalidQuantity
	}
	if item.ID == "" || item.Name == "" || item.SelectedColor == "" || item.SelectedSize == "" {
		return c, ErrMissingFields
	}

	existing := 0
	for _, it := range c.Items {
		if it.ID == item.ID && it.SelectedColor == item.SelectedColor && it.SelectedSize == item.SelectedSize {
			existing = it.Quantity
			break
		}
	}
	if stock < existing+quantity {
		return c, ErrInsufficientStock
	}

	items := cloneItems(c.Items)
	merged := false
	for i, it := range items {
		if it.ID == item.ID && it.SelectedColor == item.SelectedColor && it.SelectedSize == item.SelectedSize {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		items = append(items, item)
	}

	return recalculated(items), nil
}

// Remove drops every line the key addresses. Removing an absent line is a
// no-op, not an error.
func Remove(c Cart, key LineKey) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if !key.matches(it) {
			items = append(items, it)
		}
	}
	return recalculated(items)
}

// UpdateQuantity sets the addressed line's quantity. A quantity of zero or
// less removes the line entirely.
func UpdateQuantity(c Cart, key LineKey, quantity int) (Cart, error) {
	found := false
	for _, it := range c.Items {
		if key.matches(it) {
			found = true
			break
		}
	}
	if !found {
		return c, ErrLineNotFound
	}

	if quantity <= 0 {
		return Remove(c, key), nil
	}

	items := cloneItems(c.Items)
	for i, it := range items {
		if key.matches(it) {
			items[i].Quantity = quantity
		}
	}
	return recalculated(items), nil
}

// Clear resets the cart regardless of prior state.
func Clear(Cart) Cart {
	return New()
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func recalculated(items []Item) Cart {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return Cart{Items: items, Total: total}
}
