package cart_test

import (
	"testing"

	"github.com/sonuudigital/storefront/internal/cart"
	"github.com/stretchr/testify/assert"
)

const (
	testItemID = "p1"
	sageGreen  = "Sage Green"
	sizeMedium = "M"
	sizeLarge  = "L"
)

func testItem() cart.Item {
	return cart.Item{
		ID:            testItemID,
		Name:          "Linen Lounge Set",
		Price:         120.0,
		Images:        []string{"/images/products/sage-lounge-1.jpg"},
		SelectedColor: sageGreen,
		SelectedSize:  sizeMedium,
	}
}

func assertTotalInvariant(t *testing.T, c cart.Cart) {
	t.Helper()
	var want float64
	for _, it := range c.Items {
		want += it.Price * float64(it.Quantity)
	}
	assert.Equal(t, want, c.Total)
}

func TestAdd(t *testing.T) {
	t.Run("New line", testAddNewLine)
	t.Run("Merges same triple", testAddMergesSameTriple)
	t.Run("Different size is a new line", testAddDifferentSizeNewLine)
	t.Run("Invalid quantity", testAddInvalidQuantity)
	t.Run("Missing fields", testAddMissingFields)
	t.Run("Insufficient stock", testAddInsufficientStock)
	t.Run("Insufficient stock counts existing line", testAddStockCountsExistingLine)
	t.Run("Does not mutate input", testAddDoesNotMutateInput)
}

func testAddNewLine(t *testing.T) {
	c, err := cart.Add(cart.New(), testItem(), 2, 10)
	assert.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 240.0, c.Total)
	assertTotalInvariant(t, c)
}

func testAddMergesSameTriple(t *testing.T) {
	c, err := cart.Add(cart.New(), testItem(), 1, 10)
	assert.NoError(t, err)
	c, err = cart.Add(c, testItem(), 2, 10)
	assert.NoError(t, err)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assertTotalInvariant(t, c)
}

func testAddDifferentSizeNewLine(t *testing.T) {
	c, err := cart.Add(cart.New(), testItem(), 1, 10)
	assert.NoError(t, err)

	other := testItem()
	other.SelectedSize = sizeLarge
	c, err = cart.Add(c, other, 1, 10)
	assert.NoError(t, err)

	assert.Len(t, c.Items, 2)
	assertTotalInvariant(t, c)
}

func testAddInvalidQuantity(t *testing.T) {
	_, err := cart.Add(cart.New(), testItem(), 0, 10)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	_, err = cart.Add(cart.New(), testItem(), -1, 10)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}

func testAddMissingFields(t *testing.T) {
	item := testItem()
	item.SelectedColor = ""
	_, err := cart.Add(cart.New(), item, 1, 10)
	assert.ErrorIs(t, err, cart.ErrMissingFields)
}

func testAddInsufficientStock(t *testing.T) {
	_, err := cart.Add(cart.New(), testItem(), 5, 4)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)
}

func testAddStockCountsExistingLine(t *testing.T) {
	c, err := cart.Add(cart.New(), testItem(), 3, 5)
	assert.NoError(t, err)

	_, err = cart.Add(c, testItem(), 3, 5)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)
}

func testAddDoesNotMutateInput(t *testing.T) {
	c, err := cart.Add(cart.New(), testItem(), 1, 10)
	assert.NoError(t, err)

	_, err = cart.Add(c, testItem(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemove(t *testing.T) {
	t.Run("By full triple removes one line", testRemoveByFullTriple)
	t.Run("By id removes all variants", testRemoveByIDAllVariants)
	t.Run("Absent line is a no-op", testRemoveAbsentLine)
}

func testRemoveByFullTriple(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 1, 10)
	other := testItem()
	other.SelectedSize = sizeLarge
	c, _ = cart.Add(c, other, 1, 10)

	c = cart.Remove(c, cart.LineKey{ItemID: testItemID, SelectedColor: sageGreen, SelectedSize: sizeMedium})
	assert.Len(t, c.Items, 1)
	assert.Equal(t, sizeLarge, c.Items[0].SelectedSize)
	assertTotalInvariant(t, c)
}

func testRemoveByIDAllVariants(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 1, 10)
	other := testItem()
	other.SelectedSize = sizeLarge
	c, _ = cart.Add(c, other, 1, 10)

	c = cart.Remove(c, cart.LineKey{ItemID: testItemID})
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
}

func testRemoveAbsentLine(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 1, 10)
	c = cart.Remove(c, cart.LineKey{ItemID: "missing"})
	assert.Len(t, c.Items, 1)
	assertTotalInvariant(t, c)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Sets quantity directly", testUpdateSetsQuantity)
	t.Run("Zero removes the line", testUpdateZeroRemovesLine)
	t.Run("Negative removes the line", testUpdateNegativeRemovesLine)
	t.Run("Absent line is not found", testUpdateAbsentLine)
}

func testUpdateSetsQuantity(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 5, 10)
	c, err := cart.UpdateQuantity(c, cart.LineKey{ItemID: testItemID}, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 240.0, c.Total)
	assertTotalInvariant(t, c)
}

func testUpdateZeroRemovesLine(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 5, 10)
	c, err := cart.UpdateQuantity(c, cart.LineKey{ItemID: testItemID}, 0)
	assert.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
}

func testUpdateNegativeRemovesLine(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 5, 10)
	c, err := cart.UpdateQuantity(c, cart.LineKey{ItemID: testItemID}, -3)
	assert.NoError(t, err)
	assert.Empty(t, c.Items)
}

func testUpdateAbsentLine(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 1, 10)
	_, err := cart.UpdateQuantity(c, cart.LineKey{ItemID: "missing"}, 2)
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
}

func TestClear(t *testing.T) {
	c, _ := cart.Add(cart.New(), testItem(), 3, 10)
	c = cart.Clear(c)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
}
