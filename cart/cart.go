package cart

import "errors"

// ErrInvalidQuantity is returned by AddItem for quantities below one. The
// quantity contract is explicit: callers must not rely on the cart to clamp.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ProductSnapshot is captured when an item enters the cart and is never
// re-fetched, so later catalog edits do not touch existing carts.
type ProductSnapshot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// VariantSnapshot freezes the price the buyer saw into the line item.
type VariantSnapshot struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	PriceInCents int64  `json:"price_in_cents"`
}

type LineItem struct {
	Product  ProductSnapshot `json:"product"`
	Variant  VariantSnapshot `json:"variant"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered sequence of line items. Insertion order is the display
// order. There is exactly one line item per variant id.
type Cart struct {
	Items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges into the existing line item for the same variant id, or
// appends a new one at the end of the sequence.
func (c *Cart) AddItem(product ProductSnapshot, variant VariantSnapshot, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range c.Items {
		if c.Items[i].Variant.ID == variant.ID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}

	c.Items = append(c.Items, LineItem{
		Product:  product,
		Variant:  variant,
		Quantity: quantity,
	})
	return nil
}

// RemoveItem deletes the line item with the given variant id. Removing an id
// that is not in the cart is a no-op.
func (c *Cart) RemoveItem(variantID string) {
	for i, item := range c.Items {
		if item.Variant.ID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity for the matching line item. A quantity of
// zero or below removes the item instead of persisting a non-positive count.
func (c *Cart) SetQuantity(variantID string, quantity int) {
	for i := range c.Items {
		if c.Items[i].Variant.ID == variantID {
			c.Items[i].Quantity = quantity
			break
		}
	}

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums price_in_cents * quantity over all items. An empty cart totals 0.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Variant.PriceInCents * int64(item.Quantity)
	}
	return total
}
