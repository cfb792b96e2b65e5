package pos

import "github.com/minipos/minipos/internal/models"

// Cart stages product selections for one session, one entry per product id.
// Quantities are checked against the catalog's live stock on every change;
// the cart itself is never persisted. Entries whose product has since been
// deleted are implicitly invalid and are skipped by Total and settlement.
type Cart struct {
	items []models.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add stages qty units of a product, accumulating onto an existing entry.
// Fails with ErrOutOfStock when the product has no stock at all, and with
// ErrInsufficientStock when the accumulated quantity would exceed live stock;
// the cart is left unchanged on failure. A non-positive qty counts as one.
func (ct *Cart) Add(c *Catalog, productID string, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	p, err := c.Get(productID)
	if err != nil {
		return err
	}
	if p.Quantity <= 0 {
		return ErrOutOfStock
	}
	for i, it := range ct.items {
		if it.ProductID == productID {
			if it.Quantity+qty > p.Quantity {
				return ErrInsufficientStock
			}
			ct.items[i].Quantity += qty
			return nil
		}
	}
	if qty > p.Quantity {
		return ErrInsufficientStock
	}
	ct.items = append(ct.items, models.CartItem{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity overwrites the staged quantity of an existing entry. A qty of
// zero or less removes the entry; setting an absent product is a no-op.
func (ct *Cart) SetQuantity(c *Catalog, productID string, qty int) error {
	if qty <= 0 {
		ct.Remove(productID)
		return nil
	}
	p, err := c.Get(productID)
	if err != nil {
		return err
	}
	if qty > p.Quantity {
		return ErrInsufficientStock
	}
	for i, it := range ct.items {
		if it.ProductID == productID {
			ct.items[i].Quantity = qty
			return nil
		}
	}
	return nil
}

// Remove deletes the entry for a product if present.
func (ct *Cart) Remove(productID string) {
	for i, it := range ct.items {
		if it.ProductID == productID {
			ct.items = append(ct.items[:i], ct.items[i+1:]...)
			return
		}
	}
}

// Total sums price times quantity over the staged entries using the
// catalog's current prices, so inventory edits made while items sit in the
// cart are reflected immediately.
func (ct *Cart) Total(c *Catalog) float64 {
	var total float64
	for _, it := range ct.items {
		if p, err := c.Get(it.ProductID); err == nil {
			total += p.Price * float64(it.Quantity)
		}
	}
	return total
}

// Clear empties the cart.
func (ct *Cart) Clear() {
	ct.items = nil
}

// Items returns a copy of the staged entries in insertion order.
func (ct *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(ct.items))
	copy(out, ct.items)
	return out
}

// Len reports the number of staged entries.
func (ct *Cart) Len() int {
	return len(ct.items)
}
