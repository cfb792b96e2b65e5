package pos

import (
	"errors"
	"testing"
	"time"
)

func TestSettleCompletesSale(t *testing.T) {
	c := NewCatalog(nil)
	p, _ := c.Create(ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	ct := NewCart()
	l := NewLedger(nil)

	for i := 0; i < 3; i++ {
		if err := ct.Add(c, p.ID, 1); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if total := ct.Total(c); total != 30 {
		t.Fatalf("expected cart total 30, got %v", total)
	}

	sale, err := Settle(c, ct, l, PaymentCash, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sale.Total != 30 {
		t.Errorf("expected sale total 30, got %v", sale.Total)
	}
	if sale.PaymentMethod != PaymentCash {
		t.Errorf("expected payment method %q, got %q", PaymentCash, sale.PaymentMethod)
	}
	if after, _ := c.Get(p.ID); after.Quantity != 2 {
		t.Errorf("expected stock 2 after settlement, got %d", after.Quantity)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 ledger entry, got %d", l.Len())
	}
	if ct.Len() != 0 {
		t.Errorf("expected empty cart after settlement, got %d entries", ct.Len())
	}
}

func TestSettleEmptyCart(t *testing.T) {
	c := NewCatalog(nil)
	ct := NewCart()
	l := NewLedger(nil)

	if _, err := Settle(c, ct, l, PaymentCash, time.Now()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("ledger changed on failed settlement")
	}
}

func TestSettleInvalidPaymentMethod(t *testing.T) {
	c := NewCatalog(nil)
	p, _ := c.Create(ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	ct := NewCart()
	l := NewLedger(nil)
	_ = ct.Add(c, p.ID, 1)

	if _, err := Settle(c, ct, l, "bitcoin", time.Now()); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
	}
	if ct.Len() != 1 {
		t.Errorf("cart changed on failed settlement")
	}
}

func TestSettleAllOrNothing(t *testing.T) {
	c := NewCatalog(nil)
	first, _ := c.Create(ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	second, _ := c.Create(ProductFields{Name: "Pen", SKU: "PEN-01", Location: "A2", Price: 2, Quantity: 5})
	ct := NewCart()
	l := NewLedger(nil)

	_ = ct.Add(c, first.ID, 2)
	_ = ct.Add(c, second.ID, 4)

	// an inventory edit between staging and settlement invalidates the
	// second entry; nothing may be decremented
	if _, err := c.AdjustStock(second.ID, -3); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	if _, err := Settle(c, ct, l, PaymentCard, time.Now()); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if p, _ := c.Get(first.ID); p.Quantity != 5 {
		t.Errorf("first product mutated on failed settlement: quantity %d", p.Quantity)
	}
	if p, _ := c.Get(second.ID); p.Quantity != 2 {
		t.Errorf("second product mutated on failed settlement: quantity %d", p.Quantity)
	}
	if l.Len() != 0 {
		t.Errorf("ledger changed on failed settlement")
	}
	if ct.Len() != 2 {
		t.Errorf("cart changed on failed settlement")
	}
}

func TestSaleSnapshotSurvivesCatalogEdits(t *testing.T) {
	c := NewCatalog(nil)
	p, _ := c.Create(ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	ct := NewCart()
	l := NewLedger(nil)
	_ = ct.Add(c, p.ID, 2)

	sale, err := Settle(c, ct, l, PaymentTransfer, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// later price edits and deletion must not alter the recorded sale
	if _, err := c.Update(p.ID, ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 99, Quantity: 3}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.Delete(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	recorded := l.Sales()[0]
	if recorded.Total != 20 {
		t.Errorf("expected recorded total 20, got %v", recorded.Total)
	}
	if recorded.Items[0].UnitPrice != 10 {
		t.Errorf("expected snapshot unit price 10, got %v", recorded.Items[0].UnitPrice)
	}
	if recorded.ID != sale.ID {
		t.Errorf("ledger entry differs from returned sale")
	}

	var sum float64
	for _, it := range recorded.Items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	if sum != recorded.Total {
		t.Errorf("sale total %v does not equal item sum %v", recorded.Total, sum)
	}
}

func TestSettleDropsDanglingEntries(t *testing.T) {
	c := NewCatalog(nil)
	kept, _ := c.Create(ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	gone, _ := c.Create(ProductFields{Name: "Pen", SKU: "PEN-01", Location: "A2", Price: 2, Quantity: 5})
	ct := NewCart()
	l := NewLedger(nil)
	_ = ct.Add(c, kept.ID, 1)
	_ = ct.Add(c, gone.ID, 1)

	if err := c.Delete(gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sale, err := Settle(c, ct, l, PaymentCash, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sale.Items) != 1 || sale.Items[0].ProductID != kept.ID {
		t.Errorf("expected dangling entry to be dropped, got %+v", sale.Items)
	}
	if sale.Total != 10 {
		t.Errorf("expected total 10, got %v", sale.Total)
	}
}

func TestLedgerNewestFirst(t *testing.T) {
	c := NewCatalog(nil)
	p, _ := c.Create(ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 10})
	ct := NewCart()
	l := NewLedger(nil)

	var ids []string
	for i := 0; i < 3; i++ {
		_ = ct.Add(c, p.ID, 1)
		sale, err := Settle(c, ct, l, PaymentCash, time.Now())
		if err != nil {
			t.Fatalf("settle %d: %v", i, err)
		}
		ids = append(ids, sale.ID)
	}

	sales := l.Sales()
	for i := range ids {
		if sales[i].ID != ids[len(ids)-1-i] {
			t.Fatalf("ledger not newest-first: %v", sales)
		}
	}
}
