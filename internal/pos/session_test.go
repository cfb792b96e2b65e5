package pos

import (
	"context"
	"testing"

	"github.com/minipos/minipos/internal/store"
)

func TestSessionPersistsAcrossManagers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	mgr := NewSessionManager(st)
	sess, err := mgr.Get(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}

	p, err := sess.CreateProduct(ctx, ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := sess.AddToCart(p.ID, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if _, err := sess.CompleteSale(ctx, PaymentCash); err != nil {
		t.Fatalf("complete sale: %v", err)
	}

	// a new manager over the same store simulates a restart
	reloaded, err := NewSessionManager(st).Get(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}

	got, err := reloaded.Product(p.ID)
	if err != nil {
		t.Fatalf("product not reloaded: %v", err)
	}
	if got.Quantity != 3 {
		t.Errorf("expected reloaded stock 3, got %d", got.Quantity)
	}

	sales := reloaded.Sales()
	if len(sales) != 1 {
		t.Fatalf("expected 1 reloaded sale, got %d", len(sales))
	}
	if sales[0].Total != 20 {
		t.Errorf("expected reloaded sale total 20, got %v", sales[0].Total)
	}

	// the cart is session state, never persisted
	entries, total := reloaded.CartView()
	if len(entries) != 0 || total != 0 {
		t.Errorf("expected empty cart after reload, got %d entries, total %v", len(entries), total)
	}
}

func TestSessionsAreIsolatedByAccount(t *testing.T) {
	ctx := context.Background()
	mgr := NewSessionManager(store.NewMemoryStore())

	ana, _ := mgr.Get(ctx, "ana@example.com")
	bob, _ := mgr.Get(ctx, "bob@example.com")

	if _, err := ana.CreateProduct(ctx, ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if got := bob.SearchProducts(""); len(got) != 0 {
		t.Errorf("expected empty catalog for other account, got %d products", len(got))
	}
}

func TestSessionDeleteProductPrunesCart(t *testing.T) {
	ctx := context.Background()
	mgr := NewSessionManager(store.NewMemoryStore())
	sess, _ := mgr.Get(ctx, "ana@example.com")

	p, _ := sess.CreateProduct(ctx, ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	if err := sess.AddToCart(p.ID, 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := sess.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	entries, total := sess.CartView()
	if len(entries) != 0 || total != 0 {
		t.Errorf("expected cart entry pruned with its product, got %d entries", len(entries))
	}
}

func TestSessionManagerDrop(t *testing.T) {
	ctx := context.Background()
	mgr := NewSessionManager(store.NewMemoryStore())

	sess, _ := mgr.Get(ctx, "ana@example.com")
	p, _ := sess.CreateProduct(ctx, ProductFields{Name: "Mug", SKU: "MUG-01", Location: "A1", Price: 10, Quantity: 5})
	if err := sess.AddToCart(p.ID, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	mgr.Drop("ana@example.com")

	fresh, _ := mgr.Get(ctx, "ana@example.com")
	if fresh == sess {
		t.Fatal("expected a fresh session after drop")
	}
	if entries, _ := fresh.CartView(); len(entries) != 0 {
		t.Errorf("staged cart survived drop")
	}
	if _, err := fresh.Product(p.ID); err != nil {
		t.Errorf("catalog not reloaded after drop: %v", err)
	}
}
