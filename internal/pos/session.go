package pos

import (
	"context"
	"sync"
	"time"

	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/store"
)

// Session owns the catalog, cart and ledger of one signed-in account.
// Catalog and ledger mutations are written through to the store before
// returning; the cart lives only as long as the session. The mutex
// serializes HTTP requests so each operation runs to completion before the
// next, keeping the single-actor contract of the domain core.
type Session struct {
	mu      sync.Mutex
	email   string
	catalog *Catalog
	cart    *Cart
	ledger  *Ledger
	store   store.Store
}

// NewSession builds a session over a loaded account document with an empty cart.
func NewSession(email string, st store.Store, doc store.Document) *Session {
	return &Session{
		email:   email,
		catalog: NewCatalog(doc.Products),
		cart:    NewCart(),
		ledger:  NewLedger(doc.Sales),
		store:   st,
	}
}

func (s *Session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.email, store.Document{
		Products: s.catalog.Products(),
		Sales:    s.ledger.Sales(),
	})
}

// CreateProduct adds a product to the catalog and persists it.
func (s *Session) CreateProduct(ctx context.Context, f ProductFields) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.catalog.Create(f)
	if err != nil {
		return models.Product{}, err
	}
	return p, s.save(ctx)
}

// UpdateProduct replaces the mutable fields of a product and persists it.
func (s *Session) UpdateProduct(ctx context.Context, id string, f ProductFields) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.catalog.Update(id, f)
	if err != nil {
		return models.Product{}, err
	}
	return p, s.save(ctx)
}

// DeleteProduct removes a product from the catalog and drops any cart entry
// referencing it, then persists the catalog.
func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.Delete(id); err != nil {
		return err
	}
	s.cart.Remove(id)
	return s.save(ctx)
}

// AdjustStock applies a stock delta to a product and persists the catalog.
func (s *Session) AdjustStock(ctx context.Context, id string, delta int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.catalog.AdjustStock(id, delta)
	if err != nil {
		return models.Product{}, err
	}
	return p, s.save(ctx)
}

// Product retrieves one product by id.
func (s *Session) Product(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

// SearchProducts runs a case-insensitive substring search over the catalog.
func (s *Session) SearchProducts(query string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Search(query)
}

// AddToCart stages qty units of a product.
func (s *Session) AddToCart(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Add(s.catalog, productID, qty)
}

// SetCartQuantity overwrites the staged quantity of a cart entry.
func (s *Session) SetCartQuantity(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SetQuantity(s.catalog, productID, qty)
}

// RemoveFromCart drops the cart entry for a product.
func (s *Session) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// CartEntry is a staged selection resolved against the live catalog.
type CartEntry struct {
	Product  models.Product
	Quantity int
}

// CartView resolves the staged entries against live catalog products and
// returns them with the live-price total. Dangling entries are skipped.
func (s *Session) CartView() ([]CartEntry, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []CartEntry
	for _, it := range s.cart.Items() {
		if p, err := s.catalog.Get(it.ProductID); err == nil {
			entries = append(entries, CartEntry{Product: p, Quantity: it.Quantity})
		}
	}
	return entries, s.cart.Total(s.catalog)
}

// CompleteSale settles the cart and persists catalog and ledger.
func (s *Session) CompleteSale(ctx context.Context, method string) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, err := Settle(s.catalog, s.cart, s.ledger, method, time.Now())
	if err != nil {
		return models.Sale{}, err
	}
	return sale, s.save(ctx)
}

// Sales returns the ledger, newest first.
func (s *Session) Sales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Sales()
}

// Report builds the reporting projection over the ledger.
func (s *Session) Report(p Period, g Granularity, now time.Time) Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildReport(s.ledger.Sales(), p, g, now)
}

// SessionManager hands out one session per account email, loading the
// account's document from the store on first use.
type SessionManager struct {
	mu       sync.Mutex
	store    store.Store
	sessions map[string]*Session
}

func NewSessionManager(st store.Store) *SessionManager {
	return &SessionManager{
		store:    st,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for an account, loading its persisted catalog and
// ledger the first time the account is seen.
func (m *SessionManager) Get(ctx context.Context, email string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[email]; ok {
		return s, nil
	}
	doc, err := m.store.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	s := NewSession(email, m.store, doc)
	m.sessions[email] = s
	return s, nil
}

// Drop discards an account's session; the staged cart is lost with it.
func (m *SessionManager) Drop(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, email)
}
