package pos

import (
	"strconv"
	"time"

	"github.com/minipos/minipos/internal/models"
)

// Payment methods accepted at settlement.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// ValidPaymentMethod reports whether m belongs to the fixed enumeration.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Ledger is the append-only, newest-first history of one account's sales.
type Ledger struct {
	sales  []models.Sale
	lastID int64
}

// NewLedger builds a ledger over previously persisted sales (newest first).
func NewLedger(sales []models.Sale) *Ledger {
	l := &Ledger{sales: sales}
	for _, s := range sales {
		if id, err := strconv.ParseInt(s.ID, 10, 64); err == nil && id > l.lastID {
			l.lastID = id
		}
	}
	return l
}

func (l *Ledger) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}

func (l *Ledger) prepend(s models.Sale) {
	l.sales = append([]models.Sale{s}, l.sales...)
}

// Sales returns a copy of the ledger, newest first.
func (l *Ledger) Sales() []models.Sale {
	out := make([]models.Sale, len(l.sales))
	copy(out, l.sales)
	return out
}

// Len reports the number of settled sales.
func (l *Ledger) Len() int {
	return len(l.sales)
}

// Settle converts the cart into a sale: every staged entry is re-validated
// against live stock, the catalog is decremented, an immutable sale is
// prepended to the ledger and the cart is cleared. The operation is
// all-or-nothing: on any failure the catalog, ledger and cart are untouched.
// Entries referencing deleted products are dropped as implicitly invalid.
func Settle(c *Catalog, ct *Cart, l *Ledger, method string, now time.Time) (models.Sale, error) {
	if ct.Len() == 0 {
		return models.Sale{}, ErrEmptyCart
	}
	if !ValidPaymentMethod(method) {
		return models.Sale{}, ErrInvalidPaymentMethod
	}

	// Phase one: snapshot and validate every entry before touching stock.
	items := make([]models.SaleItem, 0, len(ct.items))
	for _, it := range ct.items {
		p, err := c.Get(it.ProductID)
		if err != nil {
			continue
		}
		if it.Quantity > p.Quantity {
			return models.Sale{}, ErrInsufficientStock
		}
		items = append(items, models.SaleItem{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			UnitPrice: p.Price,
			Quantity:  it.Quantity,
		})
	}
	if len(items) == 0 {
		return models.Sale{}, ErrEmptyCart
	}

	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}

	// Phase two: apply the decrements. Every entry was validated above, so
	// AdjustStock cannot fail here.
	for _, it := range items {
		if _, err := c.AdjustStock(it.ProductID, -it.Quantity); err != nil {
			return models.Sale{}, err
		}
	}

	sale := models.Sale{
		ID:            l.nextID(now),
		Date:          now,
		Items:         items,
		Total:         total,
		PaymentMethod: method,
	}
	l.prepend(sale)
	ct.Clear()
	return sale, nil
}
