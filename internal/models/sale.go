package models

import "time"

// SaleItem is a snapshot of one cart entry taken at settlement time. Later
// edits or deletions of the source product do not touch it.
type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Sale is a settled transaction. Immutable once appended to the ledger.
type Sale struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	Items         []SaleItem `json:"items"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
}
