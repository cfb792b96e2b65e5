package store

import (
	"context"

	"github.com/minipos/minipos/internal/models"
)

// Document is the persisted state of one account: the product catalog and the
// sale ledger, serialized as two independent JSON arrays.
type Document struct {
	Products []models.Product `json:"products"`
	Sales    []models.Sale    `json:"sales"`
}

// Store persists account documents keyed by email. Load returns an empty
// document for an account that has never saved anything.
type Store interface {
	Load(ctx context.Context, email string) (Document, error)
	Save(ctx context.Context, email string, doc Document) error
}

const (
	productsKeyPrefix = "pos_products_"
	salesKeyPrefix    = "pos_sales_"
)

// ProductsKey is the storage key for an account's catalog.
func ProductsKey(email string) string {
	return productsKeyPrefix + email
}

// SalesKey is the storage key for an account's ledger.
func SalesKey(email string) string {
	return salesKeyPrefix + email
}
