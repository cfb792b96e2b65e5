package models

// CartItem stages a requested quantity of one product before settlement.
// It references the catalog by id so price and stock are always read live.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
