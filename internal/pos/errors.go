package pos

import "errors"

var (
	// ErrProductNotFound is returned when a product id does not resolve in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock is returned when adding a product whose stock is zero.
	ErrOutOfStock = errors.New("product out of stock")

	// ErrInsufficientStock is returned when a requested quantity exceeds live stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart is returned when settlement is attempted with nothing staged.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantityChange is returned when a stock adjustment would go negative.
	ErrInvalidQuantityChange = errors.New("quantity cannot become negative")

	// ErrInvalidPaymentMethod is returned for a payment method outside the fixed set.
	ErrInvalidPaymentMethod = errors.New("unknown payment method")

	// ErrInvalidProduct is returned when required product fields are missing or malformed.
	ErrInvalidProduct = errors.New("invalid product fields")
)
