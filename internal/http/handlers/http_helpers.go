package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/pos"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

// writeDomainError maps a domain error onto the matching HTTP status and message.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pos.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, pos.ErrOutOfStock):
		http.Error(w, "product out of stock", http.StatusConflict)
	case errors.Is(err, pos.ErrInsufficientStock):
		http.Error(w, "insufficient stock", http.StatusConflict)
	case errors.Is(err, pos.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusConflict)
	case errors.Is(err, pos.ErrInvalidQuantityChange):
		http.Error(w, "quantity cannot be negative", http.StatusConflict)
	case errors.Is(err, pos.ErrInvalidPaymentMethod):
		http.Error(w, "unknown payment method", http.StatusBadRequest)
	case errors.Is(err, pos.ErrInvalidProduct):
		http.Error(w, "invalid product fields", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Quantity:    p.Quantity,
		Location:    p.Location,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		InStock:     p.Quantity > 0,
	}
}
