package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minipos/minipos/internal/pos"
)

func cartResponse(entries []pos.CartEntry, total float64) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, len(entries)), Total: total}
	for i, e := range entries {
		resp.Items[i] = CartItemResponse{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			SKU:       e.Product.SKU,
			UnitPrice: e.Product.Price,
			Quantity:  e.Quantity,
			Subtotal:  e.Product.Price * float64(e.Quantity),
		}
	}
	return resp
}

// GetCartHandler godoc
// @Summary Show the staged cart with live prices
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Failure 500 {string} string "Internal error"
// @Router /cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	entries, total := sess.CartView()
	if err := writeJSON(w, http.StatusOK, cartResponse(entries, total)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// AddCartItemHandler godoc
// @Summary Stage a product in the cart
// @Description Accumulates onto an existing entry; quantity defaults to one
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body CartItemRequest true "Product and quantity"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Out of stock or insufficient stock"
// @Router /cart/items [post]
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	if err := sess.AddToCart(req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}

	entries, total := sess.CartView()
	if err := writeJSON(w, http.StatusOK, cartResponse(entries, total)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateCartItemHandler godoc
// @Summary Overwrite the staged quantity of a cart entry
// @Description A quantity of zero or less removes the entry
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param item body CartItemRequest true "New quantity"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Router /cart/items/{id} [put]
func UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	if err := sess.SetCartQuantity(chi.URLParam(r, "id"), req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}

	entries, total := sess.CartView()
	if err := writeJSON(w, http.StatusOK, cartResponse(entries, total)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// RemoveCartItemHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Removed"
// @Router /cart/items/{id} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	sess.RemoveFromCart(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Security BearerAuth
// @Success 204 "Cleared"
// @Router /cart [delete]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	sess.ClearCart()
	w.WriteHeader(http.StatusNoContent)
}
