package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minipos/minipos/internal/pos"
)

func productFields(req ProductRequest) pos.ProductFields {
	return pos.ProductFields{
		Name:        req.Name,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the account's catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} []ValidationError
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	created, err := sess.CreateProduct(r.Context(), productFields(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, productResponse(created)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetProductsHandler godoc
// @Summary List products, optionally filtered by a search query
// @Description Case-insensitive substring match against name, SKU and location
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param query query string false "Search query"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	products := sess.SearchProducts(r.URL.Query().Get("query"))
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = productResponse(p)
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	product, err := sess.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, productResponse(product)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces all mutable fields; the identifier is immutable
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} []ValidationError
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	updated, err := sess.UpdateProduct(r.Context(), chi.URLParam(r, "id"), productFields(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, productResponse(updated)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Removes the product; any cart entry referencing it is dropped
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	if err := sess.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustQuantityHandler godoc
// @Summary Adjust stock of a product
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Stock change"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Quantity would go negative"
// @Router /products/{id}/adjust [post]
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req QuantityAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	product, err := sess.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, productResponse(product)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
