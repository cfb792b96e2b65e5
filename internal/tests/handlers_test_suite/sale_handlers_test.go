package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	api "github.com/minipos/minipos/internal/http"
	handler "github.com/minipos/minipos/internal/http/handlers"
	"github.com/minipos/minipos/internal/pos"
)

func TestCompleteSaleHandler(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	payload := validProductRequest()
	payload.Price = 10.0
	w := createProduct(r, payload) // quantity 5
	var created handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&created)

	for i := 0; i < 3; i++ {
		if w = addCartItem(r, handler.CartItemRequest{ProductID: created.ID, Quantity: 1}); w.Code != http.StatusOK {
			t.Fatalf("add %d failed with %d", i+1, w.Code)
		}
	}

	w = completeSale(r, "efectivo")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var sale handler.SaleResponse
	if err := json.NewDecoder(w.Body).Decode(&sale); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if sale.Total != 30.0 {
		t.Errorf("expected sale total 30.0, got %v", sale.Total)
	}
	if sale.PaymentMethod != "efectivo" {
		t.Errorf("expected payment method efectivo, got %q", sale.PaymentMethod)
	}
	if len(sale.Items) != 1 || sale.Items[0].Quantity != 3 {
		t.Errorf("unexpected sale items: %+v", sale.Items)
	}

	// stock was decremented and the cart cleared
	w = doJSON(r, http.MethodGet, "/products/"+created.ID, nil)
	var product handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&product)
	if product.Quantity != 2 {
		t.Errorf("expected stock 2 after sale, got %d", product.Quantity)
	}

	w = doJSON(r, http.MethodGet, "/cart", nil)
	var cart handler.CartResponse
	_ = json.NewDecoder(w.Body).Decode(&cart)
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart after sale, got %+v", cart.Items)
	}
}

func TestCompleteSaleHandler_EmptyCart(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	w := completeSale(r, "efectivo")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict on empty cart, got %d", w.Code)
	}
}

func TestCompleteSaleHandler_UnknownPaymentMethod(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	w := createProduct(r, validProductRequest())
	var created handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&created)
	addCartItem(r, handler.CartItemRequest{ProductID: created.ID, Quantity: 1})

	if w = completeSale(r, "bitcoin"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestCompleteSaleHandler_StaleCart(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	payload := validProductRequest()
	payload.Quantity = 3
	w := createProduct(r, payload)
	var created handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&created)
	addCartItem(r, handler.CartItemRequest{ProductID: created.ID, Quantity: 3})

	// an inventory correction lands before checkout
	adjustProduct(r, created.ID, handler.QuantityAdjustmentRequest{Delta: -2})

	if w = completeSale(r, "tarjeta"); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict for stale cart, got %d", w.Code)
	}

	// nothing was decremented
	w = doJSON(r, http.MethodGet, "/products/"+created.ID, nil)
	var product handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&product)
	if product.Quantity != 1 {
		t.Errorf("expected stock 1 after failed sale, got %d", product.Quantity)
	}
}

func TestGetSalesReportHandler(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	payload := validProductRequest()
	payload.Price = 10.0
	w := createProduct(r, payload)
	var created handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&created)

	addCartItem(r, handler.CartItemRequest{ProductID: created.ID, Quantity: 2})
	completeSale(r, "efectivo")
	addCartItem(r, handler.CartItemRequest{ProductID: created.ID, Quantity: 1})
	completeSale(r, "tarjeta")

	w = doJSON(r, http.MethodGet, "/sales?period=today&group_by=day", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var report pos.Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if report.Summary.Transactions != 2 {
		t.Errorf("expected 2 transactions, got %d", report.Summary.Transactions)
	}
	if report.Summary.Revenue != 30.0 {
		t.Errorf("expected revenue 30.0, got %v", report.Summary.Revenue)
	}
	if report.Summary.UnitsSold != 3 {
		t.Errorf("expected 3 units sold, got %d", report.Summary.UnitsSold)
	}
	if report.Summary.AverageTicket != 15.0 {
		t.Errorf("expected average ticket 15.0, got %v", report.Summary.AverageTicket)
	}
	if len(report.Buckets) != 1 {
		t.Errorf("expected a single day bucket, got %d", len(report.Buckets))
	}
}

func TestGetSalesReportHandler_InvalidParams(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	if w := doJSON(r, http.MethodGet, "/sales?period=fortnight", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown period, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/sales?group_by=hour", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown granularity, got %d", w.Code)
	}
}

func TestExportSalesHandler(t *testing.T) {
	t.Cleanup(resetPOS)
	r := api.NewRouter()

	payload := validProductRequest()
	payload.Price = 10.0
	w := createProduct(r, payload)
	var created handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&created)
	addCartItem(r, handler.CartItemRequest{ProductID: created.ID, Quantity: 2})
	completeSale(r, "transferencia")

	w = doJSON(r, http.MethodGet, "/sales/export?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "transferencia") || !strings.Contains(lines[1], "20.00") {
		t.Errorf("unexpected csv row: %q", lines[1])
	}

	w = doJSON(r, http.MethodGet, "/sales/export?format=json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/sales/export?format=xml", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown format, got %d", w.Code)
	}
}
