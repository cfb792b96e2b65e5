package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/pos"
)

func saleResponse(s models.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		Items:         make([]SaleItemResponse, len(s.Items)),
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
	}
	for i, it := range s.Items {
		resp.Items[i] = SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	return resp
}

// CompleteSaleHandler godoc
// @Summary Settle the cart into a sale
// @Description Re-validates stock, decrements the catalog, appends the sale and clears the cart; all-or-nothing
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body SaleRequest true "Payment method (efectivo, tarjeta or transferencia)"
// @Success 201 {object} SaleResponse
// @Failure 400 {string} string "Unknown payment method"
// @Failure 409 {string} string "Empty cart or insufficient stock"
// @Router /sales [post]
func CompleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	sale, err := sess.CompleteSale(r.Context(), req.PaymentMethod)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, saleResponse(sale)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetSalesReportHandler godoc
// @Summary Sales report with period filtering and calendar grouping
// @Description period is one of today|month|year|all, group_by is one of day|month|year
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param period query string false "Reporting period (default all)"
// @Param group_by query string false "Bucket granularity (default day)"
// @Success 200 {object} pos.Report
// @Failure 400 {string} string "Invalid period or granularity"
// @Router /sales [get]
func GetSalesReportHandler(w http.ResponseWriter, r *http.Request) {
	period := pos.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = pos.PeriodAll
	}
	switch period {
	case pos.PeriodToday, pos.PeriodMonth, pos.PeriodYear, pos.PeriodAll:
	default:
		http.Error(w, "period must be one of today, month, year, all", http.StatusBadRequest)
		return
	}

	groupBy := pos.Granularity(r.URL.Query().Get("group_by"))
	if groupBy == "" {
		groupBy = pos.GroupByDay
	}
	switch groupBy {
	case pos.GroupByDay, pos.GroupByMonth, pos.GroupByYear:
	default:
		http.Error(w, "group_by must be one of day, month, year", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	report := sess.Report(period, groupBy, time.Now())
	if err := writeJSON(w, http.StatusOK, report); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// ExportSalesHandler godoc
// @Summary Export the sales ledger
// @Tags sales
// @Produce text/csv, application/json
// @Security BearerAuth
// @Param format query string true "Export format (csv or json)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid format"
// @Router /sales/export [get]
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}
	sales := sess.Sales()

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.json"`)
		if err := json.NewEncoder(w).Encode(sales); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "date", "payment_method", "total", "units"})
		for _, s := range sales {
			units := 0
			for _, it := range s.Items {
				units += it.Quantity
			}
			_ = csvWriter.Write([]string{
				s.ID,
				s.Date.Format(time.RFC3339),
				s.PaymentMethod,
				strconv.FormatFloat(s.Total, 'f', 2, 64),
				strconv.Itoa(units),
			})
		}
		csvWriter.Flush()
	}
}
