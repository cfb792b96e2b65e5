package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/minipos/minipos/internal/pos"
)

type csvRow struct {
	Name        string
	SKU         string
	Quantity    int
	Location    string
	Price       float64
	Description string
	Category    string
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:        field(record, "name"),
			SKU:         field(record, "sku"),
			Quantity:    parseInt(field(record, "quantity")),
			Location:    field(record, "location"),
			Price:       parseFloat(field(record, "price")),
			Description: field(record, "description"),
			Category:    field(record, "category"),
		})
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if strings.TrimSpace(r.SKU) == "" {
		return errors.New("missing sku")
	}
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("missing location")
	}
	if r.Price <= 0 {
		return errors.New("invalid price")
	}
	if r.Quantity < 0 {
		return errors.New("invalid quantity")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// ImportProductsHandler godoc
// @Summary Import catalog products via CSV
// @Description Columns: name, sku, quantity, location, price, description, category
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := session(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	var imported int
	var errorsList []ValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		_, err := sess.CreateProduct(r.Context(), pos.ProductFields{
			Name:        rec.Name,
			SKU:         rec.SKU,
			Quantity:    rec.Quantity,
			Location:    rec.Location,
			Price:       rec.Price,
			Description: rec.Description,
			Category:    rec.Category,
		})
		if err != nil {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	if err := writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	}); err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
