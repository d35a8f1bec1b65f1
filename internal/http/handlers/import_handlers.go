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

	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/pos-register/internal/models"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

var importColumns = []string{
	"code", "name", "ean", "sellprice", "costprice", "category", "stock", "stockalertthreshold",
}

func parseCSV(file multipart.File) ([]ProductRequest, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", col)
		}
	}

	var rows []ProductRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := ProductRequest{
			Code:                strings.TrimSpace(record[index["code"]]),
			Name:                strings.TrimSpace(record[index["name"]]),
			EAN:                 strings.TrimSpace(record[index["ean"]]),
			SellPrice:           parsePrice(record[index["sellprice"]]),
			CostPrice:           parsePrice(record[index["costprice"]]),
			Category:            strings.TrimSpace(record[index["category"]]),
			Stock:               parseInt(record[index["stock"]]),
			StockAlertThreshold: parseInt(record[index["stockalertthreshold"]]),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parsePrice(s string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NewFromInt(-1) // forces the validation error downstream
	}
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Upserts each valid row through the same put path as manual entry; rows fail individually
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

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

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		existing, err := productRepo.Get(rec.Code)
		exists := err == nil
		if err != nil && !errors.Is(err, repo.ErrProductNotFound) {
			errorsList = append(errorsList, ProductValidationError{
				Description: fmt.Sprintf("row %d: lookup failed for %q", rowNum, rec.Code)})
			continue
		}
		if exists && mode == "skip" {
			errorsList = append(errorsList, ProductValidationError{
				Description: fmt.Sprintf("row %d: product %q already exists", rowNum, rec.Code)})
			continue
		}

		catalog, err := productRepo.GetAll()
		if err != nil {
			errorsList = append(errorsList, ProductValidationError{
				Description: fmt.Sprintf("row %d: validation lookup failed", rowNum)})
			continue
		}
		currentCode := ""
		if exists {
			currentCode = existing.Code
		}
		if rowErrs := validateProduct(rec, catalog, currentCode); len(rowErrs) > 0 {
			for _, e := range rowErrs {
				errorsList = append(errorsList, ProductValidationError{
					Field:       e.Field,
					Description: fmt.Sprintf("row %d: %s", rowNum, e.Description)})
			}
			continue
		}

		var product models.Product
		if exists {
			product = existing
			product.Name = rec.Name
			product.EAN = rec.EAN
			product.SellPrice = rec.SellPrice
			product.CostPrice = rec.CostPrice
			product.Category = rec.Category
			product.Stock = rec.Stock
			product.StockAlertThreshold = rec.StockAlertThreshold
		} else {
			product = toModel(rec)
		}

		if err := productRepo.Put(product); err != nil {
			errorsList = append(errorsList, ProductValidationError{
				Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
