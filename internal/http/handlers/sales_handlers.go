package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	models "github.com/rogerio-castellano/pos-register/internal/models"
	"github.com/rogerio-castellano/pos-register/internal/receipt"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

// GetSalesHandler godoc
// @Summary List the whole sales ledger
// @Tags sales
// @Produce json
// @Success 200 {array} models.Sale
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := saleRepo.ListAll()
	if err != nil {
		logger.Error("could not fetch sales", zap.Error(err))
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// GetSalesByRangeHandler godoc
// @Summary List sales within a timestamp range
// @Description Inclusive range over RFC 3339 timestamps, served by the date index
// @Tags sales
// @Produce json
// @Param start query string true "Range start (RFC 3339)"
// @Param end query string true "Range end (RFC 3339)"
// @Success 200 {array} models.Sale
// @Failure 400 {string} string "Missing bounds"
// @Failure 500 {string} string "Internal error"
// @Router /sales/range [get]
func GetSalesByRangeHandler(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		http.Error(w, "start and end are required", http.StatusBadRequest)
		return
	}

	sales, err := saleRepo.ListByRange(start, end)
	if err != nil {
		logger.Error("could not fetch sales range", zap.Error(err))
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// GetSaleByIDHandler godoc
// @Summary Get one sale by ledger id
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} models.Sale
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	sale, ok := saleFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

// GetReceiptHandler godoc
// @Summary Render the printable receipt for a sale
// @Tags sales
// @Produce plain
// @Param id path int true "Sale ID"
// @Success 200 {string} string "Receipt document"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales/{id}/receipt [get]
func GetReceiptHandler(w http.ResponseWriter, r *http.Request) {
	sale, ok := saleFromPath(w, r)
	if !ok {
		return
	}

	doc := receiptRenderer.Render(sale, receipt.NewRef())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(doc))
}

func saleFromPath(w http.ResponseWriter, r *http.Request) (sale models.Sale, ok bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return sale, false
	}

	sale, err = saleRepo.Get(id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return sale, false
		}
		logger.Error("could not fetch sale", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return sale, false
	}
	return sale, true
}
