package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	models "github.com/rogerio-castellano/pos-register/internal/models"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

// CheckoutHandler godoc
// @Summary Commit a checkout
// @Description Converts the cart into one sale and the matching stock decrements, all-or-nothing
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cart body CheckoutRequest true "Cart lines and payment method"
// @Success 201 {object} CheckoutResponse
// @Failure 400 {string} string "Invalid cart"
// @Failure 404 {string} string "Unknown product"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	result, err := checkoutRepo.Checkout(req.Lines, models.PaymentMethod(req.PaymentMethod), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyCart),
			errors.Is(err, repo.ErrInvalidQuantity),
			errors.Is(err, repo.ErrDuplicateCartLine),
			errors.Is(err, repo.ErrInvalidPaymentMethod):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			logger.Error("checkout failed", zap.Error(err))
			http.Error(w, "could not complete checkout", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("sale committed",
		zap.Int64("sale_id", result.Sale.ID),
		zap.String("total", result.Sale.Total.String()),
		zap.String("payment_method", string(result.Sale.PaymentMethod)))

	writeJSON(w, http.StatusCreated, CheckoutResponse{
		SaleID:        result.Sale.ID,
		Timestamp:     result.Sale.Timestamp,
		Total:         result.Sale.Total,
		PaymentMethod: string(result.Sale.PaymentMethod),
		UpdatedStocks: result.UpdatedStocks,
	})
}
