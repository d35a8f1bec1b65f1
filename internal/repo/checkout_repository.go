package repo

import (
	"fmt"
	"time"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// CheckoutResult carries what the UI needs to refresh after a sale: the
// persisted ledger entry and the post-decrement stock level per code.
type CheckoutResult struct {
	Sale          models.Sale
	UpdatedStocks map[string]int
}

// CheckoutRepository converts a cart into one persisted sale and the
// matching stock decrements, as a single logical unit.
//
// Stock is re-checked at commit time against the stored values, not the
// caller's possibly stale view. On any precondition failure
// (ErrEmptyCart, ErrInvalidQuantity, ErrDuplicateCartLine,
// ErrInvalidPaymentMethod, ErrProductNotFound, ErrInsufficientStock) no
// write takes place. On success the decrements and the appended sale become
// visible together: implementations must not let a second checkout for the
// same codes interleave between the stock check and the append.
type CheckoutRepository interface {
	Checkout(lines []models.CartLine, payment models.PaymentMethod, now time.Time) (CheckoutResult, error)
}

// validateCart runs the write-free precondition checks shared by all
// CheckoutRepository implementations.
func validateCart(lines []models.CartLine, payment models.PaymentMethod) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	if !payment.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, payment)
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidQuantity, line.Code)
		}
		if seen[line.Code] {
			return fmt.Errorf("%w: %q", ErrDuplicateCartLine, line.Code)
		}
		seen[line.Code] = true
	}
	return nil
}

// buildSale snapshots the given products into a new ledger entry and
// recomputes the total as the sum of sellPrice × quantity over all lines.
func buildSale(lines []models.CartLine, products map[string]models.Product, payment models.PaymentMethod, now time.Time) models.Sale {
	sale := models.Sale{
		Timestamp:     now.UTC().Format(time.RFC3339),
		PaymentMethod: payment,
	}
	for _, line := range lines {
		item := models.SaleItem{Product: products[line.Code], Quantity: line.Quantity}
		sale.LineItems = append(sale.LineItems, item)
		sale.Total = sale.Total.Add(item.Subtotal())
	}
	return sale
}
