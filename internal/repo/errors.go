package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrSaleNotFound is returned when a sale is not found in the ledger.
var ErrSaleNotFound = errors.New("sale not found")

// ErrInsufficientStock is returned by Checkout when a cart line asks for
// more units than are on hand. No writes happen when it is returned.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrEmptyCart is returned by Checkout for a cart with no lines.
var ErrEmptyCart = errors.New("empty cart")

// ErrInvalidQuantity is returned by Checkout for a line with a zero or
// negative quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrDuplicateCartLine is returned by Checkout when the same product code
// appears in more than one cart line.
var ErrDuplicateCartLine = errors.New("duplicate cart line")

// ErrInvalidPaymentMethod is returned by Checkout for a payment method
// outside the fixed enumeration.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")
