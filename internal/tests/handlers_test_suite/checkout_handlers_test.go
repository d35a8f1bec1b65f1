package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/pos-register/internal/http"
	handler "github.com/rogerio-castellano/pos-register/internal/http/handlers"
	models "github.com/rogerio-castellano/pos-register/internal/models"
)

func TestCheckoutHandler_CommitsSale(t *testing.T) {
	t.Cleanup(clearStore)
	r := api.NewRouter()

	createProduct(r, sampleProduct("A1", 100, 10))

	payload := handler.CheckoutRequest{
		Lines:         []models.CartLine{{Code: "A1", Quantity: 3}},
		PaymentMethod: "Cash",
	}
	w := doJSON(r, http.MethodPost, "/checkout", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.CheckoutResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.SaleID == 0 {
		t.Error("expected a sale ID to be assigned")
	}
	if resp.Total.String() != "15.00" {
		t.Errorf("expected total 15.00, got %v", resp.Total)
	}
	if resp.PaymentMethod != "Cash" {
		t.Errorf("expected payment method Cash, got %q", resp.PaymentMethod)
	}
	if resp.UpdatedStocks["A1"] != 7 {
		t.Errorf("expected stock 7 for A1, got %d", resp.UpdatedStocks["A1"])
	}

	// The catalog reflects the decrement.
	w = doJSON(r, http.MethodGet, "/products/A1", nil)
	var product handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	if product.Stock != 7 {
		t.Errorf("expected persisted stock 7, got %d", product.Stock)
	}
}

func TestCheckoutHandler_InsufficientStock(t *testing.T) {
	t.Cleanup(clearStore)
	r := api.NewRouter()

	createProduct(r, sampleProduct("A1", 101, 10))

	payload := handler.CheckoutRequest{
		Lines:         []models.CartLine{{Code: "A1", Quantity: 20}},
		PaymentMethod: "Cash",
	}
	w := doJSON(r, http.MethodPost, "/checkout", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}

	// Nothing was written: stock untouched, ledger still empty.
	w = doJSON(r, http.MethodGet, "/products/A1", nil)
	var product handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	if product.Stock != 10 {
		t.Errorf("expected stock to stay at 10, got %d", product.Stock)
	}

	w = doJSON(r, http.MethodGet, "/sales", nil)
	var sales []models.Sale
	if err := json.NewDecoder(w.Body).Decode(&sales); err != nil {
		t.Fatalf("error decoding sales: %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("expected empty ledger, got %d sales", len(sales))
	}
}

func TestCheckoutHandler_BadRequests(t *testing.T) {
	t.Cleanup(clearStore)
	r := api.NewRouter()

	createProduct(r, sampleProduct("A1", 102, 10))

	tests := []struct {
		name     string
		payload  handler.CheckoutRequest
		expected int
	}{
		{
			name:     "Empty cart",
			payload:  handler.CheckoutRequest{PaymentMethod: "Cash"},
			expected: http.StatusBadRequest,
		},
		{
			name: "Zero quantity",
			payload: handler.CheckoutRequest{
				Lines:         []models.CartLine{{Code: "A1", Quantity: 0}},
				PaymentMethod: "Cash",
			},
			expected: http.StatusBadRequest,
		},
		{
			name: "Duplicate line",
			payload: handler.CheckoutRequest{
				Lines: []models.CartLine{
					{Code: "A1", Quantity: 1},
					{Code: "A1", Quantity: 2},
				},
				PaymentMethod: "Cash",
			},
			expected: http.StatusBadRequest,
		},
		{
			name: "Unknown payment method",
			payload: handler.CheckoutRequest{
				Lines:         []models.CartLine{{Code: "A1", Quantity: 1}},
				PaymentMethod: "Barter",
			},
			expected: http.StatusBadRequest,
		},
		{
			name: "Unknown product",
			payload: handler.CheckoutRequest{
				Lines:         []models.CartLine{{Code: "NOPE", Quantity: 1}},
				PaymentMethod: "Cash",
			},
			expected: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/checkout", tt.payload)
			if w.Code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestCheckoutHandler_RequiresToken(t *testing.T) {
	t.Cleanup(clearStore)
	r := api.NewRouter()

	saved := token
	token = ""
	defer func() { token = saved }()

	payload := handler.CheckoutRequest{
		Lines:         []models.CartLine{{Code: "A1", Quantity: 1}},
		PaymentMethod: "Cash",
	}
	w := doJSON(r, http.MethodPost, "/checkout", payload)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}
