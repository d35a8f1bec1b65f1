package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/pos-register/internal/auth"
	"github.com/rogerio-castellano/pos-register/internal/config"
	api "github.com/rogerio-castellano/pos-register/internal/http"
	handler "github.com/rogerio-castellano/pos-register/internal/http/handlers"
	rl "github.com/rogerio-castellano/pos-register/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pos-register/internal/receipt"
	"github.com/rogerio-castellano/pos-register/internal/report"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	saleRepo    *repo.InMemorySaleRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	saleRepo = repo.NewInMemorySaleRepository()
	handler.SetSaleRepo(saleRepo)

	handler.SetCheckoutRepo(repo.NewInMemoryCheckoutRepository(productRepo, saleRepo))
	handler.SetReportService(report.NewService(productRepo, saleRepo))
	handler.SetReceiptRenderer(receipt.NewRenderer(config.Merchant{
		Name:   "Test Merchant",
		Footer: "Thanks!",
	}))

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	manager := auth.NewManager("test-secret", config.Operator{
		Username:     "admin",
		PasswordHash: string(hash),
	})
	handler.SetAuthManager(manager)
	api.SetAuthManager(manager)
}

func clearStore() {
	productRepo.Clear()
	saleRepo.Clear()
}

// resetLoginLimiter gives login tests a fresh budget of attempts.
func resetLoginLimiter() {
	handler.SetLoginLimiter(rl.New())
}

func generateToken(r http.Handler, username, password string) (string, error) {
	resetLoginLimiter()
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p)
}

// sampleProduct builds a valid creation payload; n keeps EANs unique.
func sampleProduct(code string, n, stock int) handler.ProductRequest {
	return handler.ProductRequest{
		Code:                code,
		Name:                "Product " + code,
		EAN:                 fmt.Sprintf("%013d", n),
		SellPrice:           decimal.RequireFromString("5.00"),
		CostPrice:           decimal.RequireFromString("3.00"),
		Category:            "Groceries",
		Stock:               stock,
		StockAlertThreshold: 2,
	}
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
