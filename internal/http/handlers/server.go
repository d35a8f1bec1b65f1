package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/pos-register/internal/auth"
	rl "github.com/rogerio-castellano/pos-register/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pos-register/internal/receipt"
	"github.com/rogerio-castellano/pos-register/internal/report"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

var (
	productRepo  repo.ProductRepository
	saleRepo     repo.SaleRepository
	checkoutRepo repo.CheckoutRepository

	reportService   *report.Service
	receiptRenderer receipt.Renderer
	authManager     *auth.Manager
	loginLimiter    = rl.New()
	logger          = zap.NewNop()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetCheckoutRepo(r repo.CheckoutRepository) {
	checkoutRepo = r
}

func SetReportService(s *report.Service) {
	reportService = s
}

func SetReceiptRenderer(r receipt.Renderer) {
	receiptRenderer = r
}

func SetAuthManager(m *auth.Manager) {
	authManager = m
}

func SetLoginLimiter(l *rl.Limiter) {
	loginLimiter = l
}

func SetLogger(l *zap.Logger) {
	logger = l
}
