package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/pos-register/internal/auth"
	"github.com/rogerio-castellano/pos-register/internal/config"
	"github.com/rogerio-castellano/pos-register/internal/db"
	router "github.com/rogerio-castellano/pos-register/internal/http"
	"github.com/rogerio-castellano/pos-register/internal/http/handlers"
	rl "github.com/rogerio-castellano/pos-register/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pos-register/internal/receipt"
	"github.com/rogerio-castellano/pos-register/internal/report"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

// @title POS Register API
// @version 1.0
// @description Local API for the POS terminal: catalog, checkout, sales ledger and dashboard.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	// Migration runs inside Open; the server never starts against a
	// partially migrated database.
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("could not open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	defer database.Close()

	productRepo := repo.NewSQLiteProductRepository(database)
	saleRepo := repo.NewSQLiteSaleRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetCheckoutRepo(repo.NewSQLiteCheckoutRepository(database))
	handlers.SetReportService(report.NewService(productRepo, saleRepo))
	handlers.SetReceiptRenderer(receipt.NewRenderer(cfg.Merchant))
	handlers.SetLogger(logger)

	manager := auth.NewManager(cfg.JWTSecret, cfg.Operator)
	handlers.SetAuthManager(manager)
	router.SetAuthManager(manager)

	limiter := rl.New()
	handlers.SetLoginLimiter(limiter)
	go limiter.StartCleanupLoop()

	r := router.NewRouter()
	logger.Info("server running", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if level != "" {
		if err := logCfg.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("bad log level %q: %w", level, err)
		}
	}
	return logCfg.Build()
}
