package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/pos-register/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", handlers.LoginHandler)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/{code}", handlers.GetProductByCodeHandler)
	r.Get("/sales", handlers.GetSalesHandler)
	r.Get("/sales/range", handlers.GetSalesByRangeHandler)
	r.Get("/sales/{id}", handlers.GetSaleByIDHandler)
	r.Get("/sales/{id}/receipt", handlers.GetReceiptHandler)
	r.Get("/dashboard", handlers.GetDashboardHandler)

	// Mutations require an operator session.
	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware)
		pr.Post("/products", handlers.CreateProductHandler)
		pr.Put("/products/{code}", handlers.UpdateProductHandler)
		pr.Delete("/products/{code}", handlers.DeleteProductHandler)
		pr.Post("/products/import", handlers.ImportProductsHandler)
		pr.Post("/checkout", handlers.CheckoutHandler)
	})

	return r
}
