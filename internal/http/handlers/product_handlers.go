package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	models "github.com/rogerio-castellano/pos-register/internal/models"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

// CreateProductHandler godoc
// @Summary Register a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	catalog, err := productRepo.GetAll()
	if err != nil {
		logger.Error("could not fetch products for validation", zap.Error(err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	validationErrors := validateProduct(req, catalog, "")
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	product := toModel(req)
	if err := productRepo.Put(product); err != nil {
		logger.Error("could not create product", zap.String("code", req.Code), zap.Error(err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	// Read back so the response carries the normalized category.
	created, err := productRepo.Get(product.Code)
	if err != nil {
		logger.Error("could not read back product", zap.String("code", req.Code), zap.Error(err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		logger.Error("could not fetch products", zap.Error(err))
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductByCodeHandler godoc
// @Summary Get product by code
// @Tags products
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{code} [get]
func GetProductByCodeHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := productRepo.Get(code)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logger.Error("could not fetch product", zap.String("code", code), zap.Error(err))
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces every field of an existing product except its code
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Product code"
// @Param product body ProductRequest true "New product data"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Router /products/{code} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if _, err := productRepo.Get(code); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logger.Error("could not fetch product", zap.String("code", code), zap.Error(err))
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	// The code is the immutable primary key.
	req.Code = code

	catalog, err := productRepo.GetAll()
	if err != nil {
		logger.Error("could not fetch products for validation", zap.Error(err))
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	validationErrors := validateProduct(req, catalog, code)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	if err := productRepo.Put(toModel(req)); err != nil {
		logger.Error("could not update product", zap.String("code", code), zap.Error(err))
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	updated, err := productRepo.Get(code)
	if err != nil {
		logger.Error("could not read back product", zap.String("code", code), zap.Error(err))
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Removes a product from the catalog; deleting an unknown code is a no-op
// @Tags products
// @Param code path string true "Product code"
// @Success 204 "Deleted successfully"
// @Failure 500 {string} string "Internal error"
// @Router /products/{code} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := productRepo.Delete(code); err != nil {
		logger.Error("could not delete product", zap.String("code", code), zap.Error(err))
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toModel(req ProductRequest) models.Product {
	return models.Product{
		Code:                req.Code,
		Name:                req.Name,
		EAN:                 req.EAN,
		SellPrice:           req.SellPrice,
		CostPrice:           req.CostPrice,
		Category:            req.Category,
		Stock:               req.Stock,
		StockAlertThreshold: req.StockAlertThreshold,
	}
}
