package handlers

import (
	"regexp"
	"strings"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var eanPattern = regexp.MustCompile(`^\d{13}$`)

// validateProduct enforces the business rules the store itself does not:
// required fields, EAN-13 format, non-negative amounts, and code/EAN
// uniqueness against the current catalog. currentCode is empty for a new
// product and set to the product's own code on update, so a product may
// keep its own EAN.
func validateProduct(p ProductRequest, catalog []models.Product, currentCode string) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Code) == "" {
		errs = append(errs, ProductValidationError{Field: "Code", Description: "Code is required"})
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if !eanPattern.MatchString(p.EAN) {
		errs = append(errs, ProductValidationError{Field: "EAN", Description: "EAN-13 must be exactly 13 digits"})
	}
	if p.SellPrice.IsNegative() {
		errs = append(errs, ProductValidationError{Field: "SellPrice", Description: "Sell price cannot be negative"})
	}
	if p.CostPrice.IsNegative() {
		errs = append(errs, ProductValidationError{Field: "CostPrice", Description: "Cost price cannot be negative"})
	}
	if p.Stock < 0 {
		errs = append(errs, ProductValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	if p.StockAlertThreshold < 0 {
		errs = append(errs, ProductValidationError{Field: "StockAlertThreshold", Description: "Stock alert threshold cannot be negative"})
	}

	for _, existing := range catalog {
		if existing.Code == currentCode {
			continue
		}
		if existing.Code == p.Code {
			errs = append(errs, ProductValidationError{Field: "Code", Description: "Code already exists"})
		}
		if existing.EAN == p.EAN {
			errs = append(errs, ProductValidationError{Field: "EAN", Description: "EAN already registered"})
		}
	}
	return errs
}
