package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GetDashboardHandler godoc
// @Summary Dashboard figures for the admin view
// @Description Seven-day totals, payment breakdown, top products and restocking alerts
// @Tags dashboard
// @Produce json
// @Success 200 {object} report.Dashboard
// @Failure 500 {string} string "Internal error"
// @Router /dashboard [get]
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := reportService.Dashboard(time.Now())
	if err != nil {
		logger.Error("failed to build dashboard", zap.Error(err))
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
