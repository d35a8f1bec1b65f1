package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/pos-register/internal/auth"
)

// LoginHandler godoc
// @Summary Operator login
// @Description Exchanges the operator's credentials for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "Operator credentials"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Invalid credentials"
// @Failure 429 {string} string "Too many attempts"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !loginLimiter.Allow(clientAddr(r)) {
		http.Error(w, "too many login attempts", http.StatusTooManyRequests)
		return
	}

	var req UserLogin
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	token, err := authManager.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error("login failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{Token: token})
}
