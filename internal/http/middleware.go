package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/pos-register/internal/auth"
)

type contextKey string

const operatorKey = contextKey("operator")

var authManager *auth.Manager

// SetAuthManager wires the session verifier used by AuthMiddleware.
func SetAuthManager(m *auth.Manager) {
	authManager = m
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		operator, err := authManager.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), operatorKey, operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperator returns the operator name attached by AuthMiddleware, or "".
func GetOperator(r *http.Request) string {
	if val, ok := r.Context().Value(operatorKey).(string); ok {
		return val
	}
	return ""
}
