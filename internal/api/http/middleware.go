package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"registration-backend/internal/logger"
	"registration-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "adminClaims"

// adminClaimsFrom extracts the authenticated admin claims set by the auth
// middleware.
func adminClaimsFrom(ctx context.Context) *security.AdminClaims {
	claims, _ := ctx.Value(claimsKey).(*security.AdminClaims)
	return claims
}

// requireAdmin guards the admin endpoints with a bearer token check.
func requireAdmin(tokenMgr security.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, apiResponse{Success: false, Message: "authorization token required"})
			return
		}

		claims, err := tokenMgr.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			message := "invalid token"
			if errors.Is(err, security.ErrExpiredToken) {
				message = "token has expired"
			}
			writeJSON(w, http.StatusForbidden, apiResponse{Success: false, Message: message})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging logs one line per request with the status and latency.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
