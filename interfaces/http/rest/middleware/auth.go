package middleware

import (
	"net"
	"net/http"
	"strings"

	"newsagg-backend/pkg/auth"
	"newsagg-backend/pkg/common"

	"go.uber.org/zap"
)

// Authenticate validates the bearer token on every request and injects the
// authenticated user into the request context. The storage layer itself
// never checks authorization; it trusts the user ID established here.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(100) // per minute per IP

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), clientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMIT", "Rate limit exceeded")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization header")
				return
			}

			claims, err := validator.ValidateToken(authHeader)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
				return
			}

			ctx := auth.WithUser(r.Context(), auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clientIP extracts the client address, preferring the forwarding header
// set by the load balancer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
