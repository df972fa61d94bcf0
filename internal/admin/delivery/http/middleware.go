package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medstock/medstock/internal/admin/session"
	"github.com/medstock/medstock/pkg/auth"
	"github.com/medstock/medstock/pkg/logger"
)

type contextKey string

const (
	AdminIDKey   contextKey = "admin_id"
	UsernameKey  contextKey = "username"
	IsSysKey     contextKey = "is_sys"
	SessionIDKey contextKey = "session_id"
)

// AuthMiddleware validates bearer tokens against both the JWT signature and
// the redis session backing it, so revoked tokens stop working immediately.
type AuthMiddleware struct {
	sessions *session.Store
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions *session.Store) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate validates the request's bearer token
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		active, err := m.sessions.Exists(r.Context(), claims.ID)
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Session lookup failed")
			respondError(w, http.StatusInternalServerError, "Session lookup failed")
			return
		}
		if !active {
			respondError(w, http.StatusUnauthorized, "Session expired or revoked")
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, IsSysKey, claims.IsSys)
		ctx = context.WithValue(ctx, SessionIDKey, claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireSys restricts a route to system accounts
func (m *AuthMiddleware) RequireSys(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		isSys, ok := r.Context().Value(IsSysKey).(bool)
		if !ok || !isSys {
			respondError(w, http.StatusForbidden, "System account required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
