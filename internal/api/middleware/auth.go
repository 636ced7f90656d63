package middleware

import (
	"context"
	"net/http"
	"strings"

	"isiboard/internal/common"
	"isiboard/internal/common/security"
	"isiboard/internal/domain/model"
	"isiboard/internal/metrics"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	AdminIDCtxKey contextKey = "adminID"
	RoleCtxKey    contextKey = "role"
)

// Metrics is set once at startup; auth failures are counted when present.
var Metrics *metrics.Metrics

func authFailure() {
	if Metrics != nil {
		Metrics.IncAuthFailures()
	}
}

func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			authFailure()
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			authFailure()
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		adminID, err := security.GetAdminIDFromClaims(claims)
		if err != nil {
			authFailure()
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		role, err := security.GetRoleFromClaims(claims)
		if err != nil {
			authFailure()
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDCtxKey, adminID)
		ctx = context.WithValue(ctx, RoleCtxKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			authFailure()
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the authenticated admin's ID from context
func GetAdminIDFromContext(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(AdminIDCtxKey).(string)
	return adminID, ok
}

// Helper to get the authenticated role from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleCtxKey).(string)
	return role, ok
}
