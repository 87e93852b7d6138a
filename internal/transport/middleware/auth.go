package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/auth"
	"github.com/heartmarshall/wildlife-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Auth attaches the caller's user ID when a bearer token is present.
// Anonymous requests pass through: species browsing needs no account, and
// the lifelist handlers reject callers without a user themselves. A token
// that fails validation is answered with 401 and never reaches a handler.
func Auth(validator tokenValidator, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				description := "invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					description = "token expired"
				}
				logger.DebugContext(r.Context(), "bearer token rejected",
					slog.String("reason", err.Error()),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+description+`"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if sw, ok := w.(*statusWriter); ok {
				sw.userID = userID.String()
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
