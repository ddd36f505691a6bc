package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
)

type Middleware func(http.Handler) http.Handler

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if ct != "application/json" &&
			!strings.HasPrefix(ct, "multipart/form-data") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// Recover turns a handler panic into a generic 500 response instead of
// dropping the connection.
func Recover(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic while handling request",
					"method", r.Method, "path", r.URL.Path, "panic", rec,
				)
				writeMessage(w, http.StatusInternalServerError,
					"internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type callerKey struct{}

// CallerFromContext returns the authenticated caller set by RequireRole.
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(domain.Caller)
	return c, ok
}

// RequireRole validates the bearer token and checks the caller role before
// passing the request on. The caller ends up in the request context.
func RequireRole(v port.TokenValidator, roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		hf := func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok || tokenStr == "" {
				writeMessage(w, http.StatusUnauthorized,
					"Unauthorized: User not authenticated")
				return
			}

			caller, err := v.Validate(tokenStr)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized,
					"Unauthorized: User not authenticated")
				return
			}

			if !caller.HasRole(roles...) {
				writeMessage(w, http.StatusForbidden,
					"Forbidden: insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hf)
	}
}
