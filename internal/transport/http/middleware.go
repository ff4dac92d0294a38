package httptransport

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/requestctx"
	"go.uber.org/zap"
)

const (
	headerUserEmail = "X-User-Email"
	headerUserRole  = "X-User-Role"
)

// requestLogger attaches a request scoped logger to the context and logs every completed request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With(
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(requestctx.WithLogger(r.Context(), reqLogger)))

			reqLogger.Info("http.request",
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// identity reads the caller forwarded by the gateway. A missing email is rejected with 401,
// a missing role defaults to USER.
func identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		email := strings.TrimSpace(r.Header.Get(headerUserEmail))
		if email == "" {
			writeError(ctx, w, codeUnauthenticated, "Authentication required.", http.StatusUnauthorized)
			return
		}

		rawRole := r.Header.Get(headerUserRole)
		role, ok := parseRole(rawRole)
		if !ok {
			writeError(ctx, w, codeUnauthenticated, fmt.Sprintf("Unknown role: %s.", strings.TrimSpace(rawRole)), http.StatusUnauthorized)
			return
		}

		requester := domain.Requester{Email: email, Role: role}
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequester(ctx, requester)))
	})
}

// requireElevated admits MANAGER and ADMIN callers only.
func requireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requester, ok := requestctx.Requester(ctx)
		if !ok {
			writeError(ctx, w, codeUnauthenticated, "Authentication required.", http.StatusUnauthorized)
			return
		}

		if !requester.Role.IsElevated() {
			writeError(ctx, w, codeForbidden, fmt.Sprintf("User with email: %s has no access to this resource.", requester.Email), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func parseRole(raw string) (domain.Role, bool) {
	switch role := domain.Role(strings.ToUpper(strings.TrimSpace(raw))); role {
	case "":
		return domain.RoleUser, true
	case domain.RoleUser, domain.RoleManager, domain.RoleAdmin:
		return role, true
	default:
		return "", false
	}
}
