package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/requestctx"
	"go.uber.org/zap"
)

const (
	codeInvalidRequest  = "invalid_request"
	codeNotFound        = "not_found"
	codeForbidden       = "forbidden"
	codeUnauthenticated = "unauthenticated"
	codeInternal        = "internal"
)

// writeError writes the JSON error envelope.
func writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	payload := map[string]any{
		"error":   code,
		"message": sanitize(message, 512),
		"status":  status,
	}

	if requestID := sanitize(middleware.GetReqID(ctx), 80); requestID != "" {
		payload["request_id"] = requestID
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps a workflow error to its status. Unclassified errors are
// logged and answered with a generic message.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch {
		case errors.Is(dErr.Kind, domain.ErrNotFound):
			writeError(ctx, w, codeNotFound, dErr.Message, http.StatusNotFound)
			return
		case errors.Is(dErr.Kind, domain.ErrInvalidArgument):
			writeError(ctx, w, codeInvalidRequest, dErr.Message, http.StatusBadRequest)
			return
		case errors.Is(dErr.Kind, domain.ErrAccessDenied):
			writeError(ctx, w, codeForbidden, dErr.Message, http.StatusForbidden)
			return
		}
	}

	requestctx.Logger(ctx).Error("request failed", zap.Error(err))
	writeError(ctx, w, codeInternal, "Internal server error.", http.StatusInternalServerError)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		requestctx.Logger(ctx).Warn("encode response", zap.Error(err))
	}
}

func sanitize(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		// cut on a rune boundary
		for limit > 0 && !utf8.RuneStart(value[limit]) {
			limit--
		}
		value = value[:limit]
	}
	return value
}
