package http

import (
	"context"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AccountHeader carries the authenticated account ID
const AccountHeader = "X-Account-ID"

type contextKey struct{}

var accountKey = contextKey{}

// RequireAccount rejects requests without an account header
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Header.Get(AccountHeader)
		if accountID == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Error: "missing " + AccountHeader + " header",
				Code:  codeUnauthenticated,
			})
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountFromContext returns the account set by RequireAccount
func AccountFromContext(ctx context.Context) string {
	accountID, _ := ctx.Value(accountKey).(string)
	return accountID
}

// WithRequestLogging logs every request once it completes
func WithRequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			)
		})
	}
}
