package middleware

import (
	"net/http"
	"strings"

	"notifygate/internal/platform/logger"
	pnet "notifygate/internal/platform/net"

	"github.com/google/uuid"
)

// Header names honored for inbound correlation ids, in order
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// RequestID propagates an inbound X-Request-ID or X-Correlation-ID, minting a
// UUID when neither is present. The id is stored on the request context, made
// available to the request-scoped logger, and mirrored on the response header
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
			if id == "" {
				id = strings.TrimSpace(r.Header.Get(HeaderCorrelationID))
			}
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(HeaderRequestID, id)

			ctx := pnet.WithRequestID(r.Context(), id)
			ctx = logger.WithRequest(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
