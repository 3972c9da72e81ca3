package middleware

import (
	"net/http"

	"github.com/findajob/job-triage/pkg/requestid"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestID stores the request id in the context under the requestid key. The id comes from
// the X-Request-Id header, then chi's RequestID middleware, and is generated otherwise.
// It is echoed back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestid.Header)
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}
		if requestID == "" {
			requestID = requestid.Generate()
		}

		w.Header().Set(requestid.Header, requestID)
		next.ServeHTTP(w, r.WithContext(requestid.ToContext(r.Context(), requestID)))
	})
}
