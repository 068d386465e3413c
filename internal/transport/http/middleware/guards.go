package middleware

import (
	"net/http"

	"payslip/internal/transport/http/api"
)

// BodyLimit rejects requests that declare a body larger than maxBytes and
// caps the rest while they are read.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", GetRequestID(r.Context()))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeaders marks every response as private and not embeddable. Payslips
// carry salary data, so nothing may be cached on the way.
func SecureHeaders(isProd bool) func(http.Handler) http.Handler {
	headers := map[string]string{
		"Cache-Control":           "no-store, private",
		"Pragma":                  "no-cache",
		"X-Content-Type-Options":  "nosniff",
		"X-Download-Options":      "noopen",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "no-referrer",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	if isProd {
		headers["Strict-Transport-Security"] = "max-age=63072000; includeSubDomains"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range headers {
				w.Header().Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
