package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"payslip/internal/transport/http/api"
)

func Recoverer(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				reqID := GetRequestID(r.Context())
				log.WithFields(logrus.Fields{
					"panic":     rec,
					"requestId": reqID,
					"stack":     string(debug.Stack()),
				}).Error("handler panic")
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
