package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

// Logger creates a middleware wrapper around a zap Sugared logger that logs
// HTTP requests. Query strings are hashed so booking values never reach the log.
func Logger(l *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			lw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			h.ServeHTTP(lw, r)
			status := lw.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logString := newRequestLogger().
				requestID(middleware.GetReqID(r.Context())).
				requestType(r.Method).
				request(r.URL.Path).
				params(r.URL.RawQuery).
				status(status).
				size(lw.BytesWritten()).
				duration(time.Since(t1)).
				render()
			if status < 500 {
				l.Info(logString.String())
			} else {
				l.Warn(logString.String())
			}
		}
		return http.HandlerFunc(fn)
	}
}
