package middleware

import (
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AccessLog emits one structured log line per request and stores a
// request-scoped logger in the context for handlers to use.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rid := chiMid.GetReqID(r.Context())

			reqLog := log
			if rid != "" {
				reqLog = log.With(zap.String("request_id", rid))
			}
			ctx := WithLogger(r.Context(), reqLog)

			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			reqLog.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.Status()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("remote_ip", clientIP(r)),
				zap.Bool("htmx", IsHTMX(r.Context())),
			)
		})
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
