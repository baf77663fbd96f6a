package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger logs every HTTP request once it completes
func RequestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				level := zapcore.InfoLevel
				if ww.Status() >= 500 {
					level = zapcore.ErrorLevel
				} else if ww.Status() >= 400 {
					level = zapcore.WarnLevel
				}

				if ce := logger.Check(level, "Request completed"); ce != nil {
					ce.Write(
						zap.String("request_id", middleware.GetReqID(r.Context())),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Int("status", ww.Status()),
						zap.Int("bytes_out", ww.BytesWritten()),
						zap.Duration("latency", time.Since(start)),
					)
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
