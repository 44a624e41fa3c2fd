package http_server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := newRequestID()
		logr := logrus.WithFields(logrus.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote_addr": clientAddr(r),
		})
		startedAt := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rec.Header().Set("X-Request-Id", requestID)

		defer func() {
			if p := recover(); p != nil {
				logr.WithField("panic", p).Error("Handler panicked")
				http.Error(rec, "Internal server error", http.StatusInternalServerError)
			}
			logr.WithFields(logrus.Fields{
				"status":   rec.status,
				"duration": time.Since(startedAt).Round(time.Millisecond),
			}).Info("Request finished")
		}()

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), loggerKey{}, logr)))
	})
}
