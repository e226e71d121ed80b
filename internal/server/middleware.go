package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"codeberg.org/mutker/procmon/internal/logger"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
)

const requestIDHeader = "X-Request-ID"

type contextKey struct{}

// requestID propagates the caller's X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	})
}

// RequestID returns the request ID stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// accessLog writes one structured line per request. The request ID is read
// from the header, since the logging handler sees the request after the
// router has run.
func accessLog(log logger.Logger) handlers.LogFormatter {
	return func(_ io.Writer, p handlers.LogFormatterParams) {
		event := log.Info()
		if p.StatusCode >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("request_id", p.Request.Header.Get(requestIDHeader)).
			Str("method", p.Request.Method).
			Str("path", p.URL.Path).
			Int("status", p.StatusCode).
			Int("size", p.Size).
			Dur("duration", time.Since(p.TimeStamp)).
			Msg("HTTP request")
	}
}

type recoveryLogger struct {
	log logger.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error().Interface("panic", v).Msg("Recovered from panic")
}
