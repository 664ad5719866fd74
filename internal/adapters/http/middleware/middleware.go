// Package middleware holds the HTTP middlewares shared by every route:
// panic recovery, request IDs, access logging and Prometheus metrics.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/coinrng/pkg/logger"
	"github.com/okian/coinrng/pkg/metrics"
)

// HeaderRequestID carries the request identifier in both directions.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen bounds client-supplied request IDs.
const maxRequestIDLen = 128

// HTTP status code constants.
const (
	statusBadRequest          = 400
	statusNotFound            = 404
	statusMethodNotAllowed    = 405
	statusUnprocessableEntity = 422
	statusTooManyRequests     = 429
	statusInternalError       = 500
)

type requestIDKey struct{}

// RequestIDFromContext returns the ID assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID propagates the client's X-Request-ID or assigns a new UUID. The
// ID is echoed in the response and bound to the request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(logger.String("request_id", id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLog logs one line per request at info level, or warn for 5xx.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)

		next.ServeHTTP(wrapped, r)

		ctx := r.Context()
		fields := []logger.Field{
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", wrapped.statusCode),
			logger.Int("bytes", wrapped.written),
			logger.Duration("duration", time.Since(start)),
		}
		if wrapped.statusCode >= statusInternalError {
			logger.FromContext(ctx).Warn(ctx, "request failed", fields...)
			return
		}
		logger.FromContext(ctx).Info(ctx, "request served", fields...)
	})
}

// Recover turns a handler panic into a 500 JSON response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := wrap(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			ctx := r.Context()
			logger.FromContext(ctx).Error(ctx, "handler panic",
				logger.String("path", r.URL.Path),
				logger.Any("panic", fmt.Sprint(rec)),
			)
			if wrapped.wroteHeader {
				return
			}
			wrapped.Header().Set("Content-Type", "application/json")
			wrapped.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(wrapped).Encode(map[string]string{"detail": "Internal Server Error"})
		}()
		next.ServeHTTP(wrapped, r)
	})
}

// Metrics wraps HTTP handlers to record Prometheus metrics.
func Metrics(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.AddInFlight(1)
		defer metrics.AddInFlight(-1)

		wrapped := wrap(w)

		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		statusCodeStr := strconv.Itoa(wrapped.statusCode)

		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr, durationMs)

		if wrapped.statusCode >= statusBadRequest {
			metrics.RecordError(endpoint, r.Method, ErrorType(wrapped.statusCode), ErrorSeverity(wrapped.statusCode))
		}
	}
}

// ErrorType returns a standardized error type based on HTTP status code.
func ErrorType(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "server_error"
	case statusCode == statusUnprocessableEntity:
		return "validation_error"
	case statusCode == statusTooManyRequests:
		return "rate_limit"
	case statusCode == statusMethodNotAllowed:
		return "method_not_allowed"
	case statusCode == statusNotFound:
		return "not_found"
	case statusCode >= statusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// ErrorSeverity returns error severity based on HTTP status code.
func ErrorSeverity(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "high"
	case statusCode >= statusBadRequest:
		return "medium"
	default:
		return "low"
	}
}

// responseWriter wraps http.ResponseWriter to capture status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

// wrap reuses an existing wrapper so stacked middlewares observe the same status.
func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
