package trace

import (
	"net/http"
	"runtime/debug"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Middleware struct {
	logger *zap.Logger
	debug  bool
	tracer trace.Tracer
}

func NewMiddleware(logger *zap.Logger, debug bool) *Middleware {
	return &Middleware{
		logger: logger,
		debug:  debug,
		tracer: otel.Tracer("trace/middleware"),
	}
}

// TraceMiddleware opens a request-scoped span, continuing a remote trace
// when the incoming headers carry one.
func (m *Middleware) TraceMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := m.tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		logger := logutil.WithContext(ctx, m.logger)
		logger.Debug("Request received",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))

		next(w, r.WithContext(ctx))
	}
}

// RecoverMiddleware turns handler panics into a 500 instead of tearing the
// server down.
func (m *Middleware) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				}
				if m.debug {
					fields = append(fields, zap.ByteString("stack", debug.Stack()))
				}
				m.logger.Error("Recovered from panic in handler", fields...)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}
