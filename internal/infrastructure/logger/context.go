package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// PrincipalIDKey is the context key for the authenticated principal
	PrincipalIDKey contextKey = "principal_id"
	// TenantIDKey is the context key for the session's current tenant
	TenantIDKey contextKey = "tenant_id"
	// PeriodIDKey is the context key for the session's current period
	PeriodIDKey contextKey = "period_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger
// if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns the enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithPrincipalID adds the principal ID to context and returns the
// enriched logger
func WithPrincipalID(ctx context.Context, logger *zap.Logger, principalID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, PrincipalIDKey, principalID)
	enriched := logger.With(zap.String("principal_id", principalID))
	return WithContext(ctx, enriched), enriched
}

// WithScope adds the session's (tenant, period) pair to context and
// returns the enriched logger. Empty values are skipped.
func WithScope(ctx context.Context, logger *zap.Logger, tenantID, periodID string) (context.Context, *zap.Logger) {
	enriched := logger
	if tenantID != "" {
		ctx = context.WithValue(ctx, TenantIDKey, tenantID)
		enriched = enriched.With(zap.String("tenant_id", tenantID))
	}
	if periodID != "" {
		ctx = context.WithValue(ctx, PeriodIDKey, periodID)
		enriched = enriched.With(zap.String("period_id", periodID))
	}
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetPrincipalID retrieves the principal ID from context
func GetPrincipalID(ctx context.Context) string {
	if principalID, ok := ctx.Value(PrincipalIDKey).(string); ok {
		return principalID
	}
	return ""
}

// GetTenantID retrieves the session's tenant ID from context
func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(TenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}

// GetPeriodID retrieves the session's period ID from context
func GetPeriodID(ctx context.Context) string {
	if periodID, ok := ctx.Value(PeriodIDKey).(string); ok {
		return periodID
	}
	return ""
}

// WithTraceContext adds trace_id and span_id to the logger from the
// context's span. If no valid span exists, returns the logger unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return logger
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
