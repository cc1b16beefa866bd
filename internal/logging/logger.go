package logging

import (
	"context"
	"log"
	"strings"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID extracts the request ID set by the request ID middleware.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides request-scoped structured logging
type Logger struct {
	requestID string
	debug     bool
}

var level = "info"

// SetLevel sets the minimum level; only "debug" enables LogDebugf output.
func SetLevel(l string) {
	level = strings.ToLower(strings.TrimSpace(l))
}

// New creates a logger bound to the request in ctx
func New(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID, debug: level == "debug"}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	log.Printf("[error] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

// LogDebugf logs a formatted debug message when LOG_LEVEL=debug
func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	if !l.debug {
		return
	}
	log.Printf("[debug] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
