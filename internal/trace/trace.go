// Package trace tags each user operation with an id so the log records it
// produces across packages can be correlated.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ContextKey type for context keys
type ContextKey string

const (
	// OperationIDKey is the context key for the operation id
	OperationIDKey ContextKey = "operation_id"
)

// GenerateOperationID creates a unique operation id
func GenerateOperationID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("op_%d", time.Now().UnixNano())
	}
	return "op_" + hex.EncodeToString(bytes)
}

// WithOperationID returns ctx carrying a fresh operation id. An id already
// present is kept, so nested calls share their caller's id.
func WithOperationID(ctx context.Context) context.Context {
	if GetOperationID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, OperationIDKey, GenerateOperationID())
}

// GetOperationID extracts the operation id from context
func GetOperationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(OperationIDKey).(string); ok {
		return id
	}
	return ""
}
