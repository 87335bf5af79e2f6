// Package net carries request-scoped helpers shared by the HTTP and bot
// surfaces, mainly the request id plumbing
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stamps the request id onto ctx. Stored under chi's key,
// so chimw.GetReqID and our RequestID read the same value
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// RequestID reads the request id off ctx, empty when absent
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
