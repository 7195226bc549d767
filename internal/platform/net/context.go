// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUserID  ctxKey = "user_id"
	keyQueryID ctxKey = "query_id"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// WithQuery annotates context with the query id once one is assigned
func WithQuery(ctx context.Context, queryID string) context.Context {
	if queryID != "" {
		ctx = context.WithValue(ctx, keyQueryID, queryID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// QueryID returns the query id on the context if present
func QueryID(ctx context.Context) string {
	if v, ok := ctx.Value(keyQueryID).(string); ok {
		return v
	}
	return ""
}
