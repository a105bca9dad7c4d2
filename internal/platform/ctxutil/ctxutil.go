// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries the per-request correlation id, logger and caller
// through a [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shophub/internal/platform/ctxkey"
	"github.com/taibuivan/shophub/internal/platform/sec"
)

// # Correlation

// WithRequestID attaches the X-Request-ID value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// RequestID returns the X-Request-ID value, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// Logger returns the request-scoped logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Caller

/*
WithCaller attaches the verified token claims and tags the request logger
with the caller's user id, so every later log line names the account.
*/
func WithCaller(ctx context.Context, claims *sec.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, ctxkey.KeyUser, claims)
	if id := CallerID(ctx); id != "" {
		ctx = WithLogger(ctx, Logger(ctx).With(slog.String("user_id", id)))
	}
	return ctx
}

// Caller returns the claims set by the access gate, or nil on public routes.
func Caller(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}

// CallerID returns the caller's userid claim, falling back to the sub claim.
func CallerID(ctx context.Context) string {
	claims := Caller(ctx)
	switch {
	case claims == nil:
		return ""
	case claims.UserID != "":
		return claims.UserID
	default:
		return claims.Subject
	}
}
