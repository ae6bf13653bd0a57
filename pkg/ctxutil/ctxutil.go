// Package ctxutil carries request-scoped values between HTTP middleware
// and the layers below without those layers importing net/http.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	principalKey struct{}
	requestIDKey struct{}
	clientIPKey  struct{}
)

// Principal is the authenticated account behind a request. Role is kept
// as its wire name so this package stays free of domain types.
type Principal struct {
	ID   uuid.UUID
	Name string
	Role string
}

// WithPrincipal stores the authenticated account in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromCtx returns the authenticated account. ok is false for
// anonymous requests and for a principal with a nil ID.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.ID == uuid.Nil {
		return Principal{}, false
	}
	return p, true
}

// WithRequestID tags ctx with the correlation id echoed in X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the correlation id, or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithClientIP stores the originating client address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromCtx returns the client address, or "". Activity logs
// record it and the auth rate limiter keys on it.
func ClientIPFromCtx(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
