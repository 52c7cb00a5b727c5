// Package gql wires the GraphQL schema to the resource services.
package gql

import (
	"context"

	"taskdeck.org/internal/identity"
	"taskdeck.org/internal/task"
)

// RequestContext carries the service handles into the resolver layer. The
// HTTP handler constructs it once per request and attaches it to the request
// context; it is never shared across requests as mutable state.
type RequestContext struct {
	Users *identity.Service
	Tasks *task.Service
}

type requestContextKey struct{}

// WithRequestContext attaches the per-request service handles.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom extracts the per-request service handles.
func RequestContextFrom(ctx context.Context) (*RequestContext, bool) {
	if ctx == nil {
		return nil, false
	}
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}
