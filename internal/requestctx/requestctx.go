// Package requestctx carries the metadata the outermost middleware records
// for every request.
package requestctx

import (
	"context"
	"time"
)

// Meta identifies one request.
type Meta struct {
	ID       string
	ClientIP string
	Started  time.Time
}

type ctxKey struct{}

func With(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

func From(ctx context.Context) (Meta, bool) {
	m, ok := ctx.Value(ctxKey{}).(Meta)
	return m, ok
}

// ID is the request id, or "" outside a request.
func ID(ctx context.Context) string {
	m, _ := From(ctx)
	return m.ID
}
