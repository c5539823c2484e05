package testutil

import (
	"context"
	"time"

	"flightsurety/pkg/domain"
	"flightsurety/pkg/requestcontext"
)

// CallerContext returns ctx acting as caller at a fixed request time, the way
// the auth and requesttime middleware would populate it.
func CallerContext(ctx context.Context, caller domain.Address, at time.Time) context.Context {
	ctx = requestcontext.WithCaller(ctx, caller)
	return requestcontext.WithTime(ctx, at)
}
