package notify

import (
	"context"
	"time"

	"soapee/backend/internal/logging"
)

// dispatchTimeout is the max time allowed for a single async dispatch.
const dispatchTimeout = 10 * time.Second

// Dispatch runs fn in a goroutine with a short timeout so the caller is not
// blocked and its cancellation does not abort the in-flight send. Use for
// fire-and-forget, best-effort side effects; failures are logged under op
// and never reach the caller.
func Dispatch(log logging.Logger, op string, fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := fn(ctx); err != nil && log != nil {
			log.Error(ctx, "async dispatch failed", "op", op, "error", err)
		}
	}()
}
