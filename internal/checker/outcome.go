package checker

import (
	"context"
	"sync"
	"time"

	"github.com/axellelanca/refcheck/internal/models"
)

// outcome is a single-shot result slot. Several events race to settle it;
// only the first one is kept.
type outcome struct {
	once   sync.Once
	done   chan struct{}
	status models.Status
	reason string
}

func newOutcome() *outcome {
	return &outcome{done: make(chan struct{})}
}

// settle stores the result if nothing was stored yet and reports whether it won.
func (o *outcome) settle(status models.Status, reason string) bool {
	won := false
	o.once.Do(func() {
		o.status = status
		o.reason = reason
		won = true
		close(o.done)
	})
	return won
}

// result must only be called after settle has been called at least once.
func (o *outcome) result() (models.Status, string) {
	<-o.done
	return o.status, o.reason
}

// awaitFirst blocks until o is settled. If timeout elapses or ctx ends first,
// it settles o as unknown itself; either way the winning result is returned.
func awaitFirst(ctx context.Context, o *outcome, timeout time.Duration) (models.Status, string) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-o.done:
	case <-timer.C:
		o.settle(models.StatusUnknown, "timeout")
	case <-ctx.Done():
		o.settle(models.StatusUnknown, "cancelled")
	}
	return o.result()
}
