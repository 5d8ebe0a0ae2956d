package fetchtest

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/reqkit/component"
	"github.com/kbukum/reqkit/future"
)

// AwaitTimeout bounds Await.
const AwaitTimeout = 5 * time.Second

// Await waits for f to settle and fails the test if it does not within
// AwaitTimeout.
func Await[T any](t testing.TB, f *future.Future[T]) (T, error) {
	t.Helper()
	select {
	case <-f.Done():
		v, _, err := f.Result()
		return v, err
	case <-time.After(AwaitTimeout):
		t.Fatalf("future did not settle within %s", AwaitTimeout)
		var zero T
		return zero, nil
	}
}

// THelper provides testing.T integration for component setup.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T wraps a testing.TB to provide helper methods.
func T(t testing.TB) *THelper {
	return &THelper{
		t:   t,
		ctx: context.Background(),
	}
}

// WithContext sets a custom context for the helper.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Start starts a component and registers cleanup with the test.
// The component will be automatically stopped when the test ends.
func (h *THelper) Start(c component.Component) {
	h.t.Helper()
	if err := c.Start(h.ctx); err != nil {
		h.t.Fatalf("failed to start component %s: %v", c.Name(), err)
	}

	h.t.Cleanup(func() {
		if err := c.Stop(h.ctx); err != nil {
			h.t.Errorf("failed to stop component %s: %v", c.Name(), err)
		}
	})
}
