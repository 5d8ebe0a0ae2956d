package fetchtest

import (
	"sync"

	"github.com/kbukum/reqkit/fetch"
)

// Factory creates scripted Handles and remembers them.
type Factory struct {
	outcome Outcome

	mu      sync.Mutex
	handles []*Handle
}

// NewFactory creates a Factory whose handles settle with o.
func NewFactory(o Outcome) *Factory {
	return &Factory{outcome: o}
}

// New returns a fresh Handle. Pass f.New to fetch.WithHandleFactory.
func (f *Factory) New() fetch.Handle {
	h := NewHandle(f.outcome)
	f.mu.Lock()
	f.handles = append(f.handles, h)
	f.mu.Unlock()
	return h
}

// Handles returns every Handle created so far.
func (f *Factory) Handles() []*Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Handle, len(f.handles))
	copy(out, f.handles)
	return out
}

// Last returns the most recent Handle, or nil.
func (f *Factory) Last() *Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.handles) == 0 {
		return nil
	}
	return f.handles[len(f.handles)-1]
}
