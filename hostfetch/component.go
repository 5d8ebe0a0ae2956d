package hostfetch

import (
	"context"

	"github.com/kbukum/reqkit/component"
)

// Component wraps an Adapter with lifecycle management. Start fails when the
// host function is missing.
type Component struct {
	adapter *Adapter
	host    HostFunc
	opts    []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a hostfetch component. The adapter is created in Start.
func NewComponent(host HostFunc, opts ...Option) *Component {
	return &Component{host: host, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string { return "hostfetch" }

// Start creates the adapter.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.host, c.opts...)
	if err != nil {
		return err
	}
	c.adapter = a
	return nil
}

// Stop drops the adapter. Requests already handed to the host still settle.
func (c *Component) Stop(_ context.Context) error {
	c.adapter = nil
	return nil
}

// Health reports healthy once the adapter exists.
func (c *Component) Health(_ context.Context) component.Health {
	if c.adapter == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "host function not resolved"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns component description for the startup summary.
func (c *Component) Describe() component.Description {
	details := DefaultFunctionName
	if c.adapter != nil {
		details = c.adapter.Name()
	}
	return component.Description{
		Name:    "Host transport",
		Type:    "hostfetch",
		Details: details,
	}
}

// Adapter returns the underlying adapter. Must be called after Start.
func (c *Component) Adapter() *Adapter {
	return c.adapter
}
