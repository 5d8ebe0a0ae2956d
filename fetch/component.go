package fetch

import (
	"context"
	"net/http"

	"github.com/kbukum/reqkit/component"
)

// Component wraps a Dispatcher with lifecycle management.
type Component struct {
	dispatcher *Dispatcher
	config     Config
	opts       []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a fetch component. The dispatcher is created in Start.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.config.Name == "" {
		return defaultName
	}
	return c.config.Name
}

// Start creates the dispatcher.
func (c *Component) Start(_ context.Context) error {
	d, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.dispatcher = d
	return nil
}

// Stop releases idle connections held by the default client. In-flight
// exchanges still settle.
func (c *Component) Stop(_ context.Context) error {
	if c.dispatcher == nil {
		return nil
	}
	if hc, ok := c.dispatcher.config.Client.(*http.Client); ok {
		hc.CloseIdleConnections()
	}
	c.dispatcher = nil
	return nil
}

// Health reports healthy once the dispatcher exists.
func (c *Component) Health(_ context.Context) component.Health {
	if c.dispatcher == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns component description for the startup summary.
func (c *Component) Describe() component.Description {
	details := c.config.BaseURL
	if details == "" {
		details = "no base url"
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "fetch",
		Details: details,
	}
}

// Dispatcher returns the underlying dispatcher. Must be called after Start.
func (c *Component) Dispatcher() *Dispatcher {
	return c.dispatcher
}
