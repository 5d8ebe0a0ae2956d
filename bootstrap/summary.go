package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/reqkit/component"
)

// Summary prints the components an App started and their health.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	w               io.Writer
}

// NewSummary creates a summary writing to w. A nil w disables output.
func NewSummary(serviceName, version string, w io.Writer) *Summary {
	return &Summary{serviceName: serviceName, version: version, w: w}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes one line per component: its description and live health.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	if s.w == nil {
		return
	}

	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(s.w, "%s %s started in %s\n", s.serviceName, version, s.startupDuration.Round(time.Millisecond))

	all := registry.All()
	healthy := 0
	for i, c := range all {
		prefix := "├──"
		if i == len(all)-1 {
			prefix = "└──"
		}
		h := c.Health(ctx)
		if h.Status == component.StatusHealthy {
			healthy++
		}
		line := fmt.Sprintf("   %s %s %s", prefix, statusIcon(h.Status), c.Name())
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			line += " [" + desc.Type + "]"
			if desc.Details != "" {
				line += " " + desc.Details
			}
		}
		if h.Message != "" {
			line += " (" + h.Message + ")"
		}
		fmt.Fprintln(s.w, line)
	}
	if len(all) > 0 {
		fmt.Fprintf(s.w, "%d/%d components healthy\n", healthy, len(all))
	}
}

func statusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✓"
	case component.StatusDegraded:
		return "!"
	default:
		return "✗"
	}
}
