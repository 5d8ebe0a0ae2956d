package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/observability"
	"github.com/kbukum/reqkit/validation"
	"github.com/kbukum/reqkit/version"
)

// DefaultServiceName names the service when the configuration does not.
const DefaultServiceName = "reqkit"

// Config is the complete reqkit configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Fetch         fetch.Config        `yaml:"fetch" mapstructure:"fetch"`
	Host          HostConfig          `yaml:"host" mapstructure:"host"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// HostConfig configures the host transport.
type HostConfig struct {
	// FunctionName is reported when the host function cannot be resolved.
	FunctionName string `yaml:"function_name" mapstructure:"function_name"`
	// Headers are merged under every host request's own headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Disabled leaves the host function unresolved so that host requests
	// fail with TRANSPORT_UNAVAILABLE. Otherwise a net/http client backs it.
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`
}

// ObservabilityConfig configures OTLP tracing and metrics export.
type ObservabilityConfig struct {
	Tracing    bool          `yaml:"tracing" mapstructure:"tracing"`
	Metrics    bool          `yaml:"metrics" mapstructure:"metrics"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Fetch.Name == "" {
		c.Fetch.Name = c.Name + "-fetch"
	}
	if !hasHeader(c.Fetch.Headers, "User-Agent") {
		if c.Fetch.Headers == nil {
			c.Fetch.Headers = make(map[string]string)
		}
		c.Fetch.Headers["User-Agent"] = version.UserAgent()
	}
	c.Fetch.ApplyDefaults()
	if c.Host.FunctionName == "" {
		c.Host.FunctionName = "GM_xmlhttpRequest"
	}
	c.Observability.ApplyDefaults()
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Fetch.Validate(); err != nil {
		return fmt.Errorf("config.fetch: %w", err)
	}
	v := validation.New()
	for name := range c.Host.Headers {
		v.Token("host.headers."+name, name)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if err := validation.Validate(&c.Observability); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// hasHeader reports whether h holds name in any letter case. Viper lowercases
// map keys read from files.
func hasHeader(h map[string]string, name string) bool {
	for k := range h {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// ApplyDefaults fills in zero-value fields.
func (c *ObservabilityConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 30 * time.Second
	}
}

// TracerConfig builds the tracer settings for svc.
func (c *ObservabilityConfig) TracerConfig(svc *ServiceConfig) observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    svc.Name,
		ServiceVersion: svc.Version,
		Environment:    svc.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// MeterConfig builds the meter settings for svc.
func (c *ObservabilityConfig) MeterConfig(svc *ServiceConfig) *observability.MeterConfig {
	return &observability.MeterConfig{
		ServiceName:    svc.Name,
		ServiceVersion: svc.Version,
		Environment:    svc.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.Interval,
	}
}

// Load reads the reqkit configuration, applies defaults and validates it.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(DefaultServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
