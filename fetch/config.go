package fetch

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/kbukum/reqkit/security"
	"github.com/kbukum/reqkit/validation"
)

const defaultName = "fetch"

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the standard transport.
type Config struct {
	// Name identifies the dispatcher in logs, spans and the component registry.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL resolves relative URLs passed to Handle.Open.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,http_url"`

	// Headers are default headers applied to every request. Builders may
	// override them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// CookieJar enables an in-memory jar for credentialed exchanges when Jar
	// is nil.
	CookieJar bool `yaml:"cookie_jar" mapstructure:"cookie_jar"`

	// TLS configures the default client. Ignored when Client is set.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Auth is forwarded on credentialed exchanges only.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Jar holds cookies read and written by credentialed exchanges.
	Jar http.CookieJar `yaml:"-" mapstructure:"-"`

	// Client performs the requests. New builds one from TLS when nil. The
	// client carries no jar so that cookies only move when the credential
	// flag is set.
	Client Doer `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
}

// NewHTTPClient returns the client used when Config.Client is nil. A nil or
// empty tlsCfg keeps Go's default transport.
func NewHTTPClient(tlsCfg *security.TLSConfig) (*http.Client, error) {
	tc, err := tlsCfg.Build()
	if err != nil {
		return nil, err
	}
	if tc == nil {
		return &http.Client{}, nil
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tc
	return &http.Client{Transport: transport}, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	for name := range c.Headers {
		v.Token("headers."+name, name)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// resolve joins a relative target onto BaseURL. Absolute targets and an
// empty BaseURL leave the target untouched.
func (c *Config) resolve(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() || c.BaseURL == "" {
		return u, nil
	}
	base, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + "/")
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(&url.URL{
		Path:     strings.TrimLeft(u.Path, "/"),
		RawQuery: u.RawQuery,
		Fragment: u.Fragment,
	}), nil
}
