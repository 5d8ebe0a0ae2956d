package hostfetch

import (
	"net/http"
	"strings"

	"github.com/kbukum/reqkit/validation"
)

// HostFunc is the privileged host request function. It must invoke exactly
// one of d.OnLoad and d.OnError exactly once, on any goroutine.
type HostFunc func(d Details)

// Response types understood by NativeHost.
const (
	ResponseText        = "text"
	ResponseJSON        = "json"
	ResponseBlob        = "blob"
	ResponseArrayBuffer = "arraybuffer"
)

// Spec describes a host request. Zero fields take the adapter defaults.
type Spec struct {
	// Method defaults to GET.
	Method string `json:"method,omitempty"`
	// URL is the absolute target.
	URL string `json:"url"`
	// Headers are sent as given.
	Headers map[string]string `json:"headers,omitempty"`
	// NoCache asks the host to bypass caches. Nil means true.
	NoCache *bool `json:"nocache,omitempty"`
	// Data is the request body. Nil means no body.
	Data []byte `json:"data,omitempty"`
	// ResponseType hints how the host decodes the body.
	ResponseType string `json:"responseType,omitempty"`
	// Extra carries host-specific fields through untouched.
	Extra map[string]any `json:"-"`
}

// Validate checks the fields the adapter relies on.
func (s Spec) Validate() error {
	v := validation.New().
		Required("url", s.URL).
		HTTPURL("url", s.URL).
		Token("method", s.Method).
		OneOf("response_type", s.ResponseType, []string{ResponseText, ResponseJSON, ResponseBlob, ResponseArrayBuffer})
	for name := range s.Headers {
		v.Token("headers."+name, name)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Bool returns a pointer to b, for Spec.NoCache.
func Bool(b bool) *bool { return &b }

// Details is what the host function receives: the Spec with defaults applied
// plus the completion callbacks installed by the adapter.
type Details struct {
	Method       string
	URL          string
	Headers      map[string]string
	NoCache      bool
	Data         []byte
	ResponseType string
	Extra        map[string]any

	// OnLoad reports a completed exchange.
	OnLoad func(r Response)
	// OnError reports a failed exchange with the host's raw error value.
	OnError func(raw any)
}

// Response is what a host reports on load.
type Response struct {
	Status          int
	StatusText      string
	ReadyState      int
	FinalURL        string
	ResponseHeaders string
	ResponseText    string
	// Response is the body decoded for the requested response type.
	Response any
}

// merge applies defaults under caller fields. Caller headers win over
// default headers.
func merge(defaults map[string]string, s Spec) Details {
	d := Details{
		Method:       http.MethodGet,
		URL:          s.URL,
		NoCache:      true,
		Data:         s.Data,
		ResponseType: s.ResponseType,
		Extra:        s.Extra,
	}
	if s.Method != "" {
		d.Method = strings.ToUpper(s.Method)
	}
	if s.NoCache != nil {
		d.NoCache = *s.NoCache
	}
	if len(defaults)+len(s.Headers) > 0 {
		d.Headers = make(map[string]string, len(defaults)+len(s.Headers))
		for k, v := range defaults {
			d.Headers[k] = v
		}
		for k, v := range s.Headers {
			d.Headers[k] = v
		}
	}
	return d
}
