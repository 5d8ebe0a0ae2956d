package fetchtest

import (
	"net/http"
	"sync"

	"github.com/kbukum/reqkit/fetch"
)

// Outcome scripts how a Handle settles.
type Outcome struct {
	// Fail fires the error observers instead of the load observers.
	Fail bool
	// Status is reported by Handle.Status.
	Status int
	// Text is reported by Handle.ResponseText.
	Text string
	// Response is reported by Handle.Response.
	Response any
	// FireBoth fires the load observers and then the error observers,
	// imitating a transport that settles twice.
	FireBoth bool
}

// Loaded scripts a successful exchange whose text and response are both text.
func Loaded(status int, text string) Outcome {
	return Outcome{Status: status, Text: text, Response: text}
}

// LoadedWith scripts a successful exchange with a distinct decoded response.
func LoadedWith(status int, text string, response any) Outcome {
	return Outcome{Status: status, Text: text, Response: response}
}

// Failed scripts a failed exchange. Use status 0 for a network failure.
func Failed(status int) Outcome {
	return Outcome{Fail: true, Status: status}
}

// Handle is a scripted fetch.Handle that records its configuration.
type Handle struct {
	outcome Outcome

	mu              sync.Mutex
	method          string
	url             string
	header          http.Header
	withCredentials bool
	credentialCalls int
	responseType    fetch.ResponseType
	onLoad          []func()
	onError         []func()
	sends           int
	body            []byte
}

var _ fetch.Handle = (*Handle)(nil)

// NewHandle creates a Handle settling with o.
func NewHandle(o Outcome) *Handle {
	return &Handle{outcome: o, header: make(http.Header)}
}

func (h *Handle) Open(method, url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.method = method
	h.url = url
}

func (h *Handle) SetRequestHeader(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.header.Set(name, value)
}

func (h *Handle) SetWithCredentials(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.withCredentials = enabled
	h.credentialCalls++
}

func (h *Handle) WithCredentials() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.withCredentials
}

func (h *Handle) SetResponseType(rt fetch.ResponseType) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responseType = rt
}

func (h *Handle) OnLoad(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLoad = append(h.onLoad, fn)
}

func (h *Handle) OnError(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onError = append(h.onError, fn)
}

// Send records body and settles on a new goroutine.
func (h *Handle) Send(body []byte) {
	h.mu.Lock()
	h.sends++
	h.body = body
	load, fail := h.onLoad, h.onError
	h.mu.Unlock()

	go func() {
		switch {
		case h.outcome.FireBoth:
			fire(load)
			fire(fail)
		case h.outcome.Fail:
			fire(fail)
		default:
			fire(load)
		}
	}()
}

func fire(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func (h *Handle) Status() int { return h.outcome.Status }

func (h *Handle) Response() any { return h.outcome.Response }

func (h *Handle) ResponseText() string { return h.outcome.Text }

// Method returns the method passed to Open.
func (h *Handle) Method() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.method
}

// URL returns the URL passed to Open.
func (h *Handle) URL() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.url
}

// Header returns a request header set by the builder.
func (h *Handle) Header(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.header.Get(name)
}

// CredentialCalls counts SetWithCredentials calls.
func (h *Handle) CredentialCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.credentialCalls
}

// ResponseType returns the response type hint set by the builder.
func (h *Handle) ResponseType() fetch.ResponseType {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.responseType
}

// Body returns the body passed to Send.
func (h *Handle) Body() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.body
}

// Sends counts Send calls.
func (h *Handle) Sends() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sends
}
