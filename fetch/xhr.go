package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/kbukum/reqkit/logger"
)

// xhr is the net/http implementation of Handle.
type xhr struct {
	cfg *Config
	log *logger.Logger

	mu              sync.Mutex
	method          string
	target          string
	header          http.Header
	withCredentials bool
	responseType    ResponseType
	onLoad          []func()
	onError         []func()
	sent            bool
	status          int
	raw             []byte
	response        any
}

// NewXHR returns a HandleFactory producing net/http backed handles. cfg is
// defaulted in place.
func NewXHR(cfg *Config, log *logger.Logger) HandleFactory {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Get(logger.ComponentFetch)
	}
	return func() Handle {
		return &xhr{cfg: cfg, log: log, header: make(http.Header)}
	}
}

func (x *xhr) Open(method, target string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.method = method
	x.target = target
}

func (x *xhr) SetRequestHeader(name, value string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.header.Set(name, value)
}

func (x *xhr) SetWithCredentials(enabled bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.withCredentials = enabled
}

func (x *xhr) WithCredentials() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.withCredentials
}

func (x *xhr) SetResponseType(rt ResponseType) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.responseType = rt
}

func (x *xhr) OnLoad(fn func()) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.onLoad = append(x.onLoad, fn)
}

func (x *xhr) OnError(fn func()) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.onError = append(x.onError, fn)
}

// Send starts the exchange on its own goroutine. A second Send is ignored.
func (x *xhr) Send(body []byte) {
	x.mu.Lock()
	if x.sent {
		x.mu.Unlock()
		x.log.Warn("handle already sent", logger.Fields(logger.FieldURL, x.target))
		return
	}
	x.sent = true
	req, err := x.newRequest(body)
	x.mu.Unlock()

	if err != nil {
		x.log.Debug("request not sent", logger.ErrorFields("open", err))
		go x.settle(0, nil, false)
		return
	}
	go x.run(req)
}

func (x *xhr) Status() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.status
}

func (x *xhr) Response() any {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.response
}

func (x *xhr) ResponseText() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return string(x.raw)
}

// newRequest must be called with mu held.
func (x *xhr) newRequest(body []byte) (*http.Request, error) {
	if x.method == "" {
		return nil, fmt.Errorf("handle was not opened")
	}
	u, err := x.cfg.resolve(x.target)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", x.target, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	// Exchanges are not cancellable once started.
	req, err := http.NewRequestWithContext(context.Background(), x.method, u.String(), reader)
	if err != nil {
		return nil, err
	}

	for k, v := range x.cfg.Headers {
		req.Header.Set(k, v)
	}
	for k, vs := range x.header {
		req.Header[k] = vs
	}

	if x.withCredentials {
		if x.cfg.Jar != nil {
			for _, c := range x.cfg.Jar.Cookies(req.URL) {
				req.AddCookie(c)
			}
		}
		x.cfg.Auth.apply(req)
	}
	return req, nil
}

func (x *xhr) run(req *http.Request) {
	resp, err := x.cfg.Client.Do(req)
	if err != nil {
		x.log.Debug("exchange failed", logger.ErrorFields("do", err))
		x.settle(0, nil, false)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		x.log.Debug("reading response body failed", logger.ErrorFields("read", err))
		x.settle(0, nil, false)
		return
	}

	x.mu.Lock()
	credentialed := x.withCredentials
	x.mu.Unlock()
	if credentialed && x.cfg.Jar != nil {
		if cookies := resp.Cookies(); len(cookies) > 0 {
			x.cfg.Jar.SetCookies(req.URL, cookies)
		}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	x.settle(resp.StatusCode, data, ok)
}

// settle records the result and fires exactly one observer list.
func (x *xhr) settle(status int, data []byte, ok bool) {
	x.mu.Lock()
	x.status = status
	x.raw = data
	if ok {
		x.response = x.decode(data)
	}
	observers := x.onError
	if ok {
		observers = x.onLoad
	}
	x.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// decode must be called with mu held.
func (x *xhr) decode(data []byte) any {
	switch x.responseType {
	case ResponseBlob:
		return data
	case ResponseJSON:
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			return v
		}
		return string(data)
	default:
		return string(data)
	}
}
