package fetch

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/reqkit/future"
	"github.com/kbukum/reqkit/logger"
	"github.com/kbukum/reqkit/observability"
)

// TransportXHR labels exchanges of the standard transport.
const TransportXHR = "xhr"

// Dispatcher runs builders against fresh handles and settles a Future per
// exchange.
type Dispatcher struct {
	config    Config
	newHandle HandleFactory
	metrics   *observability.Metrics
	log       *logger.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHandleFactory replaces the net/http transport.
func WithHandleFactory(f HandleFactory) Option {
	return func(d *Dispatcher) { d.newHandle = f }
}

// WithLogger sets the dispatcher logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithMetrics enables exchange metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New creates a Dispatcher. Unless WithHandleFactory is given, exchanges run
// on net/http configured by cfg.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.CookieJar && cfg.Jar == nil {
		jar, err := NewJar()
		if err != nil {
			return nil, err
		}
		cfg.Jar = jar
	}
	if cfg.Client == nil {
		client, err := NewHTTPClient(cfg.TLS)
		if err != nil {
			return nil, err
		}
		cfg.Client = client
	}

	d := &Dispatcher{config: cfg}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logger.Get(logger.ComponentFetch)
	}
	if d.newHandle == nil {
		d.newHandle = NewXHR(&d.config, d.log)
	}
	return d, nil
}

// Name returns the dispatcher name.
func (d *Dispatcher) Name() string { return d.config.Name }

// Config returns the effective configuration.
func (d *Dispatcher) Config() Config { return d.config }

// Send runs b against a fresh handle and starts the exchange. The returned
// Future resolves with the response text when the descriptor asks for text
// and with the decoded response otherwise. Any failure rejects with a
// *StatusError. ctx carries tracing and logging context only; it does not
// bound the exchange.
func (d *Dispatcher) Send(ctx context.Context, b Builder) *future.Future[any] {
	f := future.New[any]()
	h := &recorder{Handle: d.newHandle()}
	desc := b.Build(h)

	id := uuid.NewString()
	log := d.log.WithFields(logger.ExchangeFields(id, TransportXHR, h.method, h.url))
	ex := observability.StartExchange(ctx, d.metrics, TransportXHR, h.method, h.url, id)

	h.OnLoad(func() {
		var v any
		if desc.Text {
			v = h.ResponseText()
		} else {
			v = h.Response()
		}
		ex.End(h.Status(), nil)
		if f.Resolve(v) {
			log.Debug("exchange loaded", logger.MergeWithDuration(
				logger.Fields(logger.FieldStatus, h.Status()), ex.Duration()))
		}
	})
	h.OnError(func() {
		err := &StatusError{Status: h.Status()}
		ex.End(err.Status, err)
		if f.Reject(err) {
			if d.metrics != nil {
				d.metrics.RecordError(ex.Context(), err.Code().String(), d.config.Name)
			}
			log.Debug("exchange failed", logger.MergeWithError(
				logger.Fields(logger.FieldStatus, err.Status), err))
		}
	})

	log.Debug("exchange started", logger.Fields("credentials", h.WithCredentials(), "text", desc.Text))
	h.Send(desc.Body)
	return f
}

// recorder remembers what a builder opened so that logs and spans can name
// the exchange.
type recorder struct {
	Handle
	method string
	url    string
}

func (r *recorder) Open(method, url string) {
	r.method = method
	r.url = url
	r.Handle.Open(method, url)
}
