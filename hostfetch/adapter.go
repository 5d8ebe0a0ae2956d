package hostfetch

import (
	"context"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/reqkit/errors"
	"github.com/kbukum/reqkit/future"
	"github.com/kbukum/reqkit/logger"
	"github.com/kbukum/reqkit/observability"
)

const (
	// TransportHost labels exchanges of the host transport.
	TransportHost = "host"
	// DefaultFunctionName names the host function in errors and logs.
	DefaultFunctionName = "GM_xmlhttpRequest"
)

// ErrTransportUnavailable is matched by errors.Is when New is given no host
// function.
var ErrTransportUnavailable = errors.New("hostfetch: host function unavailable")

// Adapter issues requests through a host function.
type Adapter struct {
	host    HostFunc
	name    string
	headers map[string]string
	metrics *observability.Metrics
	log     *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithFunctionName sets the host function name used in errors and logs.
func WithFunctionName(name string) Option {
	return func(a *Adapter) { a.name = name }
}

// WithDefaultHeaders sets headers sent with every request. Spec headers win.
func WithDefaultHeaders(h map[string]string) Option {
	return func(a *Adapter) { a.headers = h }
}

// WithLogger sets the adapter logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// WithMetrics enables exchange metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// New creates an Adapter over host. A nil host is logged and reported with
// an error matching ErrTransportUnavailable.
func New(host HostFunc, opts ...Option) (*Adapter, error) {
	a := &Adapter{host: host, name: DefaultFunctionName}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get(logger.ComponentHostFetch)
	}
	if host == nil {
		err := apperrors.TransportUnavailable(a.name).WithCause(ErrTransportUnavailable)
		a.log.Error(err.Message, logger.Fields("function", a.name))
		return nil, err
	}
	return a, nil
}

// MustNew is like New but panics when the host function is missing.
func MustNew(host HostFunc, opts ...Option) *Adapter {
	a, err := New(host, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the host function name.
func (a *Adapter) Name() string { return a.name }

// Request hands spec to the host function and returns a Future settled by
// the host's callback. It resolves with the decoded response body and
// rejects with a *HostError. An invalid spec rejects without calling the
// host. ctx carries tracing and logging context only.
func (a *Adapter) Request(ctx context.Context, spec Spec) *future.Future[any] {
	if err := spec.Validate(); err != nil {
		return future.Rejected[any](err)
	}

	f := future.New[any]()
	d := merge(a.headers, spec)

	id := uuid.NewString()
	log := a.log.WithFields(logger.ExchangeFields(id, TransportHost, d.Method, d.URL))
	ex := observability.StartExchange(ctx, a.metrics, TransportHost, d.Method, d.URL, id)

	d.OnLoad = func(r Response) {
		ex.End(r.Status, nil)
		if f.Resolve(r.Response) {
			log.Debug("host exchange loaded", logger.MergeWithDuration(
				logger.Fields(logger.FieldStatus, r.Status), ex.Duration()))
		}
	}
	d.OnError = func(raw any) {
		hostErr := Sanitize(raw)
		ex.End(hostErr.Status, hostErr)
		if f.Reject(hostErr) {
			if a.metrics != nil {
				a.metrics.RecordError(ex.Context(), string(apperrors.ErrCodeHostError), logger.ComponentHostFetch)
			}
			log.Debug("host exchange failed", logger.Fields(
				logger.FieldStatus, hostErr.Status, logger.FieldError, hostErr.String()))
		}
	}

	log.Debug("host exchange started", logger.Fields("nocache", d.NoCache))
	a.host(d)
	return f
}
