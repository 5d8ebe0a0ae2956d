// Package fetch builds and dispatches HTTP exchanges over an
// XMLHttpRequest-shaped transport handle.
//
// A Builder configures a fresh Handle and returns a Descriptor telling the
// Dispatcher how to read the result. Builders compose: WithCredentials wraps
// any Builder to forward ambient credentials without touching the builder
// itself.
//
// # Basic Usage
//
//	d, err := fetch.New(fetch.Config{BaseURL: "https://api.example.com"})
//
//	text, err := d.GetText(ctx, "/motd").Await(ctx)
//	data, err := d.GetJSONWithCredentials(ctx, "/me").Await(ctx)
//
// # Custom Builders
//
//	b := fetch.BuilderFunc(func(h fetch.Handle) fetch.Descriptor {
//	    h.Open(http.MethodPut, "/items/1")
//	    h.SetRequestHeader("Content-Type", "text/plain")
//	    return fetch.Descriptor{Text: true, Body: []byte("x")}
//	})
//	v, err := d.Send(ctx, fetch.WithCredentials(b)).Await(ctx)
//
// Every failure of the standard transport, whether the network failed or the
// server answered with a non-2xx status, rejects with a *StatusError carrying
// the status exactly as observed (0 when no response arrived). Exchanges are
// never retried and cannot be cancelled.
package fetch
