// Package fetchtest provides scripted transport handles and lifecycle
// helpers for testing code built on the fetch package.
//
// A Factory hands out Handles that record how a builder configured them and
// settle with a scripted Outcome instead of touching the network:
//
//	f := fetchtest.NewFactory(fetchtest.Loaded(200, "hello"))
//	d, _ := fetch.New(fetch.Config{}, fetch.WithHandleFactory(f.New))
//
//	v, err := fetchtest.Await(t, d.Send(ctx, fetch.TextRequest("/x")))
//	if f.Last().CredentialCalls() != 0 { ... }
//
// Components are started with automatic cleanup:
//
//	fetchtest.T(t).Start(fetch.NewComponent(cfg))
package fetchtest
