// Package future provides a single-shot asynchronous result.
//
// A Future starts pending and settles at most once, either resolved with a
// value or rejected with an error. Settlement attempts after the first are
// ignored, so a transport that reports completion twice cannot change an
// observed outcome.
//
//	f := future.New[string]()
//	go func() { f.Resolve("hello") }()
//	v, err := f.Await(ctx)
package future
