// Package hostfetch adapts a privileged host request function to the same
// Future contract the fetch package uses.
//
// The host function receives a Details value carrying the request plus two
// completion callbacks and must invoke exactly one of them exactly once:
//
//	a, err := hostfetch.New(hostfetch.NativeHost(http.DefaultClient))
//	if err != nil {
//	    return err // the host function is missing
//	}
//	v, err := a.Request(ctx, hostfetch.Spec{URL: "https://example.com/data"}).Await(ctx)
//
// Hosts report failures with whatever value they like, often a mix of data
// fields and functions. The adapter never exposes that value: it rejects
// with a *HostError built by Sanitize, which copies a fixed set of data
// fields and nothing else.
package hostfetch
