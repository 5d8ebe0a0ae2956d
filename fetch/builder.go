package fetch

import "net/http"

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// Descriptor tells the Dispatcher how to read a completed exchange and what
// body to send.
type Descriptor struct {
	// Text selects Handle.ResponseText over Handle.Response.
	Text bool
	// Body is the request body. Nil means no body.
	Body []byte
}

// Builder configures a Handle for one exchange. Implementations must call
// Open before returning and must not perform I/O.
type Builder interface {
	Build(h Handle) Descriptor
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(h Handle) Descriptor

// Build calls f(h).
func (f BuilderFunc) Build(h Handle) Descriptor { return f(h) }

// BlobRequest builds a GET whose result is the raw response bytes.
func BlobRequest(url string) Builder {
	return BuilderFunc(func(h Handle) Descriptor {
		h.SetResponseType(ResponseBlob)
		h.Open(http.MethodGet, url)
		return Descriptor{Text: false}
	})
}

// TextRequest builds a GET whose result is the response text.
func TextRequest(url string) Builder {
	return BuilderFunc(func(h Handle) Descriptor {
		h.SetResponseType(ResponseText)
		h.Open(http.MethodGet, url)
		return Descriptor{Text: true}
	})
}

// JSONRequest builds a GET whose result is decoded JSON, or the raw text when
// the transport could not decode it.
func JSONRequest(url string) Builder {
	return BuilderFunc(func(h Handle) Descriptor {
		h.SetResponseType(ResponseJSON)
		h.Open(http.MethodGet, url)
		return Descriptor{Text: false}
	})
}

// FormRequest builds a form POST with an opaque text body.
func FormRequest(url, text string) Builder {
	return BuilderFunc(func(h Handle) Descriptor {
		h.Open(http.MethodPost, url)
		h.SetRequestHeader("Content-Type", contentTypeForm)
		return Descriptor{Text: true, Body: []byte(text)}
	})
}

// JSONBodyRequest builds a POST carrying an already encoded JSON body.
func JSONBodyRequest(url string, encoded []byte) Builder {
	return BuilderFunc(func(h Handle) Descriptor {
		h.Open(http.MethodPost, url)
		h.SetRequestHeader("Content-Type", contentTypeJSON)
		return Descriptor{Text: false, Body: encoded}
	})
}
