// Package errors defines the error taxonomy shared by every reqkit transport.
//
// Transport packages return their own typed errors (fetch.StatusError,
// hostfetch.HostError, ...) and convert them to an AppError when a caller
// needs a single loggable, serializable shape.
package errors
