// Package security builds the TLS settings reqkit's HTTP clients use.
//
// A zero TLSConfig builds to nil, which keeps Go's default verification.
// CAFile adds a private root, CertFile and KeyFile enable mutual TLS.
package security
