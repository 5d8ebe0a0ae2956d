// Package component defines the lifecycle interfaces shared by the reqkit
// transports.
//
// A Component is started before use and stopped on shutdown. The Registry
// starts components in registration order and stops them in reverse, so an
// application can own a Dispatcher and a host Adapter side by side.
//
// # Interfaces
//
//   - Component: Core lifecycle interface (Start/Stop/Health)
//   - Describable: One-line startup summaries
package component
