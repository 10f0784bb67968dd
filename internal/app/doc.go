// Package app assembles the StyleLens service: it loads configuration,
// initializes logging and tracing, constructs the service layer, builds the
// chi router with the full middleware chain, and runs the HTTP server with
// graceful shutdown.
//
// The package intentionally contains no business logic. Everything it wires
// lives in internal/services, internal/transport/http, and the supporting
// infrastructure packages, so the assembly stays declarative and the parts
// stay testable in isolation.
package app
