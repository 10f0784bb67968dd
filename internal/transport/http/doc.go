// Package http contains the HTTP transport layer of StyleLens. Handlers
// decode requests, delegate to the service layer, and encode responses;
// failures are reported as RFC 7807 problem documents. Handlers own no
// business logic and talk to services through narrow interfaces so tests
// can substitute stubs.
package http
