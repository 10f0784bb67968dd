// Package services implements the business logic layer of the StyleLens
// application. It provides a clean separation between HTTP handlers and the
// analytics pipeline, ensuring that dataset lifecycle rules are centralized
// and testable.
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Domain-focused methods that encapsulate business rules
//
// The DashboardService owns the in-memory dataset registry and routes every
// request through the pure functions in internal/dataprocessing, so handlers
// never touch tables directly.
package services
