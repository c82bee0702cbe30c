// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - model routing, message contracts, command and key registries
// - the session (backend handles, load/connection state, fetch generations)
// - tab policy (the tab registry and the activation/refresh lifecycle)
//
// Not allowed here:
// - concrete screen/modal rendering implementations
// - low-level widget rendering primitives
package core
