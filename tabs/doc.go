// Package tabs implements the six dashboard tabs.
//
// Each tab owns its control values and fetched data, renders through the
// widgets package, and exposes a Fetch command the core model dispatches on
// first activation or explicit refresh.
package tabs
