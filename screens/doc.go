// Package screens holds the modal screens pushed over the active tab.
//
// Screens own all input while on top of the stack and report their scope so
// the footer can show the right bindings.
package screens
