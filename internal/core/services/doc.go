// Package services implements the driving port interfaces.
// Services hold the search pipeline and conversation state and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO and no I/O of their own.
package services
