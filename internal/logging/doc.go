// Package logging provides the structured logging interface used by the engine
// and the CLI. Components depend on Logger; zerolog is the production backend.
package logging
