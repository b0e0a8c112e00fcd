/*
Package observability provides tools for monitoring the automaton engine.

It turns the engine's lifecycle hooks into Prometheus metrics or structured
log records, and lets several hook sets observe the same engine.
*/
package observability
