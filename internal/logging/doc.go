// Package logging assembles the structured slog loggers used across bibmend
// commands and pipeline components.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes standardized field keys so every component tags log lines the same
// way (component, run ID, entry ID, lookup service). The package also provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
