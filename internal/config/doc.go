// Package config loads, normalizes, and validates bibmend configuration.
//
// Configuration lives in a TOML file resolved from an explicit --config path,
// ~/.config/bibmend/config.toml, or a project-local bibmend.toml, in that
// order. Values absent from the file fall back to repository defaults, paths
// are expanded to absolute form, and structural errors are reported before any
// command runs.
package config
