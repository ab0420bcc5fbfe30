// Package config loads, normalizes, and validates scriptsync configuration.
//
// Configuration lives in a TOML file (default ~/.config/scriptsync/config.toml,
// falling back to ./scriptsync.toml). Every field has a default so a missing
// file is not an error; Load expands ~ in paths, applies environment
// overrides, and rejects values the matcher cannot work with.
package config
