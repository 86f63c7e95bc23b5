// Package config loads and validates the TOML configuration file.
//
// Load applies defaults, decodes the file when present, expands and
// normalizes paths, and validates the result. A missing file yields a
// fully-defaulted configuration so read-only commands work out of the box.
package config
