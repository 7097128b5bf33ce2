// Package config loads, normalizes, and validates texmorph configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts) and
// reads TOML files. A missing file is not an error: every field has a usable
// default, so the CLI works without any setup.
package config
