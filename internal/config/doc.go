// Package config loads, normalizes, and validates repository
// configuration data.
//
// Configuration lives in a .texrepo.toml file at the repository root and
// pins the layout variant, the book directory, and the report and logging
// knobs. The file is optional: a repository without one gets layout
// detection and the documented defaults.
//
// Always obtain settings through this package so downstream code receives
// canonical layout names, report modes, and clear validation errors.
package config
