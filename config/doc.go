// Package config loads, normalizes, and validates sheet profiles.
//
// A profile is a TOML file describing one printed card: its question grid,
// the preprocessing knobs, the bubble filter, the layout thresholds and the
// scoring policy. Missing keys keep their defaults, so a profile only needs
// the values that differ from the standard card. Config.Options converts a
// profile into scanner options.
package config
