// Package config loads, normalizes, and validates logscribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file from the working directory,
// and honours environment fallbacks such as OPENAI_API_KEY and
// LOGSCRIBE_MODELS_DIR. Command-line flags are layered on top through
// Overrides.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
