// Package config provides configuration loading and validation for the
// beacon decoder. It handles YAML-based configuration with per-section
// validation and supplies defaults when no configuration file is present.
package config
