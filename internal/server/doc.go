// Package server implements the optional HTTP monitoring server. It exposes
// health, statistics, configuration, and Prometheus metrics endpoints; it
// never accepts beacon input over the network.
package server
