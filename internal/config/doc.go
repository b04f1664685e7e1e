// Package config loads the host configuration for the devkit binary: the
// logging setup, the default plugin the dispatcher drives, and the timestamp
// source stamped into responses.
package config
