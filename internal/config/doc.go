// Package config loads TickTick credentials from a .env file and the
// process environment.
package config
