// Package telemetry wires the demo driver's structured logging and
// metrics. Nothing in ring or arc imports this package: the core stays
// silent.
package telemetry

import "go.uber.org/zap"

// NewLogger builds a zap logger for the demo driver. Production builds
// get zap's default JSON production config; anything else gets the
// human-readable development config.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
