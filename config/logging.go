package config

import "go.uber.org/zap"

// setLogger picks the zap logger for the given environment: production and
// development use the stock presets, anything else gets the example logger
// for deterministic local output.
func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
