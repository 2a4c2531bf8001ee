package config

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/models"
)

// Config holds the project config values
type Config struct {
	BaseURL      string
	Port         string
	DataDir      string
	Environment  string
	AutosaveCron string
}

// New reads the environment, sets up the global zap logger, and returns the
// config.
func New() *Config {
	environment := os.Getenv("ENVIRONMENT")

	logger, err := setLogger(environment)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         getEnv("PORT", "8080"),
		DataDir:      getEnv("DATA_DIR", "settings"),
		Environment:  environment,
		AutosaveCron: getEnv("AUTOSAVE_CRON", "@every 5m"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and
// body for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{
			Message: message,
			Error:   err.Error(),
		},
	})
	w.Write(b)
}
