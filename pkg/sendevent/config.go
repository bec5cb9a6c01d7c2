package sendevent

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// EnvConfig holds the defaults of the command line flags.
type EnvConfig struct {
	Device    string `env:"SENDEVENT_DEVICE"`
	DeviceMap string `env:"SENDEVENT_DEVICE_MAP"`
	Debug     bool   `env:"SENDEVENT_DEBUG"`
}

func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// NewLogger returns a json logger, or a human readable one with debug
// output.
func NewLogger(debug bool) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	if debug {
		logConfig = zap.NewDevelopmentConfig()
	}
	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
