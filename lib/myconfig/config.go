package myconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultCheckoutURL = "https://htmlpreview.github.io/?https://raw.githubusercontent.com/stashgg/stash-unity/refs/heads/main/.github/Stash.Popup.Test/index.html"

type Config struct {
	Port               int    `env:"PORT" envDefault:"8080"`
	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	LocationID         string `env:"LOCATION_ID"`
	QueueName          string `env:"QUEUE_NAME" envDefault:"default"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsNamespace   string `env:"METRICS_NAMESPACE" envDefault:"stashpay"`

	DefaultCheckoutURL    string `env:"DEFAULT_CHECKOUT_URL"`
	Theme                 string `env:"THEME" envDefault:"light"`
	ForceWebBasedCheckout bool   `env:"FORCE_WEB_BASED_CHECKOUT" envDefault:"false"`

	// Zero disables the timeout: the SDK is trusted to always resolve or dismiss
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"0s"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config from environment: %w", err)
	}

	if cfg.DefaultCheckoutURL == "" {
		cfg.DefaultCheckoutURL = DefaultCheckoutURL
	}
	if cfg.Theme != "light" && cfg.Theme != "dark" {
		return Config{}, fmt.Errorf("invalid THEME %q: expected light or dark", cfg.Theme)
	}
	if cfg.SessionTimeout < 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TIMEOUT %s: must not be negative", cfg.SessionTimeout)
	}

	return cfg, nil
}

func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
