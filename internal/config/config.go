// Package config reads betterrest settings from the environment and an
// optional .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"betterrest/internal/bedtime"
	"betterrest/internal/form"
)

// Config stores the system configuration.
type Config struct {
	Debug bool `envconfig:"BETTERREST_DEBUG"`

	ModelPath string `envconfig:"BETTERREST_MODEL_PATH"`
	Clock     string `envconfig:"BETTERREST_CLOCK" default:"12h"`

	HTTP struct {
		Port int `envconfig:"BETTERREST_HTTP_PORT" default:"0"`
	}

	Defaults struct {
		Wake   string  `envconfig:"BETTERREST_DEFAULT_WAKE" default:"07:00"`
		Sleep  float64 `envconfig:"BETTERREST_DEFAULT_SLEEP" default:"8"`
		Coffee int     `envconfig:"BETTERREST_DEFAULT_COFFEE" default:"1"`
	}
}

// legacy environment variables. the key is the legacy
// variable name, and the value is the new variable name.
var legacy = map[string]string{
	"BETTERREST_MODEL": "BETTERREST_MODEL_PATH",
}

// Load reads envfile (if it exists) into the environment and then
// processes the environment.
func Load(envfile string) (Config, error) {
	if envfile != "" {
		if err := godotenv.Load(envfile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load env file %s", envfile)
		}
	}
	return FromEnviron()
}

// FromEnviron builds a Config from environment variables only.
func FromEnviron() (Config, error) {
	for k, v := range legacy {
		if s, ok := os.LookupEnv(k); ok {
			if _, set := os.LookupEnv(v); !set {
				os.Setenv(v, s)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks values envconfig cannot.
func (c Config) Validate() error {
	if _, err := ClockLayout(c.Clock); err != nil {
		return err
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return errors.Errorf("http port %d out of range", c.HTTP.Port)
	}
	if err := c.FormDefaults().Validate(); err != nil {
		return errors.Wrap(err, "default")
	}
	return nil
}

// FormDefaults returns the configured values for empty form fields.
func (c Config) FormDefaults() form.Defaults {
	return form.Defaults{
		Wake:   c.Defaults.Wake,
		Sleep:  c.Defaults.Sleep,
		Coffee: c.Defaults.Coffee,
	}
}

// Layout returns the time layout for the configured clock.
func (c Config) Layout() string {
	l, _ := ClockLayout(c.Clock)
	return l
}

// ClockLayout maps "12h" or "24h" to a bedtime clock layout.
func ClockLayout(clock string) (string, error) {
	switch clock {
	case "", "12h":
		return bedtime.Clock12, nil
	case "24h":
		return bedtime.Clock24, nil
	}
	return "", errors.Errorf("unknown clock %q, expected 12h or 24h", clock)
}
