// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime settings read from the process environment.
type Env struct {
	// DefaultsFile is an optional YAML file for LoadDefaults.
	DefaultsFile string `env:"QDNA_DEFAULTS"`
	// ParamDir holds the <source>_<particle>_<model>.json|yaml tables.
	ParamDir     string `env:"QDNA_PARAM_DIR" envDefault:"params"`
	ParamRetries uint   `env:"QDNA_PARAM_RETRIES" envDefault:"3"`

	StoreBackend string `env:"QDNA_STORE" envDefault:"memory"`
	SQLitePath   string `env:"QDNA_SQLITE_PATH" envDefault:"qdna.db"`

	// OTLPEndpoint enables tracing when non-empty, e.g. "localhost:4318".
	OTLPEndpoint string `env:"QDNA_OTLP_ENDPOINT"`
	ServiceName  string `env:"QDNA_SERVICE_NAME" envDefault:"qdna"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}

	return e, nil
}
