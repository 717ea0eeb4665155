package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	ResetConfig   ResetConfig   `yaml:"reset"`
}

// ResetConfig controls the forgot-password flow.
type ResetConfig struct {
	CodeTTL    time.Duration `yaml:"code_ttl"`
	CodeLength int           `yaml:"code_length"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 24 * time.Hour

	cfg := &Config{
		Addr:          getEnv("SKILLTRACK_ADDR", ":8080"),
		JWTSecret:     getEnv("SKILLTRACK_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("SKILLTRACK_DATABASE_PATH", "skilltrack.db"),
		TokenDuration: tokenDuration,
		ResetConfig: ResetConfig{
			CodeTTL:    15 * time.Minute,
			CodeLength: 6,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
