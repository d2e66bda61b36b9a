// Package config loads server configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup.
type Config struct {
	ListenAddr     string        `yaml:"listen_addr"`
	CheckpointPath string        `yaml:"checkpoint_path"`
	ClassesPath    string        `yaml:"classes_path"`
	SQLitePath     string        `yaml:"sqlite_path"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	InputSize      int           `yaml:"input_size"`
	ORTLibraryPath string        `yaml:"ort_library_path"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		CheckpointPath: "models/checkpoint.json",
		ClassesPath:    "models/classes.json",
		SQLitePath:     "crops.db",
		TokenTTL:       24 * time.Hour,
		InputSize:      224,
	}
}

// Load reads the YAML file at path (skipped silently when absent), then
// applies environment overrides on top. Environment always wins.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "parsing config file %s", path)
			}
		case !os.IsNotExist(err):
			return Config{}, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CROPS_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CROPS_CHECKPOINT"); v != "" {
		cfg.CheckpointPath = v
	}
	if v := os.Getenv("CROPS_CLASSES"); v != "" {
		cfg.ClassesPath = v
	}
	if v := os.Getenv("CROPS_SQLITE"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CROPS_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = ttl
		}
	}
	if v := os.Getenv("CROPS_INPUT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.InputSize = n
		}
	}
	if v := os.Getenv("ONNXRUNTIME_LIB_PATH"); v != "" {
		cfg.ORTLibraryPath = v
	}
}
