package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type FMP struct {
	APIKey     string `json:"api_key"`
	BaseURL    string `json:"base_url"`
	Version    string `json:"version"`
	Validate   bool   `json:"validate"`
	Debug      bool   `json:"debug"`
	TimeoutSec int    `json:"timeout_sec"`
	// Currency tags normalized quotes, FMP quotes carry none.
	Currency    string `json:"currency"`
	Aftermarket bool   `json:"aftermarket"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Config struct {
	Server Server `json:"server"`
	FMP    FMP    `json:"fmp"`
	Log    Log    `json:"log"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15},
		FMP: FMP{
			BaseURL:    "https://financialmodelingprep.com/",
			Version:    "stable",
			Validate:   true,
			TimeoutSec: 15,
			Currency:   "USD",
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Timeout is the per-call bound, zero when unset.
func (f FMP) Timeout() time.Duration {
	if f.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(f.TimeoutSec) * time.Second
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it starts from defaults. Variables from envFiles (".env" when none are
// given) are exported unless already set, then the environment overrides
// select fields.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.FMP.APIKey = v
	}
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		cfg.FMP.BaseURL = v
	}
	if v := os.Getenv("FMP_VERSION"); v != "" {
		cfg.FMP.Version = v
	}
	if v, ok := envBool("FMP_VALIDATE"); ok {
		cfg.FMP.Validate = v
	}
	if v, ok := envBool("FMP_DEBUG"); ok {
		cfg.FMP.Debug = v
	}
	if v := os.Getenv("FMP_TIMEOUT_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			cfg.FMP.TimeoutSec = x
		}
	}
	if v := os.Getenv("FMP_CURRENCY"); v != "" {
		cfg.FMP.Currency = v
	}
	if v, ok := envBool("FMP_AFTERMARKET"); ok {
		cfg.FMP.Aftermarket = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func envBool(key string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	return false, false
}

// SplitCSV splits a comma-separated list, dropping blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
