// Package appconf defines the application configuration and its loading
// rules: defaults, an optional YAML file, then environment overrides.
package appconf

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment distinguishes runtime environments.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps an environment flag value to an Environment,
// defaulting to Development for anything unrecognized.
func EnvFlagToEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds everything the application needs at startup.
type Config struct {
	Port      int         `yaml:"port" validate:"gte=0,lte=65535"`
	Env       Environment `yaml:"-"`
	ApiKeys   []string    `yaml:"api_keys"`
	RateLimit int         `yaml:"rate_limit" validate:"gte=0"`
	Verbose   bool        `yaml:"verbose"`
	JSONLogs  bool        `yaml:"json_logs"`
	FeedPath  string      `yaml:"feed_path"`
	// HeadwayStart and HeadwayEnd bound the headway statistics window,
	// as GTFS times (HH:MM:SS).
	HeadwayStart string `yaml:"headway_start" validate:"omitempty,len=8"`
	HeadwayEnd   string `yaml:"headway_end" validate:"omitempty,len=8"`
}

type fileConfig struct {
	Config `yaml:",inline"`
	Env    string `yaml:"env"`
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables (highest precedence). A .env file, when present,
// seeds the environment first.
func Load(path string) (Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := Config{
		Port:      4000,
		RateLimit: 100,
	}
	envName := ""

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
		cfg = fc.Config
		envName = fc.Env
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}
	if v := os.Getenv("ENV"); v != "" {
		envName = v
	}
	if v := os.Getenv("API_KEYS"); v != "" {
		cfg.ApiKeys = splitKeys(v)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT: %q", v)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("VERBOSE"); v != "" {
		cfg.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("JSON_LOGS"); v != "" {
		cfg.JSONLogs = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("GTFS_FEED_PATH"); v != "" {
		cfg.FeedPath = v
	}
	if v := os.Getenv("HEADWAY_START"); v != "" {
		cfg.HeadwayStart = v
	}
	if v := os.Getenv("HEADWAY_END"); v != "" {
		cfg.HeadwayEnd = v
	}

	cfg.Env = EnvFlagToEnvironment(envName)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitKeys(s string) []string {
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
