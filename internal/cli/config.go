package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/nfa/pkg/adapters/redis"
	"gopkg.in/yaml.v3"
)

// ConfigFiles are the project file names looked up by FindConfig, in order.
var ConfigFiles = []string{"nfa.yaml", "nfa.yml", "nfa.json"}

// Config represents the structure of nfa.yaml.
type Config struct {
	Dir    string      `yaml:"dir" json:"dir"`
	Debug  bool        `yaml:"debug" json:"debug"`
	Strict bool        `yaml:"strict" json:"strict"`
	Port   string      `yaml:"port" json:"port"`
	Redis  RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig selects a Redis store instead of the definitions folder.
type RedisConfig struct {
	URL    string `yaml:"url" json:"url"`
	Prefix string `yaml:"prefix" json:"prefix"`
	TTL    string `yaml:"ttl" json:"ttl"`
}

// DefaultConfig is used when no project file exists.
func DefaultConfig() Config {
	return Config{
		Dir:  ".",
		Port: "8080",
	}
}

// FindConfig returns the first project file present in dir, or "".
func FindConfig(dir string) string {
	for _, name := range ConfigFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadConfig reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	// A relative dir is relative to the project file, not the caller.
	if cfg.Dir != "" && !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}
	return cfg, nil
}

// Options converts the Redis settings into store options.
func (c RedisConfig) Options() ([]redis.Option, error) {
	var opts []redis.Option
	if c.Prefix != "" {
		opts = append(opts, redis.WithPrefix(c.Prefix))
	}
	if c.TTL != "" {
		ttl, err := time.ParseDuration(c.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis ttl %q: %w", c.TTL, err)
		}
		opts = append(opts, redis.WithTTL(ttl))
	}
	return opts, nil
}
