// Package config loads pathfinder settings.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults ([Default])
//  2. The TOML file at [Path], usually ~/.config/pathfinder/config.toml
//  3. PATHFINDER_* environment variables, optionally read from a .env file
//
// Command-line flags override all of them; that layer lives in the CLI.
//
// Example file:
//
//	algorithm = "astar"
//	policy = "drop"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[store]
//	backend = "postgres"
//	url = "postgres://localhost/pathfinder"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

const appName = "pathfinder"

// Backends.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

var (
	cacheBackends = []string{BackendNone, BackendFile, BackendRedis}
	storeBackends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo, BackendPostgres}
)

// Config holds every setting.
type Config struct {
	Algorithm string       `toml:"algorithm"`
	Policy    string       `toml:"policy"`
	Cache     CacheConfig  `toml:"cache"`
	Store     StoreConfig  `toml:"store"`
	Server    ServerConfig `toml:"server"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir,omitempty"`
	RedisURL string   `toml:"redis_url,omitempty"`
	TTL      Duration `toml:"ttl"`
}

// StoreConfig selects where named graphs are kept.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir,omitempty"`
	URL      string `toml:"url,omitempty"`
	Database string `toml:"database,omitempty"` // mongo only
}

// ServerConfig configures `pathfinder serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	Timeout      Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "90s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Algorithm: "dijkstra",
		Policy:    graph.PolicyReject.String(),
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Store: StoreConfig{
			Backend:  BackendFile,
			Database: appName,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			MaxBodyBytes: 8 << 20,
			Timeout:      Duration{time.Minute},
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/pathfinder, or ~/.config/pathfinder.
func Dir() (string, error) {
	if h := os.Getenv("XDG_CONFIG_HOME"); h != "" {
		return filepath.Join(h, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file location. PATHFINDER_CONFIG
// overrides it.
func Path() (string, error) {
	if p := os.Getenv("PATHFINDER_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns $XDG_CACHE_HOME/pathfinder, or ~/.cache/pathfinder.
func CacheDir() (string, error) {
	if h := os.Getenv("XDG_CACHE_HOME"); h != "" {
		return filepath.Join(h, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of the defaults, then applies the
// environment. A missing file is not an error. An empty path uses [Path].
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	c := Default()
	if err := c.readFile(path); err != nil {
		return Config{}, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	return nil
}

// LoadDotEnv loads files (default ".env") into the process environment
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from PATHFINDER_* variables read with getenv.
// Malformed durations and sizes are left for Validate to report.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("PATHFINDER_ALGORITHM", &c.Algorithm)
	str("PATHFINDER_POLICY", &c.Policy)
	str("PATHFINDER_CACHE_BACKEND", &c.Cache.Backend)
	str("PATHFINDER_CACHE_DIR", &c.Cache.Dir)
	str("PATHFINDER_REDIS_URL", &c.Cache.RedisURL)
	str("PATHFINDER_STORE_BACKEND", &c.Store.Backend)
	str("PATHFINDER_STORE_DIR", &c.Store.Dir)
	str("PATHFINDER_STORE_URL", &c.Store.URL)
	str("PATHFINDER_STORE_DATABASE", &c.Store.Database)
	str("PATHFINDER_LISTEN", &c.Server.Addr)

	if v := getenv("PATHFINDER_CACHE_TTL"); v != "" {
		if err := c.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			c.Cache.TTL = Duration{-1}
		}
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := errs.ValidateAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if _, err := graph.ParsePolicy(c.Policy); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "policy")
	}

	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "cache backend %q (must be one of: %s)",
			c.Cache.Backend, strings.Join(cacheBackends, ", "))
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache ttl must be a non-negative duration")
	}
	if c.Cache.Backend == BackendRedis {
		if err := errs.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return err
		}
	}

	c.Store.Backend = strings.ToLower(c.Store.Backend)
	if !slices.Contains(storeBackends, c.Store.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "store backend %q (must be one of: %s)",
			c.Store.Backend, strings.Join(storeBackends, ", "))
	}
	switch c.Store.Backend {
	case BackendRedis:
		if err := errs.ValidateURL(c.Store.URL, "redis", "rediss"); err != nil {
			return err
		}
	case BackendMongo:
		if err := errs.ValidateURL(c.Store.URL, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
		if c.Store.Database == "" {
			return errs.New(errs.ErrCodeInvalidInput, "mongo store needs a database")
		}
	case BackendPostgres:
		if err := errs.ValidateURL(c.Store.URL, "postgres", "postgresql"); err != nil {
			return err
		}
	}

	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server max_body_bytes must be positive")
	}
	if c.Server.Timeout.Duration <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server timeout must be positive")
	}
	return nil
}

// PolicyValue returns the parsed data-integrity policy.
func (c *Config) PolicyValue() graph.Policy {
	p, _ := graph.ParsePolicy(c.Policy)
	return p
}

// Save writes c as TOML to path, creating the directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
