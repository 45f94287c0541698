package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PATHFINDER_ALGORITHM", "PATHFINDER_POLICY", "PATHFINDER_CACHE_BACKEND",
		"PATHFINDER_CACHE_DIR", "PATHFINDER_REDIS_URL", "PATHFINDER_CACHE_TTL",
		"PATHFINDER_STORE_BACKEND", "PATHFINDER_STORE_DIR", "PATHFINDER_STORE_URL",
		"PATHFINDER_STORE_DATABASE", "PATHFINDER_LISTEN", "PATHFINDER_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.PolicyValue() != graph.PolicyReject {
		t.Errorf("PolicyValue() = %v, want reject", c.PolicyValue())
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Algorithm != "dijkstra" || c.Cache.Backend != BackendFile {
		t.Errorf("Load of a missing file did not return defaults: %+v", c)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
algorithm = "astar"
policy = "drop"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "24h"

[store]
backend = "postgres"
url = "postgres://user@localhost/pathfinder"

[server]
addr = ":9000"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Algorithm != "astar" {
		t.Errorf("Algorithm = %q", c.Algorithm)
	}
	if c.PolicyValue() != graph.PolicyDrop {
		t.Errorf("Policy = %q", c.Policy)
	}
	if c.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache.TTL = %v", c.Cache.TTL)
	}
	if c.Store.Backend != BackendPostgres {
		t.Errorf("Store.Backend = %q", c.Store.Backend)
	}
	if c.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", c.Server.Addr)
	}
	// untouched keys keep their defaults
	if c.Server.Timeout.Duration != time.Minute {
		t.Errorf("Server.Timeout = %v", c.Server.Timeout)
	}
}

func TestLoadRejects(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `colour = "blue"`},
		{"bad toml", `algorithm = `},
		{"bad algorithm", `algorithm = "bfs"`},
		{"bad policy", `policy = "ignore"`},
		{"bad cache backend", "[cache]\nbackend = \"memcached\""},
		{"redis cache without url", "[cache]\nbackend = \"redis\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"bad store backend", "[store]\nbackend = \"s3\""},
		{"mongo with postgres url", "[store]\nbackend = \"mongo\"\nurl = \"postgres://localhost/db\""},
		{"zero body limit", "[server]\nmax_body_bytes = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestLoadAlgorithmErrorIsCoded(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, `algorithm = "bfs"`))
	if !errs.Is(err, errs.ErrCodeInvalidAlgorithm) {
		t.Errorf("err = %v, want INVALID_ALGORITHM", err)
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	c.ApplyEnv(envMap(map[string]string{
		"PATHFINDER_ALGORITHM":     "astar",
		"PATHFINDER_STORE_BACKEND": "mongo",
		"PATHFINDER_STORE_URL":     "mongodb://localhost:27017",
		"PATHFINDER_CACHE_TTL":     "1h30m",
		"PATHFINDER_LISTEN":        ":7000",
	}))
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Algorithm != "astar" || c.Store.Backend != BackendMongo || c.Server.Addr != ":7000" {
		t.Errorf("env not applied: %+v", c)
	}
	if c.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache.TTL = %v", c.Cache.TTL)
	}

	bad := Default()
	bad.ApplyEnv(envMap(map[string]string{"PATHFINDER_CACHE_TTL": "later"}))
	if err := bad.Validate(); err == nil {
		t.Error("malformed PATHFINDER_CACHE_TTL should fail validation")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATHFINDER_ALGORITHM", "dijkstra")
	c, err := Load(writeFile(t, `algorithm = "astar"`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Algorithm != "dijkstra" {
		t.Errorf("Algorithm = %q, env should win", c.Algorithm)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("PATHFINDER_LISTEN=:6000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// t.Setenv registers a cleanup that restores the variable after
	// godotenv sets it.
	t.Setenv("PATHFINDER_LISTEN", "")
	os.Unsetenv("PATHFINDER_LISTEN")

	if err := LoadDotEnv(env, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("PATHFINDER_LISTEN"); got != ":6000" {
		t.Errorf("PATHFINDER_LISTEN = %q", got)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("PATHFINDER_CONFIG", "")

	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg-config", "pathfinder", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	d, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if d != filepath.Join("/tmp/xdg-cache", "pathfinder") {
		t.Errorf("CacheDir() = %q", d)
	}

	t.Setenv("PATHFINDER_CONFIG", "/etc/pathfinder.toml")
	if p, _ := Path(); p != "/etc/pathfinder.toml" {
		t.Errorf("Path() with PATHFINDER_CONFIG = %q", p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.Algorithm = "astar"
	want.Cache.TTL = Duration{2 * time.Hour}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, want)
	}
}
