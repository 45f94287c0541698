// Package cli implements the pathfinder command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/internal/config"
	"github.com/matzehuels/pathfinder/pkg/buildinfo"
	"github.com/matzehuels/pathfinder/pkg/cache"
	"github.com/matzehuels/pathfinder/pkg/pipeline"
	"github.com/matzehuels/pathfinder/pkg/store"
	"github.com/matzehuels/pathfinder/pkg/store/mongostore"
	"github.com/matzehuels/pathfinder/pkg/store/pgstore"
	"github.com/matzehuels/pathfinder/pkg/store/redisstore"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "pathfinder"

// skipConfig marks commands that must work with a broken config file.
const skipConfig = "skip-config"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	envFile    string
}

// New creates a new CLI instance with a default logger and default settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pathfinder finds shortest paths through node-link graphs",
		Long:         `Pathfinder builds graphs of positioned nodes joined by weighted links and finds the shortest route between a start and an end node with Dijkstra or A*.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] != "" {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pathfinder/config.toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file with PATHFINDER_* variables")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "algorithm", cfg.Algorithm, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build version.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
	case config.BackendFile:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return cache.NewNullCache(), nil
}

func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Store Factory
// =============================================================================

// openStore connects to the configured graph store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	sc := c.Config.Store
	var (
		st  store.Store
		err error
	)
	switch sc.Backend {
	case config.BackendMemory:
		st = store.NewMemory()
	case config.BackendFile:
		dir := sc.Dir
		if dir == "" {
			if dir, err = config.Dir(); err != nil {
				return nil, err
			}
			dir = filepath.Join(dir, "graphs")
		}
		st, err = store.NewFileStore(dir)
	case config.BackendRedis:
		st, err = redisstore.Open(ctx, sc.URL)
	case config.BackendMongo:
		st, err = mongostore.Open(ctx, sc.URL, sc.Database)
	case config.BackendPostgres:
		st, err = pgstore.Open(ctx, sc.URL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", sc.Backend, err)
	}
	c.Logger.Debug("store opened", "backend", sc.Backend)
	return store.Instrument(st, sc.Backend), nil
}
