package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/synthaser"
	"github.com/aretw0/synthaser/internal/config"
	"github.com/aretw0/synthaser/internal/logging"
	"github.com/aretw0/synthaser/pkg/adapters/file"
	"github.com/aretw0/synthaser/pkg/adapters/memory"
	"github.com/aretw0/synthaser/pkg/adapters/redis"
	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/observability"
	"github.com/aretw0/synthaser/pkg/ports"
)

// Overrides carries command-line flags that take precedence over the config
// file. Zero values leave the file setting alone.
type Overrides struct {
	Rules    string
	Catalog  string
	Workers  int
	LogLevel string
	Store    string
}

// LoadConfig reads the config file and applies flag overrides.
func LoadConfig(path string, o Overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if o.Rules != "" {
		cfg.Rules = o.Rules
	}
	if o.Catalog != "" {
		cfg.Catalog = o.Catalog
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Store != "" {
		cfg.Store.Backend = o.Store
	}
	return cfg, cfg.Validate()
}

// Env is a ready-to-use engine with its collaborators.
type Env struct {
	Config   config.Config
	Logger   *slog.Logger
	Engine   *synthaser.Engine
	Metrics  *observability.Metrics
	Store    ports.ResultStore
	Catalog  *catalog.Catalog
	RuleFile *file.RuleFile

	closers []func() error
}

// NewEnv builds the logger, store, metrics and engine described by cfg.
// Logs go to logOut. Extra options are applied after the configured ones.
func NewEnv(ctx context.Context, cfg config.Config, logOut io.Writer, extra ...synthaser.Option) (*Env, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	env := &Env{
		Config:  cfg,
		Logger:  logging.NewWithFormat(logOut, cfg.Log.Format, level),
		Metrics: observability.NewMetrics(),
	}

	cat, err := file.NewCatalogFile(cfg.Catalog).LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	env.Catalog = cat
	env.RuleFile = file.NewRuleFile(cfg.Rules, cat)

	store, err := env.newStore()
	if err != nil {
		return nil, err
	}
	env.Store = store

	opts := []synthaser.Option{
		synthaser.WithCatalog(cat),
		synthaser.WithRuleSource(env.RuleFile),
		synthaser.WithLogger(env.Logger),
		synthaser.WithWorkers(cfg.Workers),
		synthaser.WithStore(store),
		synthaser.WithHooks(observability.Combine(
			env.Metrics.Hooks(),
			observability.LogHooks(env.Logger),
		)),
	}
	eng, err := synthaser.New(append(opts, extra...)...)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	env.Engine = eng

	env.Logger.Debug("environment ready",
		"rules", describePath(cfg.Rules),
		"catalog", describePath(cfg.Catalog),
		"store", cfg.Store.Backend,
	)
	return env, nil
}

func (env *Env) newStore() (ports.ResultStore, error) {
	cfg := env.Config.Store
	switch cfg.Backend {
	case config.BackendFile:
		return file.NewStore(cfg.Path), nil
	case config.BackendRedis:
		ttl, err := env.Config.RedisTTL()
		if err != nil {
			return nil, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		env.closers = append(env.closers, s.Close)
		return s, nil
	case config.BackendMemory, "":
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// Close releases the store connection, if any.
func (env *Env) Close() error {
	var first error
	for _, c := range env.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	env.closers = nil
	return first
}

func describePath(p string) string {
	if p == "" {
		return "(built-in)"
	}
	return p
}
