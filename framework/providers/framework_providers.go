package providers

import (
	"log/slog"
	"os"

	"github.com/km-arc/go-layers/framework/config"
	"github.com/km-arc/go-layers/framework/definitions"
	"github.com/km-arc/go-layers/framework/layers"
	"github.com/km-arc/go-layers/framework/routing"
)

// Keys contributed by the framework providers.
const (
	KeyConfig      = "config"
	KeyAppName     = "app.name"
	KeyAppEnv      = "app.env"
	KeyLogger      = "logger"
	KeyDefinitions = "definitions"
	KeyRouter      = "router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider puts the application configuration on the stack.
// Config is used as-is when set; otherwise it is loaded from EnvFiles.
//
// Contributed values:
//   - *config.Config, by type and as "config"
//   - "app.name", "app.env" → string
type ConfigServiceProvider struct {
	BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(s *layers.Stack) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load(p.EnvFiles...)
	}
	s.MergeWith(
		layers.Value(cfg),
		layers.Named(KeyConfig, cfg),
		layers.Named(KeyAppName, cfg.App.Name),
		layers.Named(KeyAppEnv, cfg.App.Env),
	)
}

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerServiceProvider contributes "logger", a *slog.Logger built from the
// Log section of the configuration when first resolved. Logger, when set,
// is used instead.
type LoggerServiceProvider struct {
	BaseProvider
	Logger *slog.Logger
}

func (p *LoggerServiceProvider) Register(s *layers.Stack) {
	if p.Logger != nil {
		s.MergeWith(layers.Named(KeyLogger, p.Logger))
		return
	}
	s.MergeWith(layers.Lazy(KeyLogger, func() any {
		cfg, err := layers.GetNamed[*config.Config](s, KeyConfig)
		if err != nil {
			return slog.Default()
		}
		return cfg.Log.Logger(os.Stderr)
	}))
}

// ── DefinitionsServiceProvider ────────────────────────────────────────────────

// DefinitionsServiceProvider applies a YAML definitions file at boot, one
// stack layer per definition. File overrides the LAYERS_FILE setting; with
// neither set the provider does nothing.
//
// Contributed values:
//   - "definitions" → *definitions.File, on the layer that was current at boot
type DefinitionsServiceProvider struct {
	BaseProvider
	File string
}

func (p *DefinitionsServiceProvider) Register(_ *layers.Stack) {}

func (p *DefinitionsServiceProvider) Boot(s *layers.Stack) error {
	path := p.File
	if path == "" {
		if cfg, err := layers.GetNamed[*config.Config](s, KeyConfig); err == nil {
			path = cfg.Layers.File
		}
	}
	if path == "" {
		return nil
	}

	f, err := definitions.Load(path)
	if err != nil {
		return err
	}
	s.MergeWith(layers.Named(KeyDefinitions, f))
	f.Apply(s)

	if logger, err := layers.GetNamed[*slog.Logger](s, KeyLogger); err == nil {
		logger.Info("definitions applied", "file", path, "layers", f.Names(), "depth", s.Depth())
	}
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider contributes "router", a *routing.Router logging
// through "logger". It is deferred until the router is first resolved.
type RoutingServiceProvider struct {
	BaseProvider
}

func (p *RoutingServiceProvider) Register(s *layers.Stack) {
	logger, err := layers.GetNamed[*slog.Logger](s, KeyLogger)
	if err != nil {
		logger = slog.Default()
	}
	s.MergeWith(layers.Named(KeyRouter, routing.NewWithLogger(logger)))
}

func (p *RoutingServiceProvider) IsDeferred() bool   { return true }
func (p *RoutingServiceProvider) Provides() []string { return []string{KeyRouter} }

// Defaults returns the framework providers in registration order.
func Defaults(cfg *config.Config, logger *slog.Logger) []ServiceProvider {
	return []ServiceProvider{
		&ConfigServiceProvider{Config: cfg},
		&LoggerServiceProvider{Logger: logger},
		&DefinitionsServiceProvider{},
		&RoutingServiceProvider{},
	}
}

