package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/km-arc/go-layers/framework/config"
	"github.com/km-arc/go-layers/framework/layers"
	"github.com/km-arc/go-layers/framework/providers"
	"github.com/km-arc/go-layers/framework/routing"
)

// Application owns the root layer stack and the providers that fill it.
//
// The root stack is only written while registering and booting. Once Boot
// returns, every request works on its own fork of it.
type Application struct {
	Stack     *layers.Stack
	Providers *providers.Registry

	cfg    *config.Config
	logger *slog.Logger
	mode   layers.Mode
	router *routing.Router

	booted  bool
	bootErr error
}

// New loads the configuration and registers the framework providers.
func New(envFiles ...string) *Application {
	return NewWithConfig(config.Load(envFiles...))
}

// NewWithConfig is New with an already loaded configuration. Logs go to
// stderr in the configured format.
func NewWithConfig(cfg *config.Config) *Application {
	logger := cfg.Log.Logger(os.Stderr)
	stack := layers.New(layers.WithLogger(logger))

	a := &Application{
		Stack:     stack,
		Providers: providers.NewRegistry(stack, logger),
		cfg:       cfg,
		logger:    logger,
	}
	for _, p := range providers.Defaults(cfg, logger) {
		_ = a.Providers.Register(p) // not booted yet, cannot fail
	}
	return a
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider providers.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase of every provider and mounts the HTTP routes.
// Only the first call does any work; later calls return its result.
func (a *Application) Boot() error {
	if !a.booted {
		a.booted = true
		a.bootErr = a.boot()
	}
	return a.bootErr
}

func (a *Application) boot() error {
	mode, err := layers.ParseMode(a.cfg.Layers.DefaultMode)
	if err != nil {
		return fmt.Errorf("app: LAYERS_MODE: %w", err)
	}
	a.mode = mode

	// Realized on the base layer so every layer booting adds inherits it.
	router, err := layers.GetNamed[*routing.Router](a.Stack, providers.KeyRouter)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.router = router
	a.routes(router)

	if err := a.Providers.Boot(); err != nil {
		return err
	}

	a.logger.Debug("application booted", "depth", a.Stack.Depth(), "mode", a.mode)
	return nil
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Router returns the router; nil before Boot.
func (a *Application) Router() *routing.Router { return a.router }

// DefaultMode is the mode used when a lookup names none.
func (a *Application) DefaultMode() layers.Mode { return a.mode }

// Handler boots the application if needed and returns its HTTP handler.
func (a *Application) Handler() (http.Handler, error) {
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a.router, nil
}

// Serve boots the application and serves HTTP on APP_PORT until ctx is
// cancelled.
func (a *Application) Serve(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + a.cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.logger.Info("listening", "app", a.cfg.App.Name, "addr", srv.Addr, "env", a.cfg.App.Env)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
