package providers

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/km-arc/go-layers/framework/layers"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider contributes values to a layer stack.
//
// Register is called as soon as an eager provider is added. Boot runs after
// every provider has been registered, so it may resolve what the others put
// on the stack.
//
//	type MailProvider struct{ providers.BaseProvider }
//
//	func (p *MailProvider) Register(s *layers.Stack) {
//	    s.MergeWith(layers.Value(&Mailer{From: "noreply@example.com"}))
//	}
type ServiceProvider interface {
	// Register puts values onto s. Do not resolve other providers' values
	// here; use Boot.
	Register(s *layers.Stack)

	// Boot is called after all providers are registered.
	Boot(s *layers.Stack) error

	// Provides lists the keys a deferred provider contributes.
	Provides() []string

	// IsDeferred reports whether Register should wait until one of
	// Provides() is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *layers.Stack) error { return nil }
func (p *BaseProvider) Provides() []string         { return nil }
func (p *BaseProvider) IsDeferred() bool           { return false }

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry registers and boots providers against one stack.
//
// A deferred provider is represented on the stack by one lazy slot per key
// in Provides(). The first slot to be realized runs the provider on a fork
// of the stack; every slot then reads its value from that fork.
type Registry struct {
	stack      *layers.Stack
	logger     *slog.Logger
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool

	lazy map[ServiceProvider]*lazyProvider

	mu       sync.Mutex
	deferred []ServiceProvider // loaded, in load order
}

// lazyProvider is a deferred provider and the fork it ran on, once it has.
type lazyProvider struct {
	mu    sync.Mutex
	scope *layers.Stack
}

// NewRegistry creates a registry bound to s. A nil logger discards.
func NewRegistry(s *layers.Stack, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		stack:      s,
		logger:     logger,
		registered: make(map[ServiceProvider]bool),
		lazy:       make(map[ServiceProvider]*lazyProvider),
	}
}

// Register adds a provider. Eager providers are registered at once, and
// booted too when the registry already booted. Registering the same
// provider twice is a no-op.
func (r *Registry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.registerDeferred(provider)
		return nil
	}

	provider.Register(r.stack)
	r.eager = append(r.eager, provider)

	if r.booted {
		return provider.Boot(r.stack)
	}
	return nil
}

// A deferred provider that fails to boot leaves its slots deferred: the key
// does not resolve, the error is the NotResolvedError's cause, and the next
// resolution loads the provider again.
func (r *Registry) registerDeferred(provider ServiceProvider) {
	r.lazy[provider] = &lazyProvider{}
	deps := make([]layers.Dependency, 0, len(provider.Provides()))
	for _, key := range provider.Provides() {
		deps = append(deps, layers.LazyErr(key, func() (any, error) {
			scope, err := r.load(provider)
			if err != nil {
				r.logger.Error("deferred provider failed", "key", key, "error", err)
				return nil, err
			}
			v, _ := scope.ResolveByName(key)
			return v, nil
		}))
	}
	r.stack.MergeWith(deps...)
}

// load runs a deferred provider once and returns the stack it registered on.
func (r *Registry) load(provider ServiceProvider) (*layers.Stack, error) {
	lp := r.lazy[provider]
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if lp.scope != nil {
		return lp.scope, nil
	}
	scope := r.stack.Fork()
	// The fork inherits this provider's own lazy slots; mask them so a
	// type scan inside Register cannot re-enter load.
	scope.Mask(provider.Provides()...)
	provider.Register(scope)
	if r.Booted() {
		if err := provider.Boot(scope); err != nil {
			return nil, fmt.Errorf("providers: boot deferred %T: %w", provider, err)
		}
	}
	lp.scope = scope

	r.mu.Lock()
	r.deferred = append(r.deferred, provider)
	r.mu.Unlock()
	return scope, nil
}

// Boot calls Boot on every eager provider in registration order, then on
// deferred providers already loaded, and stops at the first error. Later
// calls are no-ops.
func (r *Registry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.stack); err != nil {
			return fmt.Errorf("providers: boot %T: %w", provider, err)
		}
	}

	r.mu.Lock()
	deferred := slices.Clone(r.deferred)
	r.mu.Unlock()
	for _, provider := range deferred {
		if err := provider.Boot(r.lazy[provider].scope); err != nil {
			return fmt.Errorf("providers: boot deferred %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *Registry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *Registry) Providers() []ServiceProvider { return r.eager }

// Loaded reports whether a deferred provider has been run.
func (r *Registry) Loaded(provider ServiceProvider) bool {
	lp, ok := r.lazy[provider]
	if !ok {
		return false
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.scope != nil
}
