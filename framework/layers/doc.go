// Package layers provides a layered service-resolution registry.
//
// # Overview
//
// A Stack holds layers of key/value entries. The newest layer is searched
// first, so a layer pushed per test or per request overrides whatever the
// layers beneath it provide. It is not a dependency-injection container:
// nothing is constructed or wired automatically.
//
// # Layer Lifecycle
//
//  1. Create: s := layers.New()
//  2. Push defaults: s.Create(layers.Value(&Mailer{}))
//  3. Override: s.Create(layers.Value(&FakeMailer{}))  inherits step 2
//     or s.CreateIsolated(layers.Value(&FakeMailer{}))  starts empty
//  4. Pop: s.Destroy()
//
// # Keys
//
//	// Keyed by type identifier ("example.com/mail.Mailer")
//	layers.Value(&mail.Mailer{})
//
//	// Keyed by name
//	layers.Named("tenant", "acme")
//
//	// Deferred: the producer runs once, on first resolution
//	layers.Lazy("db", func() any { return openDB() })
//	layers.LazyOf(func() *sql.DB { return openDB() })
//
// # Resolving
//
//	// By name
//	tenant, err := s.Resolve("tenant", layers.Same)
//
//	// By type identifier, under a match mode
//	v, err := s.Resolve(layers.TypeKey(&mail.Mailer{}), layers.Children)
//
//	// Generic (preferred)
//	mailer, err := layers.Get[*mail.Mailer](s, layers.Same)
//
// # Match Modes
//
// Go has no class inheritance. A struct that embeds another struct is treated
// as its subtype, interfaces are supertypes of their implementations, and
// Types.Declare adds any other relationship.
//
//	Same      exact type only
//	Parents   the searched type or one of its ancestors
//	Children  the searched type or one of its descendants
//	Both      either direction
//
// # Concurrency
//
// A Stack does no locking. Use Fork to give each request its own stack:
//
//	reqStack := root.Fork()
//	reqStack.Create(layers.Named("request.id", id))
//	ctx = layers.NewContext(ctx, reqStack)
package layers
