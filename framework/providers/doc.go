// Package providers fills a layer stack through service providers.
//
// # Lifecycle
//
//  1. Create: reg := providers.NewRegistry(stack, logger)
//  2. Register providers: reg.Register(&MyProvider{})
//  3. Boot: reg.Boot()        safe to resolve everything after this
//  4. Serve requests on forks of the stack
//
// # Deferred providers
//
// A provider whose IsDeferred returns true is not registered up front. Each
// key in its Provides list becomes a lazy slot on the stack, and the first
// slot realized runs the provider once on a fork:
//
//	func (p *MailProvider) IsDeferred() bool   { return true }
//	func (p *MailProvider) Provides() []string { return []string{"mailer"} }
package providers
