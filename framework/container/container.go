package container

import (
	"fmt"
	"sync"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a service from the container.
type Factory func(c *Container) any

type binding struct {
	factory Factory
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a small service registry keyed by name. Providers register
// the config, logger, router, views, session store and ingestion controller
// into it; the kernel resolves them at boot.
type Container struct {
	mu        sync.Mutex
	bindings  map[string]*binding
	instances map[string]any
	aliases   map[string]string
	resolving map[string]bool
}

// New creates an empty container bound to itself as "container".
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		resolving: make(map[string]bool),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Singleton registers a factory whose result is cached after the first Make.
//
//	c.Singleton("sessions", func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    return ingest.NewStore(cfg.Session.TTL)
//	})
func (c *Container) Singleton(name string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory}
}

// Instance registers an already built value.
func (c *Container) Instance(name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// Alias makes alias resolve to name.
func (c *Container) Alias(name, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", name))
	}
	c.aliases[alias] = c.canonical(name)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves name. It panics when nothing is registered under name or
// when a factory depends on itself.
func (c *Container) Make(name string) any {
	c.mu.Lock()
	key := c.canonical(name)
	if inst, ok := c.instances[key]; ok {
		c.mu.Unlock()
		return inst
	}
	b, ok := c.bindings[key]
	if !ok {
		c.mu.Unlock()
		panic(fmt.Sprintf("container: no binding registered for [%s]", name))
	}
	if c.resolving[key] {
		c.mu.Unlock()
		panic(fmt.Sprintf("container: circular dependency on [%s]", name))
	}
	c.resolving[key] = true
	c.mu.Unlock()

	// factories may call Make, so run them unlocked
	instance := b.factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolving, key)
	if existing, ok := c.instances[key]; ok {
		return existing
	}
	c.instances[key] = instance
	return instance
}

// canonical must be called with mu held.
func (c *Container) canonical(name string) string {
	if target, ok := c.aliases[name]; ok {
		return target
	}
	return name
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and asserts the result to T.
//
//	store := container.Resolve[*ingest.Store](c, "sessions")
func Resolve[T any](c *Container, name string) T {
	instance := c.Make(name)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), name, instance))
	}
	return typed
}
