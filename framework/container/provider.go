package container

// ServiceProvider registers services in Register and may use any registered
// service in Boot, which runs after every provider has registered.
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container)
}

// BaseProvider gives a no-op Boot. Embed it when only Register matters.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

// ProviderRegistry registers providers in order and boots them once.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register calls provider.Register once. After Boot, the provider is booted
// immediately as well.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true
	provider.Register(r.app)
	r.providers = append(r.providers, provider)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot boots every registered provider, in registration order.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, p := range r.providers {
		p.Boot(r.app)
	}
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }
