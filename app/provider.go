// Package app wires the password-rule validator into the framework: the
// ingestion controller, the session store, the HTTP controller and its routes.
package app

import (
	"context"

	"go.uber.org/zap"

	kernel "github.com/km-arc/passgate/framework/app"
	"github.com/km-arc/passgate/framework/config"
	"github.com/km-arc/passgate/framework/container"
	gohttp "github.com/km-arc/passgate/framework/http"
	"github.com/km-arc/passgate/framework/providers"
	"github.com/km-arc/passgate/framework/routing"
	"github.com/km-arc/passgate/ingest"
	"github.com/km-arc/passgate/views"
)

// ServiceProvider registers the validator services.
//
// Bound names:
//   - "ingest"     → *ingest.Controller
//   - "sessions"   → *ingest.Store
//   - "validator"  → *ValidatorController
//
// Boot mounts the routes and schedules the session janitor.
type ServiceProvider struct{}

func (p *ServiceProvider) Register(app *container.Container) {
	app.Singleton("ingest", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return ingest.NewController(ingest.Options{
			AcceptType:   cfg.Ingest.AcceptType,
			MaxFileBytes: cfg.Ingest.MaxFileBytes,
			MaxFiles:     cfg.Ingest.MaxFiles,
			Logger:       container.Resolve[*zap.Logger](c, "logger").Named("ingest"),
		})
	})

	app.Singleton("sessions", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return ingest.NewStore(cfg.Session.TTL)
	})

	app.Singleton("validator", func(c *container.Container) any {
		return NewValidatorController(
			container.Resolve[*config.Config](c, "config"),
			container.Resolve[*ingest.Controller](c, "ingest"),
			container.Resolve[*ingest.Store](c, "sessions"),
			container.Resolve[*gohttp.ViewEngine](c, "view"),
			container.Resolve[*zap.Logger](c, "logger"),
		)
	})
}

func (p *ServiceProvider) Boot(app *container.Container) {
	router := container.Resolve[*routing.Router](app, "router")
	container.Resolve[*ValidatorController](app, "validator").Routes(router)

	cfg := container.Resolve[*config.Config](app, "config")
	store := container.Resolve[*ingest.Store](app, "sessions")
	if a, ok := app.Make("app").(*kernel.Application); ok {
		a.Go(func(ctx context.Context) error {
			return store.Run(ctx, cfg.Session.SweepInterval)
		})
	}
}

// Register adds the view engine and the validator services to a.
func Register(a *kernel.Application) {
	a.Register(&providers.ViewServiceProvider{FS: views.FS, Funcs: views.Funcs()})
	a.Register(&ServiceProvider{})
}
