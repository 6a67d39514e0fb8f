package providers

import (
	"html/template"
	"io/fs"

	"go.uber.org/zap"

	"github.com/km-arc/passgate/framework/config"
	"github.com/km-arc/passgate/framework/container"
	gohttp "github.com/km-arc/passgate/framework/http"
	"github.com/km-arc/passgate/framework/logging"
	"github.com/km-arc/passgate/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads configuration from .env and the environment.
//
// Bound names:
//   - "config" → *config.Config (alias "configuration")
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.MustLoad(envFiles...)
	})
	app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from "config".
//
// Bound names:
//   - "logger" → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Singleton("logger", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		l, err := logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: logging.Format(cfg.Log.Format),
			Debug:  cfg.App.Debug && cfg.IsLocal(),
		})
		if err != nil {
			panic(err)
		}
		return l.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound names:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New(container.Resolve[*zap.Logger](c, "logger"))
	})
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider parses the template set once.
//
// Bound names:
//   - "view" → *gohttp.ViewEngine
type ViewServiceProvider struct {
	container.BaseProvider
	FS       fs.FS
	Funcs    template.FuncMap
	Patterns []string // default: "*.html"
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	fsys, funcs, patterns := p.FS, p.Funcs, p.Patterns
	app.Singleton("view", func(c *container.Container) any {
		engine, err := gohttp.NewViewEngine(fsys, funcs, patterns...)
		if err != nil {
			panic(err)
		}
		return engine
	})
}
