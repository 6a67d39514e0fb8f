package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/km-arc/passgate/framework/config"
	"github.com/km-arc/passgate/framework/container"
	"github.com/km-arc/passgate/framework/providers"
	"github.com/km-arc/passgate/framework/routing"
)

// Version is the application version reported by the CLI.
const Version = "0.1.0"

// Task is a background job that runs alongside the HTTP server and must
// return once ctx is done.
type Task func(ctx context.Context) error

// Application is the top-level application container. It embeds the
// Container so providers and user code can Bind/Singleton/Make directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	mu    sync.Mutex
	tasks []Task
}

// New creates the application and registers the framework providers.
// It is bound into its own container as "app".
func New(envFiles ...string) *Application {
	c := container.New()
	app := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
	}
	c.Instance("app", app)

	app.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	app.Register(&providers.LoggingServiceProvider{})
	app.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Go schedules a background task for Run.
func (a *Application) Go(task Task) {
	a.mu.Lock()
	a.tasks = append(a.tasks, task)
	a.mu.Unlock()
}

func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

func (a *Application) Logger() *zap.Logger {
	return container.Resolve[*zap.Logger](a.Container, "logger")
}

func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Handler boots the application (if needed) and returns the root handler.
func (a *Application) Handler() http.Handler {
	if !a.Providers.Booted() {
		a.Boot()
	}
	return a.Router()
}

// Run boots the application, serves HTTP on APP_PORT and runs the background
// tasks until ctx is cancelled or one of them fails. The server is shut down
// gracefully.
func (a *Application) Run(ctx context.Context) error {
	handler := a.Handler()
	cfg := a.Config()
	log := a.Logger()
	defer func() { _ = log.Sync() }()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Printf("🚀  %s running on %s%s  [%s]\n", cfg.App.Name, cfg.App.URL, srv.Addr, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	a.mu.Lock()
	tasks := append([]Task(nil), a.tasks...)
	a.mu.Unlock()
	for _, task := range tasks {
		g.Go(func() error { return task(gctx) })
	}

	return g.Wait()
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return Version }
