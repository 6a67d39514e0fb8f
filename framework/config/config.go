package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when the environment cannot be parsed into
// Config.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig     `envPrefix:"APP_"`
	Log     LogConfig     `envPrefix:"LOG_"`
	Ingest  IngestConfig  `envPrefix:"INGEST_"`
	Session SessionConfig `envPrefix:"SESSION_"`
}

type AppConfig struct {
	Name  string `env:"NAME" envDefault:"passgate"`
	Env   string `env:"ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"DEBUG" envDefault:"true"`
	URL   string `env:"URL" envDefault:"http://localhost"`
	Port  string `env:"PORT" envDefault:"8000"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // json | console
}

// IngestConfig bounds what a single validation run may consume.
type IngestConfig struct {
	AcceptType    string `env:"ACCEPT_TYPE" envDefault:"text/plain"`
	MaxFileBytes  int64  `env:"MAX_FILE_BYTES" envDefault:"1048576"`
	MaxFiles      int    `env:"MAX_FILES" envDefault:"32"`
	MaxInputChars int    `env:"MAX_INPUT_CHARS" envDefault:"1048576"`
}

type SessionConfig struct {
	Cookie        string        `env:"COOKIE" envDefault:"passgate_session"`
	TTL           time.Duration `env:"TTL" envDefault:"2h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
}

// Load reads the given .env files (default ".env") and populates a Config
// from them and the process environment. Process variables win over file
// values and later files win over earlier ones. Missing files are skipped:
// .env may not exist in production.
//
//	cfg, err := config.Load()
//	cfg, err := config.Load(".env", ".env.local")
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}

	vars := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
		maps.Copy(vars, m)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error. Use it at bootstrap only.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.App.Port }

func (c *Config) IsLocal() bool      { return c.App.Env == "local" }
func (c *Config) IsProduction() bool { return c.App.Env == "production" }
