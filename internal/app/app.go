package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/aussiebroadwan/propauth/pkg/sessionstore"
	"github.com/aussiebroadwan/propauth/pkg/sessionstore/sqlite"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// BuildVersion should be set at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application wires the clients to the configured session store.
type Application struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer

	store   sessionstore.Store
	closers []func() error

	sdk *authsdk.SDKClient
	api *authsdk.APIClient
}

// New builds the application. Command output goes to out and logs to
// logOut.
func New(ctx context.Context, cfg Config, out, logOut io.Writer) (*Application, error) {
	app := &Application{
		cfg: cfg,
		out: out,
		logger: slogx.New(slogx.Config{
			Service: "propauth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  logOut,
		}),
	}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}
	app.initClients()
	return app, nil
}

// Close releases the session store.
func (app *Application) Close() error {
	var first error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	app.closers = nil
	return first
}

func (app *Application) initStore(ctx context.Context) error {
	store, closer, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.store = store
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	app.logger.Debug("session store ready", "driver", app.cfg.Store)
	return nil
}

func (app *Application) initClients() {
	app.sdk = authsdk.NewSDKClient(app.cfg.APIBaseURL)
	app.sdk.Logger = app.logger

	app.api = authsdk.NewAPIClient(app.cfg.APIBaseURL, app.store,
		authsdk.WithLogger(app.logger),
		authsdk.WithTimeout(app.cfg.RequestTimeout),
		authsdk.WithRateLimit(app.cfg.RateLimit, app.cfg.RateBurst),
		authsdk.WithNavigator(authsdk.NavigatorFunc(app.navigate)),
	)
}

// navigate tells the user where the session flow sends them next.
func (app *Application) navigate(_ context.Context, route string) {
	switch route {
	case authsdk.RouteLogin:
		fmt.Fprintln(app.out, "Session expired. Please log in again (propauth login).")
	case authsdk.RouteUnauthorized:
		fmt.Fprintln(app.out, "You are not authorized to perform this action.")
	default:
		fmt.Fprintf(app.out, "Continue at %s\n", route)
	}
}

// OpenStore returns the session store selected by cfg.Store and a close
// function (nil when there is nothing to release).
func OpenStore(ctx context.Context, cfg Config) (sessionstore.Store, func() error, error) {
	switch cfg.Store {
	case StoreMemory:
		return sessionstore.NewMemory(), nil, nil

	case StoreFile:
		path := cfg.StorePath
		if path == "" {
			path = sessionstore.DefaultFilePath()
		}
		return sessionstore.NewFile(path), nil, nil

	case StoreSQLite:
		path := cfg.StorePath
		if path == "" {
			path = filepath.Join(filepath.Dir(sessionstore.DefaultFilePath()), "session.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create session directory: %w", err)
		}

		st, err := sqlite.NewStore(fmt.Sprintf("file:%s?_journal_mode=WAL", path))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session database: %w", err)
		}
		if err := st.ApplyMigrations(); err != nil {
			_ = st.Close()
			return nil, nil, fmt.Errorf("failed to apply session migrations: %w", err)
		}
		return st, st.Close, nil

	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return sessionstore.NewRedis(client, cfg.RedisPrefix), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
