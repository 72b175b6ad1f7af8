package mockauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/httpx"
	"github.com/aussiebroadwan/propauth/pkg/jwtx"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Options configures New.
type Options struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	ResetURL   string
	Logger     *slog.Logger
	Mailer     Mailer // defaults to a LogMailer on Logger
	LoginLimit httpx.RateLimitConfig
	Now        func() time.Time
}

// Server is a ready to run backend: directory, service, and router.
type Server struct {
	Service  *Service
	Handler  http.Handler
	Registry *prometheus.Registry
}

func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slogx.Discard()
	}

	tokens, err := jwtx.NewHS256(opts.Secret, opts.Issuer)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	mailer := opts.Mailer
	if mailer == nil {
		mailer = LogMailer{Logger: opts.Logger, ResetURL: opts.ResetURL}
	}

	svc := &Service{
		Users:      NewDirectory(),
		Tokens:     tokens,
		Mailer:     mailer,
		Metrics:    NewMetrics(reg),
		SessionTTL: opts.SessionTTL,
		Now:        opts.Now,
	}

	return &Server{
		Service:  svc,
		Registry: reg,
		Handler: NewRouter(NewHandler(svc), RouterConfig{
			Logger:     opts.Logger,
			Gatherer:   reg,
			LoginLimit: opts.LoginLimit,
		}),
	}, nil
}

// ListenAndServe serves on addr until ctx is done, then drains in-flight
// requests for up to grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()
	log.Info("mock auth backend listening", "addr", addr)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down mock auth backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful server shutdown failed", "error", err)
		return srv.Close()
	}
	return nil
}
