package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/propauth/internal/mockauth"
	"github.com/aussiebroadwan/propauth/pkg/cryptox"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
var BuildVersion = "v0.1.0"

func main() {
	cfg, err := mockauth.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slogx.New(slogx.Config{
		Service: "mockauth",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			log.Fatalf("failed to generate signing secret: %v", err)
		}
		logger.Warn("MOCKAUTH_JWT_SECRET not set, sessions will not survive a restart")
	}

	srv, err := mockauth.New(mockauth.Options{
		Secret:     []byte(secret),
		Issuer:     cfg.Issuer,
		SessionTTL: cfg.TokenTTL,
		ResetURL:   cfg.ResetURL,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("failed to initialize backend: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port), cfg.ShutdownGracePeriod, logger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
