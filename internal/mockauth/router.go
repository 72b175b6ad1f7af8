package mockauth

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/aussiebroadwan/propauth/internal/mockauth/docs"
	"github.com/aussiebroadwan/propauth/pkg/httpx"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// APIPrefix is where the auth and client routes are mounted. Clients use
// server URL + APIPrefix as their base URL.
const APIPrefix = "/api"

// RouterConfig holds what NewRouter needs besides the handlers.
type RouterConfig struct {
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer

	// LoginLimit throttles credential endpoints per IP and email. The zero
	// value uses httpx.CredentialLimit.
	LoginLimit httpx.RateLimitConfig

	StartTime time.Time
}

// NewRouter mounts the backend routes:
//
//	GET  /livez
//	GET  /metrics
//	GET  /swagger/*
//	POST /api/auth/{signup,login,verify-2fa,forgot-password,reset-password}
//	GET  /api/auth/2fa/generate/{userId}
//	POST /api/auth/2fa/{enable,disable}/{userId}?code=
//	GET|PUT /api/client/profile
//	PUT  /api/client/change-password?currentPassword=&newPassword=
//
//	@title						Property Management Auth (mock)
//	@version					0.1.0
//	@description				Local stand-in for the property-management authentication backend.
//
//	@host						localhost:8080
//	@BasePath					/api
//
//	@schemes					http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slogx.Discard()
	}
	if cfg.LoginLimit.RequestsPerWindow == 0 {
		cfg.LoginLimit = httpx.CredentialLimit
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}

	r := chi.NewRouter()
	r.Use(slogx.HTTPMiddleware(cfg.Logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/livez", livez(cfg.StartTime))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.Handler())

	limited := httpx.RateLimitCredentials(cfg.LoginLimit, "email")
	session := httpx.AuthnMiddleware(h.Service.VerifySession)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.With(limited).Post("/login", h.Login)
			r.With(limited).Post("/verify-2fa", h.VerifyTwoFactor)
			r.With(limited).Post("/forgot-password", h.ForgotPassword)
			r.With(limited).Post("/reset-password", h.ResetPassword)

			r.With(httpx.AuthnMiddleware(h.Service.VerifyAny)).Get("/2fa/generate/{userId}", h.GenerateTwoFactor)
			r.With(session).Post("/2fa/enable/{userId}", h.EnableTwoFactor)
			r.With(session).Post("/2fa/disable/{userId}", h.DisableTwoFactor)
		})

		r.Route("/client", func(r chi.Router) {
			r.Use(session)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/change-password", h.ChangePassword)
		})
	})

	return r
}

func livez(start time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(start).Seconds()),
		})
	}
}
