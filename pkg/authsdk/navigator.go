package authsdk

import (
	"context"
	"log/slog"
)

// Routes the APIClient navigates to when the server rejects the session.
const (
	RouteLogin        = "/login"
	RouteUnauthorized = "/unauthorized"
)

// Navigator is told where the user must go next. Implementations decide
// what navigating means (redirect, prompt, print).
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

type logNavigator struct {
	log *slog.Logger
}

func (n logNavigator) Navigate(ctx context.Context, route string) {
	n.log.InfoContext(ctx, "navigate", "route", route)
}
