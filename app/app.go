package app

import (
	"context"
	"fmt"

	"github.com/kbukum/storefront/auth"
	"github.com/kbukum/storefront/authform"
	"github.com/kbukum/storefront/bootstrap"
	"github.com/kbukum/storefront/challenge"
	"github.com/kbukum/storefront/component"
	"github.com/kbukum/storefront/formstore"
	"github.com/kbukum/storefront/identity/toolkit"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/redis"
	"github.com/kbukum/storefront/server"
	"github.com/kbukum/storefront/web"
)

// New builds the application. Components are registered in start order:
// telemetry first, then the form store backend, then the HTTP server.
func New(cfg *Config, opts ...bootstrap.Option) (*bootstrap.App[*Config], error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}
	log := a.Logger

	if cfg.Observability.Enabled {
		if err := a.RegisterComponent(observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)); err != nil {
			return nil, err
		}
	}

	store, err := newStore(a, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := toolkit.New(cfg.Identity, log)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	federated, err := cfg.Federated.Build()
	if err != nil {
		return nil, fmt.Errorf("federated sign-in: %w", err)
	}
	metrics, err := observability.NewAuthMetrics(observability.Meter())
	if err != nil {
		return nil, fmt.Errorf("auth metrics: %w", err)
	}
	recaptcha := challenge.NewRecaptcha(cfg.Challenge)

	handler, err := web.New(cfg.Routes, store, authform.Deps{
		Provider:            provider,
		Challenge:           recaptcha,
		Federated:           federated,
		Logger:              log,
		Metrics:             metrics,
		RedirectAfterSignUp: cfg.Auth.RedirectAfterSignUp,
	}, web.Page{
		SiteKey:    recaptcha.SiteKey(),
		WidgetSize: recaptcha.Size(),
		Federated:  federatedLinks(federated),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, a.Components.HealthAll)
	handler.Register(srv.GinEngine())
	if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}

	log.Info("Storefront configured", map[string]any{
		"forms":     cfg.Forms.Store,
		"federated": cfg.Federated.Describe(),
		"otp":       recaptcha.SiteKey() != "",
	})
	a.OnReady(func(context.Context) error {
		log.Info("Storefront ready", logger.Fields("addr", srv.Addr(), "account", cfg.Routes.Account))
		return nil
	})
	return a, nil
}

// newStore picks the form store backend and registers the component that
// backs it.
func newStore(a *bootstrap.App[*Config], cfg *Config) (formstore.Store, error) {
	var (
		store formstore.Store
		comp  component.Component
	)
	switch cfg.Forms.Store {
	case formstore.BackendRedis:
		rc := redis.NewComponent(cfg.Redis, a.Logger)
		rs, err := formstore.NewRedis(cfg.Forms, rc, a.Logger)
		if err != nil {
			return nil, err
		}
		store, comp = rs, rc
	default:
		mem := formstore.NewMemory(cfg.Forms, a.Logger)
		store, comp = mem, mem
	}
	if err := a.RegisterComponent(comp); err != nil {
		return nil, err
	}
	return store, nil
}

func federatedLinks(reg *auth.Registry) []web.FederatedLink {
	var links []web.FederatedLink
	for _, name := range reg.Names() {
		if p, ok := reg.Get(name); ok {
			links = append(links, web.FederatedLink{Name: name, DisplayName: p.DisplayName()})
		}
	}
	return links
}
