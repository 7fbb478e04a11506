// Command storefront serves the storefront account page.
//
// STOREFRONT_CONFIG_FILE and STOREFRONT_ENV_FILE point at explicit config
// and .env files; without them the standard locations are searched.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/storefront/app"
	"github.com/kbukum/storefront/bootstrap"
	"github.com/kbukum/storefront/config"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/version"
)

func main() {
	var cfg app.Config
	err := config.LoadConfig(app.ServiceName, &cfg,
		config.WithConfigFile(os.Getenv("STOREFRONT_CONFIG_FILE")),
		config.WithEnvFile(os.Getenv("STOREFRONT_ENV_FILE")),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Version
	}
	cfg.ApplyDefaults()
	log := logger.Init(cfg.Logging, cfg.Name)

	a, err := app.New(&cfg,
		bootstrap.WithLogger(log),
		bootstrap.WithGracefulTimeout(cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		log.Fatal("storefront failed to start", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := a.Run(context.Background()); err != nil {
		log.Fatal("storefront stopped with error", logger.Fields(logger.FieldError, err.Error()))
	}
}
