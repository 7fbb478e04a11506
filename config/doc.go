// Package config loads service configuration with viper.
//
// A YAML file found under cmd/<service>/config.yml is read first, then an
// optional .env file (godotenv), then environment variables named after the
// config keys (server.port is SERVER_PORT).
//
//	var cfg app.Config
//	if err := config.LoadConfig("storefront", &cfg); err != nil { ... }
package config
