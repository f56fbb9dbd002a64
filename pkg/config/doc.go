// Package config loads typed settings from the environment.
//
// Settings are plain structs annotated with `env` tags and parsed by
// github.com/caarlos0/env. A .env file in the working directory is read
// once through github.com/joho/godotenv; LoadEnv reads other files.
//
// Load parses each struct type once and hands out copies afterwards, so the
// HTTP server, the logger and the validator all agree on one configuration.
// Reload and ResetCache exist for tests and for processes that change their
// environment.
//
//	type Config struct {
//		Logger logger.Config
//		Server httpserver.Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
