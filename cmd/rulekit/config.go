package main

import "time"

// validatorConfig tunes the validation engine and the HTTP surface around it.
type validatorConfig struct {
	Language       string        `env:"VALIDATOR_LANGUAGE" envDefault:"en"`
	Translations   string        `env:"VALIDATOR_TRANSLATIONS"`
	Strict         bool          `env:"VALIDATOR_STRICT" envDefault:"false"`
	ParserCapacity int           `env:"VALIDATOR_PARSER_CAPACITY" envDefault:"1024"`
	ResolverTTL    time.Duration `env:"VALIDATOR_RESOLVER_TTL" envDefault:"5m"`
	MaxBodySize    int64         `env:"UPLOAD_MAX_BODY" envDefault:"33554432"`
	MaxFormMemory  int64         `env:"UPLOAD_MAX_MEMORY" envDefault:"8388608"`
}
