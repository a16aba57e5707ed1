// Package config provides type-safe environment variable loading with
// per-type caching using Go generics. A .env file is loaded automatically on
// first use and parsing is delegated to the caarlos0/env library.
//
//	type CancellationEnv struct {
//		Timeout time.Duration `env:"CANCEL_TIMEOUT"`
//		Reason  string        `env:"CANCEL_REASON" envDefault:"Request terminated"`
//	}
//
//	var cfg CancellationEnv
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is loaded once per process lifetime; subsequent
// Load calls for the same type return the cached value.
package config
