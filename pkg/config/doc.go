// Package config provides a type-safe, generic and cached way to load
// configuration from environment variables, plus YAML file loading for tool
// settings.
//
// It wraps `github.com/joho/godotenv`, `github.com/caarlos0/env/v11` and
// `gopkg.in/yaml.v3` behind a small API that:
//
//   - Loads values from one or multiple `.env` files (fallback to the default
//     `.env` in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only parsed
//     once for the lifetime of the process.
//   - Decodes YAML files strictly, rejecting unknown keys.
//
// # Usage
//
//	type Env struct {
//	    LogLevel  string `env:"QSGEN_LOG_LEVEL" envDefault:"info"`
//	    LogFormat string `env:"QSGEN_LOG_FORMAT" envDefault:"text"`
//	    Config    string `env:"QSGEN_CONFIG"`
//	}
//
//	var e Env
//	if err := config.Load(&e); err != nil {
//	    return err
//	}
//
//	cfg := generator.DefaultConfig()
//	if e.Config != "" {
//	    if err := config.LoadFile(e.Config, &cfg); err != nil {
//	        return err
//	    }
//	}
//
// Subsequent calls to `config.Load(&e)` are served from the in-memory cache.
// A failed parse is not cached, so a later call can succeed once the
// environment is fixed.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`: failed to parse env vars into struct.
//   - `ErrConfigNotLoaded`: requested config type has not been loaded yet.
//   - `ErrNilPointer`: nil pointer passed to a loader.
//   - `ErrLoadingEnvFile`: a .env file could not be read.
//   - `ErrReadingFile`, `ErrParsingFile`: YAML file problems.
//
// # Testing Helpers
//
// Use `ResetCache()` to clear the global cache between tests or
// `ForceReloadConfig(&cfg)` to reload a particular struct after the process
// environment changes.
package config
