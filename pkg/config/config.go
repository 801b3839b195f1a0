package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Option configures the loader.
type Option func(*loader)

type loader struct {
	paths     []string
	envPrefix string
	defaults  map[string]any
}

// WithPath adds a directory to search for the configuration source.
// The working directory is always searched.
func WithPath(dir string) Option {
	return func(l *loader) {
		if dir != "" {
			l.paths = append(l.paths, dir)
		}
	}
}

// WithEnvPrefix sets the prefix for environment variable overrides.
// With prefix "APP", the key "server.port" is overridden by APP_SERVER_PORT.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) {
		l.envPrefix = prefix
	}
}

// WithDefault sets a default value for a key, applied before the source is
// read.
func WithDefault(key string, value any) Option {
	return func(l *loader) {
		if l.defaults == nil {
			l.defaults = make(map[string]any)
		}
		l.defaults[key] = value
	}
}

// Load reads the named configuration source into out. The name is either a
// bare source name resolved against the search paths (any format viper
// understands: "app" finds app.yaml, app.toml, ...) or an explicit file path
// when it carries an extension. Environment variables override file values.
func Load(name string, out any, opts ...Option) error {
	if name == "" {
		return ErrNoSource
	}

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	if filepath.Ext(name) != "" {
		v.SetConfigFile(name)
	} else {
		v.SetConfigName(name)
		v.AddConfigPath(".")
		for _, dir := range l.paths {
			v.AddConfigPath(dir)
		}
	}

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	if l.envPrefix != "" {
		v.SetEnvPrefix(l.envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return errors.Join(ErrReadSource, err)
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(out, hook); err != nil {
		return errors.Join(ErrDecodeSource, err)
	}

	return nil
}
