// Package config loads named configuration sources into structs.
//
// A source is a file in any format viper understands (YAML, TOML, JSON,
// env files). Values decode via mapstructure tags, with duration strings
// and comma-separated lists handled; environment variables override file
// values.
//
//	type AppConfig struct {
//	    Addr     string        `mapstructure:"addr"`
//	    Shutdown time.Duration `mapstructure:"shutdown"`
//	    DB       db.Config     `mapstructure:"db"`
//	}
//
//	var cfg AppConfig
//	err := config.Load("app", &cfg, config.WithPath("config"))
package config
