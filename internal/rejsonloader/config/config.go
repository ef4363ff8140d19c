// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

// Package config resolves rejson-loader settings from defaults, an optional
// config file, REJSON_LOADER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/innovationmech/rejson-loader/internal/rejsonloader/store"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "REJSON_LOADER"

// Configuration keys. Flags use the same names with '-' instead of '_'.
const (
	KeyAddress      = "address"
	KeyPort         = "port"
	KeyDB           = "db"
	KeyTimeout      = "timeout"
	KeyDialTimeout  = "dial_timeout"
	KeyReadTimeout  = "read_timeout"
	KeyWriteTimeout = "write_timeout"
	KeyPushgateway  = "pushgateway"
	KeyVerbose      = "verbose"
	KeyNoColor      = "no_color"
)

var (
	// ErrConfigFile indicates that the given config file could not be read or parsed.
	ErrConfigFile = errors.New("cannot load config file")

	// ErrInvalidConfig indicates that a resolved setting is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the resolved loader configuration.
type Config struct {
	Address      string        `mapstructure:"address"`
	Port         int           `mapstructure:"port"`
	DB           int           `mapstructure:"db"`
	Timeout      time.Duration `mapstructure:"timeout"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Pushgateway  string        `mapstructure:"pushgateway"`
	Verbose      bool          `mapstructure:"verbose"`
	NoColor      bool          `mapstructure:"no_color"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	SetDefaults(v)
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	d := store.DefaultRedisConfig()

	v.SetDefault(KeyAddress, d.Host)
	v.SetDefault(KeyPort, d.Port)
	v.SetDefault(KeyDB, d.DB)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyDialTimeout, d.DialTimeout)
	v.SetDefault(KeyReadTimeout, d.ReadTimeout)
	v.SetDefault(KeyWriteTimeout, d.WriteTimeout)
	v.SetDefault(KeyPushgateway, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyNoColor, false)
}

// Load reads configFile when it is non-empty and unmarshals all settings.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrConfigFile, configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges that viper cannot express.
func (c *Config) Validate() error {
	if err := c.RedisConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}

	if c.Pushgateway != "" {
		u, err := url.Parse(c.Pushgateway)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: pushgateway must be an absolute URL, got %q", ErrInvalidConfig, c.Pushgateway)
		}
	}

	return nil
}

// RedisConfig converts the settings into a store connection configuration.
func (c *Config) RedisConfig() *store.RedisConfig {
	return &store.RedisConfig{
		Host:         c.Address,
		Port:         c.Port,
		DB:           c.DB,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
