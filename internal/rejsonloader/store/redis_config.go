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

package store

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var (
	// ErrInvalidRedisConfig indicates that the Redis configuration is invalid.
	ErrInvalidRedisConfig = errors.New("invalid redis configuration")

	// ErrEmptyHost indicates that the Redis host is empty.
	ErrEmptyHost = errors.New("redis host cannot be empty")

	// ErrInvalidPort indicates that the Redis port is out of range.
	ErrInvalidPort = errors.New("redis port must be between 1 and 65535")

	// ErrInvalidDB indicates that the Redis DB number is invalid.
	ErrInvalidDB = errors.New("redis DB number must be >= 0")

	// ErrInvalidTimeout indicates that a timeout value is invalid.
	ErrInvalidTimeout = errors.New("timeout must not be negative")
)

const (
	// DefaultHost is the loopback address used when no host is given.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the standard Redis port.
	DefaultPort = 6379
)

// RedisConfig holds the parameters of a single standalone Redis connection.
type RedisConfig struct {
	// Host is the Redis server host name or IP address.
	// Default: 127.0.0.1
	Host string `json:"host" yaml:"host"`

	// Port is the Redis server TCP port.
	// Default: 6379
	Port int `json:"port" yaml:"port"`

	// DB is the Redis database number to select. Must be >= 0.
	// Default: 0
	DB int `json:"db" yaml:"db"`

	// DialTimeout is the timeout for establishing the connection.
	// Default: 5 seconds
	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads.
	// Default: 3 seconds
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the timeout for socket writes.
	// Default: 3 seconds
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// DefaultRedisConfig returns a configuration pointing at a local Redis.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:         DefaultHost,
		Port:         DefaultPort,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the "host:port" form of the server address.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks that the configuration can be used to dial Redis.
func (c *RedisConfig) Validate() error {
	if c.Host == "" {
		return ErrEmptyHost
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	if c.DB < 0 {
		return ErrInvalidDB
	}

	if c.DialTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// ApplyDefaults applies default values to unset fields.
func (c *RedisConfig) ApplyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}

	if c.Port == 0 {
		c.Port = DefaultPort
	}

	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
}
