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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRedisConfig(t *testing.T) {
	config := DefaultRedisConfig()

	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, 6379, config.Port)
	assert.Equal(t, 0, config.DB)
	assert.Equal(t, "127.0.0.1:6379", config.Addr())
	assert.NoError(t, config.Validate())
}

func TestRedisConfig_Addr(t *testing.T) {
	tests := []struct {
		name   string
		config RedisConfig
		want   string
	}{
		{name: "ipv4", config: RedisConfig{Host: "10.0.0.1", Port: 6380}, want: "10.0.0.1:6380"},
		{name: "hostname", config: RedisConfig{Host: "redis.local", Port: 6379}, want: "redis.local:6379"},
		{name: "ipv6", config: RedisConfig{Host: "::1", Port: 6379}, want: "[::1]:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.Addr())
		})
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  RedisConfig
		wantErr error
	}{
		{name: "valid", config: RedisConfig{Host: "localhost", Port: 6379}},
		{name: "empty host", config: RedisConfig{Port: 6379}, wantErr: ErrEmptyHost},
		{name: "zero port", config: RedisConfig{Host: "localhost"}, wantErr: ErrInvalidPort},
		{name: "port too large", config: RedisConfig{Host: "localhost", Port: 70000}, wantErr: ErrInvalidPort},
		{name: "negative db", config: RedisConfig{Host: "localhost", Port: 6379, DB: -1}, wantErr: ErrInvalidDB},
		{name: "negative timeout", config: RedisConfig{Host: "localhost", Port: 6379, DialTimeout: -time.Second}, wantErr: ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRedisConfig_ApplyDefaults(t *testing.T) {
	config := &RedisConfig{DB: 3, ReadTimeout: time.Second}
	config.ApplyDefaults()

	assert.Equal(t, DefaultHost, config.Host)
	assert.Equal(t, DefaultPort, config.Port)
	assert.Equal(t, 3, config.DB)
	assert.Equal(t, 5*time.Second, config.DialTimeout)
	assert.Equal(t, time.Second, config.ReadTimeout)
	assert.Equal(t, 3*time.Second, config.WriteTimeout)
}
