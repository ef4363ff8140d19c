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

// Package store talks to a RedisJSON-capable server through go-redis.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RootPath addresses the whole document in JSON.SET and JSON.GET.
const RootPath = "."

var (
	// ErrConnectionFailed indicates that the Redis server could not be reached.
	ErrConnectionFailed = errors.New("redis connection failed")

	// ErrConnectionClosed indicates that the store has already been closed.
	ErrConnectionClosed = errors.New("redis connection is closed")

	// ErrCommandFailed indicates that Redis answered a command with an error.
	ErrCommandFailed = errors.New("redis command failed")

	// ErrUnexpectedReply indicates a reply that does not match the command contract.
	ErrUnexpectedReply = errors.New("unexpected redis reply")

	// ErrDocumentNotFound indicates that no document is stored under the key.
	ErrDocumentNotFound = errors.New("document not found")
)

// RedisClient is the subset of the go-redis client used by the store.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	JSONSet(ctx context.Context, key, path string, value interface{}) *redis.StatusCmd
	JSONGet(ctx context.Context, key string, paths ...string) *redis.JSONCmd
	Close() error
}

// RedisJSONStore stores whole JSON documents at the root path of a key.
type RedisJSONStore struct {
	config *RedisConfig
	client RedisClient
	closed bool
}

// NewRedisJSONStore creates a store backed by a standalone go-redis client.
// The client dials lazily; use Connect to verify reachability up front.
func NewRedisJSONStore(config *RedisConfig) (*RedisJSONStore, error) {
	if config == nil {
		return nil, ErrInvalidRedisConfig
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		DB:           config.DB,
		Protocol:     2,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolSize:     1,
		MaxRetries:   -1,

		ContextTimeoutEnabled: true,
	})

	return NewRedisJSONStoreWithClient(config, client), nil
}

// NewRedisJSONStoreWithClient wraps an existing client.
func NewRedisJSONStoreWithClient(config *RedisConfig, client RedisClient) *RedisJSONStore {
	return &RedisJSONStore{
		config: config,
		client: client,
	}
}

// Connect creates a store and pings the server. The client is closed again
// if the server cannot be reached.
func Connect(ctx context.Context, config *RedisConfig) (*RedisJSONStore, error) {
	s, err := NewRedisJSONStore(config)
	if err != nil {
		return nil, err
	}

	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// Ping checks that the server answers.
func (s *RedisJSONStore) Ping(ctx context.Context) error {
	if s.closed {
		return ErrConnectionClosed
	}

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnectionFailed, s.config.Addr(), err)
	}

	return nil
}

// SetDocument runs JSON.SET key . text, overwriting any existing value.
func (s *RedisJSONStore) SetDocument(ctx context.Context, key, text string) error {
	if s.closed {
		return ErrConnectionClosed
	}

	status, err := s.client.JSONSet(ctx, key, RootPath, text).Result()
	if err != nil {
		return fmt.Errorf("%w: JSON.SET %s: %w", ErrCommandFailed, key, err)
	}

	if status != "OK" {
		return fmt.Errorf("%w: JSON.SET %s returned %q", ErrUnexpectedReply, key, status)
	}

	return nil
}

// GetDocument runs JSON.GET key . and returns the raw JSON text.
func (s *RedisJSONStore) GetDocument(ctx context.Context, key string) (string, error) {
	if s.closed {
		return "", ErrConnectionClosed
	}

	text, err := s.client.JSONGet(ctx, key, RootPath).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("%w: JSON.GET %s: %w", ErrCommandFailed, key, err)
	}

	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}

	return text, nil
}

// Close releases the client.
func (s *RedisJSONStore) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if s.client != nil {
		return s.client.Close()
	}

	return nil
}
