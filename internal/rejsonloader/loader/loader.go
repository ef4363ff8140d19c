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

// Package loader writes a JSON file into a RedisJSON store under its base
// name, reads it back and prints what the store returned.
package loader

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/innovationmech/rejson-loader/internal/rejsonloader/document"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/metrics"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/store"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/ui"
)

// DocumentStore stores and fetches whole JSON documents by key.
type DocumentStore interface {
	SetDocument(ctx context.Context, key, text string) error
	GetDocument(ctx context.Context, key string) (string, error)
	Close() error
}

// Connector opens a DocumentStore and verifies that it is reachable.
type Connector func(ctx context.Context, config *store.RedisConfig) (DocumentStore, error)

// RedisConnector connects to a RedisJSON server with go-redis.
func RedisConnector(ctx context.Context, config *store.RedisConfig) (DocumentStore, error) {
	s, err := store.Connect(ctx, config)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Result is what a successful run stored and read back.
type Result struct {
	Key   string
	Value interface{}
	Text  string
}

// Loader runs the read, connect, set, get and print sequence once per call.
type Loader struct {
	redis   *store.RedisConfig
	connect Connector
	printer *ui.Printer
	metrics *metrics.LoaderMetrics
	logger  *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithConnector replaces the go-redis connector.
func WithConnector(connect Connector) Option {
	return func(l *Loader) {
		l.connect = connect
	}
}

// WithPrinter sets the result printer.
func WithPrinter(printer *ui.Printer) Option {
	return func(l *Loader) {
		l.printer = printer
	}
}

// WithMetrics sets the metrics the run is recorded into.
func WithMetrics(m *metrics.LoaderMetrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader for the store described by config.
func New(config *store.RedisConfig, options ...Option) *Loader {
	if config == nil {
		config = store.DefaultRedisConfig()
	}

	l := &Loader{
		redis:   config,
		connect: RedisConnector,
		printer: ui.NewPrinter(),
		metrics: metrics.NewLoaderMetrics(),
		logger:  zap.NewNop(),
	}

	for _, option := range options {
		option(l)
	}

	return l
}

// Run loads filePath into the store and prints the document read back.
// File and parse errors are reported before any connection is made.
func (l *Loader) Run(ctx context.Context, filePath string) (*Result, error) {
	start := time.Now()
	result, err := l.run(ctx, filePath)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = strings.ToLower(CodeOf(err))
		l.logger.Error("Failed to load document",
			zap.String("file", filePath),
			zap.String("addr", l.redis.Addr()),
			zap.String("kind", CodeOf(err)),
			zap.Error(err))
	} else {
		l.logger.Info("Document loaded",
			zap.String("key", result.Key),
			zap.String("addr", l.redis.Addr()),
			zap.Int("db", l.redis.DB),
			zap.Duration("elapsed", time.Since(start)))
	}
	l.metrics.RecordRun(outcome)

	return result, err
}

func (l *Loader) run(ctx context.Context, filePath string) (*Result, error) {
	stageStart := time.Now()
	doc, err := document.Load(filePath)
	l.metrics.ObserveStage(metrics.StageRead, time.Since(stageStart))
	if err != nil {
		return nil, classifyLoadError(err)
	}
	l.metrics.SetDocumentSize(doc.Size)
	l.logger.Debug("Document parsed", zap.String("file", filePath), zap.String("key", doc.Key), zap.Int("bytes", doc.Size))

	text, err := document.Encode(doc.Value)
	if err != nil {
		return nil, NewMalformedInputError("cannot re-serialize document", err)
	}

	stageStart = time.Now()
	s, err := l.connect(ctx, l.redis)
	l.metrics.ObserveStage(metrics.StageConnect, time.Since(stageStart))
	if err != nil {
		if isConfigError(err) {
			return nil, NewArgumentError("invalid store settings", err)
		}
		return nil, NewConnectionError("cannot reach store at "+l.redis.Addr(), err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			l.logger.Warn("Failed to close store connection", zap.Error(cerr))
		}
	}()
	l.logger.Debug("Connected to store", zap.String("addr", l.redis.Addr()), zap.Int("db", l.redis.DB))

	stageStart = time.Now()
	err = s.SetDocument(ctx, doc.Key, text)
	l.metrics.ObserveStage(metrics.StageSet, time.Since(stageStart))
	if err != nil {
		return nil, NewRemoteCommandError("JSON.SET "+doc.Key, err)
	}

	stageStart = time.Now()
	reply, err := s.GetDocument(ctx, doc.Key)
	l.metrics.ObserveStage(metrics.StageGet, time.Since(stageStart))
	if err != nil {
		return nil, NewRemoteCommandError("JSON.GET "+doc.Key, err)
	}

	value, err := document.Parse([]byte(reply))
	if err != nil {
		return nil, NewRemoteCommandError("JSON.GET "+doc.Key+" returned invalid JSON", err)
	}

	rendered, err := document.Indent(value)
	if err != nil {
		return nil, NewRemoteCommandError("cannot render reply for "+doc.Key, err)
	}

	if err := l.printer.PrintLoaded(doc.Key, l.redis.Addr(), l.redis.DB, rendered); err != nil {
		return nil, NewIOError("cannot write output", err)
	}

	return &Result{Key: doc.Key, Value: value, Text: reply}, nil
}

func classifyLoadError(err error) error {
	switch {
	case errors.Is(err, document.ErrInvalidKey):
		return NewArgumentError("invalid FILE argument", err)
	case errors.Is(err, document.ErrMalformed):
		return NewMalformedInputError("", err)
	default:
		return NewIOError("", err)
	}
}

func isConfigError(err error) bool {
	return errors.Is(err, store.ErrInvalidRedisConfig) ||
		errors.Is(err, store.ErrEmptyHost) ||
		errors.Is(err, store.ErrInvalidPort) ||
		errors.Is(err, store.ErrInvalidDB) ||
		errors.Is(err, store.ErrInvalidTimeout)
}
