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

// Package logger holds the process-wide zap logger used by rejson-loader.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger for the application.
	Logger *zap.Logger
	// level backs Logger and can be changed after initialization.
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	// mu protects Logger from concurrent access
	mu sync.RWMutex
)

// InitLogger builds the production logger writing JSON lines to stderr.
// It does nothing while Logger is set, so tests can install their own.
func InitLogger() {
	mu.Lock()
	defer mu.Unlock()

	if Logger != nil {
		return
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	Logger = l
}

// SetVerbose switches the global level between info and debug.
func SetVerbose(verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// GetLogger returns the global logger, initializing it on first use.
// A logger assigned directly to Logger is returned as is.
func GetLogger() *zap.Logger {
	mu.RLock()
	if Logger != nil {
		defer mu.RUnlock()
		return Logger
	}
	mu.RUnlock()

	InitLogger()

	mu.RLock()
	defer mu.RUnlock()
	return Logger
}

// ResetLogger flushes and drops the global logger.
func ResetLogger() {
	mu.Lock()
	defer mu.Unlock()

	if Logger != nil {
		_ = Logger.Sync()
	}
	Logger = nil
	level.SetLevel(zapcore.InfoLevel)
}
