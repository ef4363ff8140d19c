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

// Package metrics records what a single loader run did and can hand the
// result to a Prometheus Pushgateway, since the process exits before any
// scraper could reach it.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Namespace prefixes every metric name.
const Namespace = "rejson_loader"

// DefaultJob is the pushgateway job name.
const DefaultJob = "rejson_loader"

// Pipeline stages observed by StageDuration.
const (
	StageRead    = "read"
	StageConnect = "connect"
	StageSet     = "set"
	StageGet     = "get"
)

// OutcomeSuccess labels a run that completed without error.
const OutcomeSuccess = "success"

// LoaderMetrics holds the collectors of one run on a private registry.
type LoaderMetrics struct {
	runsTotal     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	documentBytes prometheus.Gauge
	lastRunTime   prometheus.Gauge

	registry *prometheus.Registry
}

// NewLoaderMetrics creates and registers the loader collectors.
func NewLoaderMetrics() *LoaderMetrics {
	m := &LoaderMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "runs_total",
				Help:      "Loader runs by outcome (success or error kind).",
			},
			[]string{"outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each loader stage.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"stage"},
		),
		documentBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "document_bytes",
			Help:      "Size of the loaded document file in bytes.",
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last run finished.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.runsTotal, m.stageDuration, m.documentBytes, m.lastRunTime)
	return m
}

// ObserveStage records how long stage took.
func (m *LoaderMetrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetDocumentSize records the size of the document file.
func (m *LoaderMetrics) SetDocumentSize(n int) {
	m.documentBytes.Set(float64(n))
}

// RecordRun counts a finished run.
func (m *LoaderMetrics) RecordRun(outcome string) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.lastRunTime.SetToCurrentTime()
}

// Registry exposes the underlying registry.
func (m *LoaderMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Push replaces the job's metric group on the pushgateway at url.
func (m *LoaderMetrics) Push(ctx context.Context, url, job string) error {
	if job == "" {
		job = DefaultJob
	}

	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}

	return nil
}
