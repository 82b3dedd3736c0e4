// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	compares  *prometheus.CounterVec
	resamples prometheus.Counter
	warnings  prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) *metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bootstat_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bootstat_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~33s
		}, []string{"route"}),
		compares: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bootstat_comparisons_total",
			Help: "Comparisons run, by pairing and result.",
		}, []string{"paired", "result"}),
		resamples: f.NewCounter(prometheus.CounterOpts{
			Name: "bootstat_resamples_total",
			Help: "Bootstrap resamples drawn.",
		}),
		warnings: f.NewCounter(prometheus.CounterOpts{
			Name: "bootstat_report_warnings_total",
			Help: "Degenerate-condition warnings attached to reports.",
		}),
	}
}
