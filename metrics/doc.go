// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters, gauges and histograms for
// form sessions, vote submissions and results refreshes. The router serves
// them at GET /metrics.
package metrics
