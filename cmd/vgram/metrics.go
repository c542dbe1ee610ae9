// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vgram-index/vgram/logging"
)

var (
	docsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vgram_documents_processed_total",
		Help: "Documents handed to a stats aggregate, by subcommand.",
	}, []string{"subcommand"})

	docsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vgram_documents_skipped_total",
		Help: "Documents skipped during a corpus walk because they could not be read, by subcommand.",
	}, []string{"subcommand"})

	gramsTouched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vgram_grams_touched_total",
		Help: "Grams in a stats aggregate's final result (frequent grams or kept MCELEM entries), by subcommand.",
	}, []string{"subcommand"})

	aggregateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "vgram_aggregate_duration_seconds",
		Help: "Wall-clock duration of a full collect-frequent/analyze aggregate run.",
	}, []string{"subcommand"})
)

// maybeServeMetrics starts a background HTTP server exposing the
// package-level counters above, if addr is non-empty. It returns
// immediately; a failure to bind is logged, not returned, since a
// metrics listener failing to start should never abort the aggregate
// run it is only observing.
func maybeServeMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Get().Sugar().Warnw("metrics listener stopped", "addr", addr, "err", err)
		}
	}()
}

// observeAggregate times fn and records it against aggregateDuration
// under subcommand.
func observeAggregate(subcommand string, fn func() error) error {
	start := timeNow()
	err := fn()
	aggregateDuration.WithLabelValues(subcommand).Observe(timeNow().Sub(start).Seconds())
	return err
}

// timeNow is a seam so the aggregate-duration histogram can be driven
// without depending on wall-clock time in tests.
var timeNow = time.Now
