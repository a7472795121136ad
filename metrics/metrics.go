// Copyright (c) 2026 The netcore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics instruments a netcore Server with Prometheus gauges
// and counters: live connection count, ready-queue depth, and counts of
// accept/registration/re-arm failures and orderly closes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds one Server's metrics, registered against its own
// prometheus.Registry so that multiple Servers (e.g. in tests) never
// collide over global registration.
type Recorder struct {
	Registry *prometheus.Registry

	Connections    prometheus.Gauge
	QueueDepth     prometheus.Gauge
	Accepts        prometheus.Counter
	AcceptErrors   prometheus.Counter
	RegisterErrors prometheus.Counter
	RearmErrors    prometheus.Counter
	OrderlyCloses  prometheus.Counter
}

// New creates a Recorder backed by a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		Registry: reg,
		Connections: f.NewGauge(prometheus.GaugeOpts{
			Name: "netcore_connections",
			Help: "Number of currently registered client connections.",
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "netcore_ready_queue_depth",
			Help: "Number of sockets currently waiting in the ready-socket queue.",
		}),
		Accepts: f.NewCounter(prometheus.CounterOpts{
			Name: "netcore_accepts_total",
			Help: "Total number of accepted client connections.",
		}),
		AcceptErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "netcore_accept_errors_total",
			Help: "Total number of failed accept(2) calls.",
		}),
		RegisterErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "netcore_register_errors_total",
			Help: "Total number of notifier registration failures on new connections.",
		}),
		RearmErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "netcore_rearm_errors_total",
			Help: "Total number of notifier re-arm failures in workers.",
		}),
		OrderlyCloses: f.NewCounter(prometheus.CounterOpts{
			Name: "netcore_orderly_closes_total",
			Help: "Total number of connections closed via a zero-length peek.",
		}),
	}
}

// noOpRecorder is shared by every Server that doesn't opt into metrics.
var noOpRecorder = New()

// NoOp returns a Recorder whose registry is never exposed by the
// caller. Using a real (but unpublished) Recorder, rather than a nil
// check at every call site, keeps the hot paths in server.go and
// worker.go free of nil guards.
func NoOp() *Recorder {
	return noOpRecorder
}
