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

package netcore

import (
	"github.com/nel-io/netcore/logging"
	"github.com/nel-io/netcore/metrics"
)

// Handler is invoked on a worker goroutine with exclusive access to h for
// the duration of the call. It must consume the bytes it expects off h;
// otherwise h will be re-armed and immediately trigger readiness again,
// producing a busy loop. It must not close h.
type Handler func(h Handle, ctx any)

// Option configures a Server.
type Option func(*Options)

// Options holds every tunable of a Server. The zero value is not valid;
// use Serve, which applies defaults before any Option runs.
type Options struct {
	// WorkerCount is the number of persistent worker goroutines draining
	// the ready-socket queue.
	WorkerCount int
	// Backlog is the listen(2) backlog, i.e. connection_queue_capacity.
	Backlog int
	// Handler is invoked for every readable client connection.
	Handler Handler
	// Context is forwarded unchanged to every Handler invocation.
	Context any
	// Logger receives structured diagnostics. Defaults to the package's
	// default zap-backed logger.
	Logger logging.Logger
	// Metrics receives lifecycle counters/gauges. Defaults to a no-op
	// registry so metrics wiring is opt-in.
	Metrics *metrics.Recorder
}

func defaultOptions() *Options {
	return &Options{
		WorkerCount: 4,
		Backlog:     1024,
		Logger:      logging.GetDefaultLogger(),
		Metrics:     metrics.NoOp(),
	}
}

func loadOptions(opts ...Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithWorkerCount sets the fixed number of worker goroutines.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithBacklog sets the listen(2) backlog.
func WithBacklog(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Backlog = n
		}
	}
}

// WithHandler sets the per-connection message handler. Required.
func WithHandler(h Handler) Option {
	return func(o *Options) {
		o.Handler = h
	}
}

// WithContext sets the value forwarded to every Handler invocation.
func WithContext(ctx any) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// WithLogger overrides the default logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics overrides the default (no-op) metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *Options) {
		if m != nil {
			o.Metrics = m
		}
	}
}
