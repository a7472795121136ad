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

import "fmt"

// workerLoop is one of WorkerCount persistent worker goroutines
// draining the ready-socket queue. Exactly one worker ever holds a
// given handle's current work item at a time, guaranteed by the
// notifier's one-shot rearming: the kernel will not redeliver readiness
// for h until Update re-arms it below.
func (s *Server) workerLoop() {
	defer s.wg.Done()
	for {
		h, ok := s.queue.pop(s.isRunning)
		if !ok {
			return
		}
		s.opts.Metrics.QueueDepth.Set(float64(s.queue.depth()))
		s.handleReady(h)
	}
}

// handleReady peeks one byte to distinguish an orderly close from data
// availability, then either tears the connection down or invokes the
// handler and re-arms.
func (s *Server) handleReady(h Handle) {
	n, err := peekOne(h)
	switch {
	case err != nil:
		// Any peek error (e.g. ECONNRESET) is treated identically to an
		// orderly close, except that it is not counted in OrderlyCloses.
		s.closeConn(h)
	case n == 0:
		s.closeConn(h)
		s.opts.Metrics.OrderlyCloses.Inc()
	default:
		s.opts.Handler(h, s.opts.Context)
		if err := s.notify.Update(h, true); err != nil {
			s.opts.Logger.Errorf("%v", fmt.Errorf("%w: %s: %v", ErrRearmConn, h, err))
			s.opts.Metrics.RearmErrors.Inc()
			// The registry is deliberately not pruned here; shutdown's
			// registry-close loop tolerates the resulting double-close.
			_ = closeSocket(h)
		}
	}
}

// closeConn removes h from the notifier and the registry and shuts it
// down. Used both for orderly peer closes and peek errors.
func (s *Server) closeConn(h Handle) {
	if err := s.notify.Remove(h); err != nil {
		s.opts.Logger.Warnf("netcore: notifier remove %s: %v", h, err)
	}
	s.registry.remove(h)
	s.opts.Metrics.Connections.Set(float64(s.registry.size()))
	if err := closeSocket(h); err != nil {
		s.opts.Logger.Warnf("netcore: close %s: %v", h, err)
	}
}
