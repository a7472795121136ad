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
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nel-io/netcore/notifier"
)

// Server owns a listening socket, a Notifier, a connection registry and
// ready-socket queue, and a fixed pool of worker goroutines. Startup is
// entirely synchronous: Serve returns either a live *Server or a
// startup error. Shutdown flips an atomic running flag and wakes the
// notifier so the reactor's indefinitely-blocking Wait call always
// observes the flag and returns.
type Server struct {
	opts     *Options
	listener Handle
	addr     net.Addr
	notify   notifier.Notifier
	registry *registry
	queue    *readyQueue

	running uint32 // atomic; 1 while the reactor/workers should keep running
	wg      sync.WaitGroup
	once    sync.Once
	done    chan struct{}
}

// Serve opens a listening socket on addr (a "host:port", ":port", or
// bare "port" string — the host is ignored; netcore always binds the
// dual-stack wildcard address), starts the reactor and the fixed worker
// pool, and returns once the server is live. It returns a non-nil error
// on any startup failure.
func Serve(addr string, opts ...Option) (*Server, error) {
	o := loadOptions(opts...)
	if o.Handler == nil {
		return nil, ErrNoHandler
	}

	port, err := parsePort(addr)
	if err != nil {
		return nil, err
	}

	listener, netAddr, err := listenTCP(port, o.Backlog)
	if err != nil {
		o.Logger.Errorf("netcore: listen failed: %v", err)
		return nil, err
	}

	notify, err := notifier.Open()
	if err != nil {
		o.Logger.Errorf("netcore: notifier open failed: %v", err)
		_ = closeSocket(listener)
		return nil, err
	}

	// The listening socket is registered persistently, not one-shot, and
	// is handled exclusively by the reactor; it never enters the
	// registry or ready queue.
	if err := notify.Add(listener, false); err != nil {
		o.Logger.Errorf("netcore: failed to register listener: %v", err)
		_ = notify.Close()
		_ = closeSocket(listener)
		return nil, err
	}

	s := &Server{
		opts:     o,
		listener: listener,
		addr:     netAddr,
		notify:   notify,
		registry: newRegistry(),
		queue:    newReadyQueue(),
		running:  1,
		done:     make(chan struct{}),
	}

	s.wg.Add(o.WorkerCount)
	for i := 0; i < o.WorkerCount; i++ {
		go s.workerLoop()
	}

	go s.reactorLoop()

	return s, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Wait blocks until the server has fully shut down.
func (s *Server) Wait() {
	<-s.done
}

// Shutdown stops the reactor and every worker. It flips the running
// flag, wakes the notifier and the ready queue, then blocks until
// teardown completes or ctx is done. Calling Shutdown more than once
// returns ErrServerInShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	stopped := false
	s.once.Do(func() {
		atomic.StoreUint32(&s.running, 0)
		if err := s.notify.Wake(); err != nil {
			s.opts.Logger.Warnf("netcore: wake failed during shutdown: %v", err)
		}
		s.queue.wake()
		stopped = true
	})
	if !stopped {
		return ErrServerInShutdown
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) isRunning() bool {
	return atomic.LoadUint32(&s.running) == 1
}

// reactorLoop is the single reactor goroutine: it owns the listening
// socket and the notifier, and is the only goroutine that ever accepts
// a connection or touches the listener.
func (s *Server) reactorLoop() {
	for s.isRunning() {
		err := s.notify.Wait(func(h Handle) {
			if h == s.listener {
				s.handleAccept()
				return
			}
			s.queue.push(h)
			s.opts.Metrics.QueueDepth.Set(float64(s.queue.depth()))
		})
		if err != nil {
			s.opts.Logger.Errorf("netcore: notifier wait failed: %v", err)
			atomic.StoreUint32(&s.running, 0)
			break
		}
	}
	s.shutdownSequence()
}

func (s *Server) handleAccept() {
	h, err := acceptTCP(s.listener)
	if err != nil {
		s.opts.Logger.Errorf("%v", fmt.Errorf("%w: %v", ErrAcceptSocket, err))
		s.opts.Metrics.AcceptErrors.Inc()
		return
	}
	if err := s.notify.Add(h, true); err != nil {
		s.opts.Logger.Errorf("%v", fmt.Errorf("%w: connection %s: %v", ErrRegisterConn, h, err))
		s.opts.Metrics.RegisterErrors.Inc()
		_ = closeSocket(h)
		return
	}
	s.registry.add(h)
	s.opts.Metrics.Accepts.Inc()
	s.opts.Metrics.Connections.Set(float64(s.registry.size()))
}

// shutdownSequence wakes and joins every worker, closes every remaining
// registered connection, destroys the notifier and the listening
// socket, and performs platform teardown.
func (s *Server) shutdownSequence() {
	s.queue.wake()
	s.wg.Wait()

	s.registry.each(func(h Handle) {
		if err := closeSocket(h); err != nil {
			s.opts.Logger.Warnf("netcore: close on shutdown %s: %v", h, err)
		}
	})
	s.opts.Metrics.Connections.Set(0)

	if err := s.notify.Close(); err != nil {
		s.opts.Logger.Warnf("netcore: notifier close: %v", err)
	}
	if err := closeSocket(s.listener); err != nil {
		s.opts.Logger.Warnf("netcore: listener close: %v", err)
	}
	teardown()

	close(s.done)
}

func parsePort(addr string) (int, error) {
	portStr := addr
	if strings.Contains(addr, ":") {
		_, p, err := net.SplitHostPort(addr)
		if err != nil {
			return 0, fmt.Errorf("netcore: invalid address %q: %w", addr, err)
		}
		portStr = p
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("netcore: invalid port %q: %w", portStr, err)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("netcore: port %d out of range", port)
	}
	return port, nil
}
