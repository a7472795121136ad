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
	"sync"

	"github.com/eapache/queue"
)

// readyQueue hands readable sockets from the reactor to the worker pool
// without ever blocking the reactor: push always succeeds immediately,
// and pop blocks on cond until either an item is available or the
// server is shutting down.
type readyQueue struct {
	mu   sync.Mutex
	cond *sync.Cond
	q    *queue.Queue
}

func newReadyQueue() *readyQueue {
	rq := &readyQueue{q: queue.New()}
	rq.cond = sync.NewCond(&rq.mu)
	return rq
}

// push enqueues h and wakes exactly one waiting worker.
func (rq *readyQueue) push(h Handle) {
	rq.mu.Lock()
	rq.q.Add(h)
	rq.mu.Unlock()
	rq.cond.Signal()
}

// pop blocks until the queue is non-empty or running reports false, in
// which case it returns (Handle{}, false) and the caller should exit.
func (rq *readyQueue) pop(running func() bool) (Handle, bool) {
	rq.mu.Lock()
	defer rq.mu.Unlock()
	for rq.q.Length() == 0 {
		if !running() {
			return Handle{}, false
		}
		rq.cond.Wait()
	}
	if !running() {
		return Handle{}, false
	}
	h := rq.q.Remove().(Handle)
	return h, true
}

// wake broadcasts the condition variable so every blocked pop call
// re-checks running and exits; used by Shutdown.
func (rq *readyQueue) wake() {
	rq.mu.Lock()
	rq.cond.Broadcast()
	rq.mu.Unlock()
}

func (rq *readyQueue) depth() int {
	rq.mu.Lock()
	defer rq.mu.Unlock()
	return rq.q.Length()
}
