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

// Package notifier is a thin, uniform wrapper over the host OS's
// readiness-notification facility: epoll on Linux, kqueue on the BSDs
// and Darwin, I/O completion ports on Windows. Callers register sockets
// one-shot and re-arm them after each delivery; the listening socket is
// the one exception, registered persistently (non-one-shot) and handled
// exclusively by the reactor.
package notifier

import "github.com/nel-io/netcore/handle"

// EventQueueCapacity bounds how many ready events a single Wait call
// may report; the scratch array backing a Poller is sized to this.
const EventQueueCapacity = 1024

// Notifier is implemented once per OS family. Every failure path logs
// nothing itself — it is the caller's job to log, per netcore's error
// handling design — and returns a plain error; a Notifier never retries
// on the caller's behalf.
type Notifier interface {
	// Add begins delivering readiness for h. If oneshot, exactly one
	// notification is delivered and h must be re-armed via Update before
	// it will fire again.
	Add(h handle.Handle, oneshot bool) error
	// Update re-arms an already-registered handle.
	Update(h handle.Handle, oneshot bool) error
	// Remove stops delivering notifications for h. On backends where
	// closing the socket implicitly removes the registration, this may
	// be a no-op.
	Remove(h handle.Handle) error
	// Wait blocks until at least one handle is ready (or Wake is
	// called), then invokes cb once per ready handle, up to
	// EventQueueCapacity per call. Wait blocks indefinitely otherwise;
	// there is no timeout.
	Wait(cb func(h handle.Handle)) error
	// Wake interrupts a blocked Wait call exactly once, without
	// delivering any handle to cb. It is the self-pipe/self-event this
	// package uses to make shutdown observable despite Wait's infinite
	// timeout.
	Wake() error
	// Close releases the OS notification object.
	Close() error
}
