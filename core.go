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

// Package netcore implements a reusable, cross-platform TCP server
// core: a readiness-notifier-driven reactor that accepts many concurrent
// client connections, dispatches per-connection readiness events to a
// fixed pool of worker goroutines, and invokes a caller-supplied message
// handler for each readable event. A companion Dial helper resolves a
// hostname/port, establishes a single outbound TCP connection, and hands
// the resulting Handle to a caller callback.
//
// Message framing, serialization, TLS, and application-level protocol
// are all left to the caller's Handler; netcore's job ends at "this
// socket has bytes for you".
package netcore

import "github.com/nel-io/netcore/handle"

// Handle is the opaque socket-handle type exchanged between netcore and
// a caller's Handler. See the handle package for its full contract.
type Handle = handle.Handle

// Empty is the sentinel invalid Handle (descriptor -1) returned
// alongside an error; callers never see it in a Handler invocation.
var Empty = handle.Empty

// NewHandle wraps a raw OS file descriptor as a Handle. Exposed for
// callers that need to round-trip a Handle through their own storage.
func NewHandle(fd int) Handle {
	return handle.New(fd)
}
