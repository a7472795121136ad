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

import "errors"

var (
	// ErrServerInShutdown occurs when Shutdown is called more than once.
	ErrServerInShutdown = errors.New("netcore: server is already in shutdown")
	// ErrAcceptSocket occurs when the acceptor fails to accept a new connection.
	ErrAcceptSocket = errors.New("netcore: failed to accept connection")
	// ErrRegisterConn occurs when a freshly accepted connection cannot be
	// registered with the notifier.
	ErrRegisterConn = errors.New("netcore: failed to register connection with notifier")
	// ErrRearmConn occurs when re-arming a connection for another one-shot
	// notification fails.
	ErrRearmConn = errors.New("netcore: failed to re-arm connection")
	// ErrNoHandler occurs when Serve is called without a message handler.
	ErrNoHandler = errors.New("netcore: no message handler configured")
	// ErrInvalidHandle occurs when an operation is attempted on an empty Handle.
	ErrInvalidHandle = errors.New("netcore: invalid handle")
	// ErrDialFailed occurs when Dial exhausts every resolved address without
	// establishing a connection.
	ErrDialFailed = errors.New("netcore: unable to connect to any resolved address")
)
