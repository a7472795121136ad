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

//go:build windows

package notifier

import (
	"fmt"

	"github.com/nel-io/netcore/handle"
	"golang.org/x/sys/windows"
)

// wakeKey is the completion key used for self-wake packets posted by
// Wake; it never collides with a real socket handle's key because
// socket handles are associated using their own value as the key and
// zero is not a valid Windows HANDLE.
const wakeKey = 0

// iocpPoller implements Notifier over an I/O completion port.
// Completion-based readiness has no one-shot/level-triggered
// distinction at the OS level — a socket is associated with the port
// once and every subsequent read completion posts a new packet — so Add
// associates the socket with the port, Update does nothing, and oneshot
// is accepted only to satisfy the common Notifier interface.
type iocpPoller struct {
	port windows.Handle
}

// Open creates a new IOCP-backed Notifier.
func Open() (Notifier, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateIoCompletionPort: %w", err)
	}
	return &iocpPoller{port: port}, nil
}

func (p *iocpPoller) Add(h handle.Handle, _ bool) error {
	key := uintptr(h.FD())
	_, err := windows.CreateIoCompletionPort(windows.Handle(h.FD()), p.port, key, 0)
	if err != nil {
		return fmt.Errorf("CreateIoCompletionPort(associate, %s): %w", h, err)
	}
	return nil
}

func (p *iocpPoller) Update(_ handle.Handle, _ bool) error {
	// A socket stays associated with the port for its lifetime; there is
	// nothing to re-arm.
	return nil
}

func (p *iocpPoller) Remove(_ handle.Handle) error {
	// Disassociation happens implicitly when the socket is closed.
	return nil
}

func (p *iocpPoller) Wait(cb func(h handle.Handle)) error {
	var bytes uint32
	var key uintptr
	var overlapped *windows.Overlapped
	err := windows.GetQueuedCompletionStatus(p.port, &bytes, &key, &overlapped, windows.INFINITE)
	if err != nil {
		return fmt.Errorf("GetQueuedCompletionStatus: %w", err)
	}
	if key == wakeKey {
		return nil
	}
	cb(handle.New(int(key)))

	// Drain any further already-completed packets without blocking, up
	// to EventQueueCapacity, mirroring epoll/kqueue's batched delivery.
	for i := 1; i < EventQueueCapacity; i++ {
		err := windows.GetQueuedCompletionStatus(p.port, &bytes, &key, &overlapped, 0)
		if err != nil {
			return nil
		}
		if key == wakeKey {
			continue
		}
		cb(handle.New(int(key)))
	}
	return nil
}

func (p *iocpPoller) Wake() error {
	err := windows.PostQueuedCompletionStatus(p.port, 0, wakeKey, nil)
	if err != nil {
		return fmt.Errorf("PostQueuedCompletionStatus(wake): %w", err)
	}
	return nil
}

func (p *iocpPoller) Close() error {
	return windows.CloseHandle(p.port)
}
