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

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package notifier

import (
	"fmt"

	"github.com/nel-io/netcore/handle"
	"golang.org/x/sys/unix"
)

// wakeIdent is the arbitrary EVFILT_USER identifier used to self-wake a
// blocked kevent call; it never collides with a real file descriptor
// because kqueue keys EVFILT_USER events by an opaque ident namespace
// distinct from EVFILT_READ's fd-keyed namespace.
const wakeIdent = 0

// kqueuePoller implements Notifier over kqueue(2), with EV_ONESHOT used
// for every connection Add/Update except the listening socket's
// persistent registration.
type kqueuePoller struct {
	fd     int
	events []unix.Kevent_t
}

// Open creates a new kqueue-backed Notifier.
func Open() (Notifier, error) {
	kfd, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("kqueue: %w", err)
	}
	p := &kqueuePoller{fd: kfd, events: make([]unix.Kevent_t, EventQueueCapacity)}
	_, err = unix.Kevent(p.fd, []unix.Kevent_t{{
		Ident:  wakeIdent,
		Filter: unix.EVFILT_USER,
		Flags:  unix.EV_ADD | unix.EV_CLEAR,
	}}, nil, nil)
	if err != nil {
		_ = unix.Close(kfd)
		return nil, fmt.Errorf("kevent(add wake): %w", err)
	}
	return p, nil
}

func (p *kqueuePoller) Add(h handle.Handle, oneshot bool) error {
	flags := uint16(unix.EV_ADD)
	if oneshot {
		flags |= unix.EV_ONESHOT
	}
	_, err := unix.Kevent(p.fd, []unix.Kevent_t{{
		Ident:  uint64(h.FD()),
		Filter: unix.EVFILT_READ,
		Flags:  flags,
	}}, nil, nil)
	if err != nil {
		return fmt.Errorf("kevent(add, %s): %w", h, err)
	}
	return nil
}

func (p *kqueuePoller) Update(h handle.Handle, oneshot bool) error {
	// kqueue re-arms a EV_ONESHOT filter by re-issuing EV_ADD.
	return p.Add(h, oneshot)
}

func (p *kqueuePoller) Remove(h handle.Handle) error {
	// The kernel automatically drops kqueue registrations when the
	// underlying fd is closed, so an explicit EV_DELETE is best-effort.
	_, err := unix.Kevent(p.fd, []unix.Kevent_t{{
		Ident:  uint64(h.FD()),
		Filter: unix.EVFILT_READ,
		Flags:  unix.EV_DELETE,
	}}, nil, nil)
	if err != nil && err != unix.ENOENT {
		return fmt.Errorf("kevent(delete, %s): %w", h, err)
	}
	return nil
}

func (p *kqueuePoller) Wait(cb func(h handle.Handle)) error {
	for {
		n, err := unix.Kevent(p.fd, nil, p.events, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("kevent(wait): %w", err)
		}
		for i := 0; i < n; i++ {
			ev := p.events[i]
			if ev.Filter == unix.EVFILT_USER && ev.Ident == wakeIdent {
				continue
			}
			cb(handle.New(int(ev.Ident)))
		}
		return nil
	}
}

func (p *kqueuePoller) Wake() error {
	_, err := unix.Kevent(p.fd, []unix.Kevent_t{{
		Ident:  wakeIdent,
		Filter: unix.EVFILT_USER,
		Fflags: unix.NOTE_TRIGGER,
	}}, nil, nil)
	if err != nil {
		return fmt.Errorf("kevent(trigger wake): %w", err)
	}
	return nil
}

func (p *kqueuePoller) Close() error {
	return unix.Close(p.fd)
}
