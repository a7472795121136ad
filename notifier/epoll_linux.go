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

//go:build linux

package notifier

import (
	"fmt"

	"github.com/nel-io/netcore/handle"
	"golang.org/x/sys/unix"
)

// epollPoller implements Notifier over epoll(7), with EPOLLONESHOT used
// for every connection Add/Update except the listening socket's
// persistent, level-triggered registration.
type epollPoller struct {
	fd     int // epoll instance
	wakeFD int // eventfd used to interrupt Wait
	events []unix.EpollEvent
}

// Open creates a new epoll-backed Notifier.
func Open() (Notifier, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}
	wfd, _, errno := unix.Syscall(unix.SYS_EVENTFD2, 0, 0, 0)
	if errno != 0 {
		_ = unix.Close(epfd)
		return nil, fmt.Errorf("eventfd2: %w", errno)
	}
	p := &epollPoller{
		fd:     epfd,
		wakeFD: int(wfd),
		events: make([]unix.EpollEvent, EventQueueCapacity),
	}
	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, p.wakeFD, &unix.EpollEvent{
		Fd:     int32(p.wakeFD),
		Events: unix.EPOLLIN,
	}); err != nil {
		_ = unix.Close(p.wakeFD)
		_ = unix.Close(p.fd)
		return nil, fmt.Errorf("epoll_ctl(wake): %w", err)
	}
	return p, nil
}

func (p *epollPoller) Add(h handle.Handle, oneshot bool) error {
	ev := unix.EPOLLIN | unix.EPOLLERR
	if oneshot {
		ev |= unix.EPOLLONESHOT
	}
	err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, h.FD(), &unix.EpollEvent{
		Fd:     int32(h.FD()),
		Events: uint32(ev),
	})
	if err != nil {
		return fmt.Errorf("epoll_ctl(add, %s): %w", h, err)
	}
	return nil
}

func (p *epollPoller) Update(h handle.Handle, oneshot bool) error {
	ev := unix.EPOLLIN | unix.EPOLLERR
	if oneshot {
		ev |= unix.EPOLLONESHOT
	}
	err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_MOD, h.FD(), &unix.EpollEvent{
		Fd:     int32(h.FD()),
		Events: uint32(ev),
	})
	if err != nil {
		return fmt.Errorf("epoll_ctl(mod, %s): %w", h, err)
	}
	return nil
}

func (p *epollPoller) Remove(h handle.Handle) error {
	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_DEL, h.FD(), nil); err != nil {
		return fmt.Errorf("epoll_ctl(del, %s): %w", h, err)
	}
	return nil
}

func (p *epollPoller) Wait(cb func(h handle.Handle)) error {
	for {
		n, err := unix.EpollWait(p.fd, p.events, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("epoll_wait: %w", err)
		}
		for i := 0; i < n; i++ {
			fd := int(p.events[i].Fd)
			if fd == p.wakeFD {
				var buf [8]byte
				_, _ = unix.Read(p.wakeFD, buf[:])
				continue
			}
			cb(handle.New(fd))
		}
		return nil
	}
}

func (p *epollPoller) Wake() error {
	var one [8]byte
	one[0] = 1
	_, err := unix.Write(p.wakeFD, one[:])
	if err != nil {
		return fmt.Errorf("eventfd write: %w", err)
	}
	return nil
}

func (p *epollPoller) Close() error {
	_ = unix.Close(p.wakeFD)
	return unix.Close(p.fd)
}
