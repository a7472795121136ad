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

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package netcore

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// listenTCP opens a dual-stack (AF_INET6, v4-mapped) TCP listening
// socket on port, applies SO_REUSEADDR, binds to [::]:port, and starts
// listening with the given backlog.
func listenTCP(port int, backlog int) (Handle, net.Addr, error) {
	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return Empty, nil, fmt.Errorf("socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return Empty, nil, fmt.Errorf("setsockopt(SO_REUSEADDR): %w", err)
	}
	sa := &unix.SockaddrInet6{Port: port}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return Empty, nil, fmt.Errorf("bind: %w", err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return Empty, nil, fmt.Errorf("listen: %w", err)
	}
	local, err := unix.Getsockname(fd)
	if err != nil {
		_ = unix.Close(fd)
		return Empty, nil, fmt.Errorf("getsockname: %w", err)
	}
	addr := sockaddrToTCPAddr(local)
	return NewHandle(fd), addr, nil
}

func sockaddrToTCPAddr(sa unix.Sockaddr) net.Addr {
	switch s := sa.(type) {
	case *unix.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, s.Addr[:])
		return &net.TCPAddr{IP: ip, Port: s.Port}
	case *unix.SockaddrInet4:
		ip := make(net.IP, net.IPv4len)
		copy(ip, s.Addr[:])
		return &net.TCPAddr{IP: ip, Port: s.Port}
	default:
		return nil
	}
}

// acceptTCP accepts one pending connection on the listening handle and
// disables Nagle's algorithm on it.
func acceptTCP(l Handle) (Handle, error) {
	fd, _, err := unix.Accept(l.FD())
	if err != nil {
		return Empty, err
	}
	_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	return NewHandle(fd), nil
}

// closeSocket shuts down both directions of h and releases its fd.
func closeSocket(h Handle) error {
	_ = unix.Shutdown(h.FD(), unix.SHUT_RDWR)
	return unix.Close(h.FD())
}

// peekOne performs a one-byte, non-consuming read to distinguish an
// orderly peer close (n == 0) from data availability (n > 0) or a
// genuine error (n < 0).
func peekOne(h Handle) (n int, err error) {
	var buf [1]byte
	n, _, err = unix.Recvfrom(h.FD(), buf[:], unix.MSG_PEEK)
	return
}

// teardown performs platform teardown at server shutdown. POSIX has
// nothing equivalent to Winsock's WSACleanup.
func teardown() {}

// dupHandle duplicates fd so the resulting descriptor outlives the
// net.Conn it came from, and puts it in blocking mode so the
// MSG_WAITALL reads in io_unix.go block instead of failing with EAGAIN.
func dupHandle(fd uintptr) (int, error) {
	nfd, err := unix.Dup(int(fd))
	if err != nil {
		return -1, err
	}
	if err := unix.SetNonblock(nfd, false); err != nil {
		_ = unix.Close(nfd)
		return -1, err
	}
	return nfd, nil
}
