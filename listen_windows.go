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

package netcore

import (
	"fmt"
	"net"

	"golang.org/x/sys/windows"
)

// listenTCP opens a dual-stack (AF_INET6, v4-mapped) TCP listening
// socket on port, applies SO_REUSEADDR, binds to [::]:port, and starts
// listening with the given backlog.
func listenTCP(port int, backlog int) (Handle, net.Addr, error) {
	if err := windows.WSAStartup(uint32(0x0202), &windows.WSAData{}); err != nil {
		return Empty, nil, fmt.Errorf("WSAStartup: %w", err)
	}
	fd, err := windows.Socket(windows.AF_INET6, windows.SOCK_STREAM, windows.IPPROTO_TCP)
	if err != nil {
		return Empty, nil, fmt.Errorf("socket: %w", err)
	}
	if err := windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_REUSEADDR, 1); err != nil {
		_ = windows.Closesocket(fd)
		return Empty, nil, fmt.Errorf("setsockopt(SO_REUSEADDR): %w", err)
	}
	sa := &windows.SockaddrInet6{Port: port}
	if err := windows.Bind(fd, sa); err != nil {
		_ = windows.Closesocket(fd)
		return Empty, nil, fmt.Errorf("bind: %w", err)
	}
	if err := windows.Listen(fd, backlog); err != nil {
		_ = windows.Closesocket(fd)
		return Empty, nil, fmt.Errorf("listen: %w", err)
	}
	local, err := windows.Getsockname(fd)
	if err != nil {
		_ = windows.Closesocket(fd)
		return Empty, nil, fmt.Errorf("getsockname: %w", err)
	}
	addr := sockaddrToTCPAddr(local)
	return NewHandle(int(fd)), addr, nil
}

func sockaddrToTCPAddr(sa windows.Sockaddr) net.Addr {
	switch s := sa.(type) {
	case *windows.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, s.Addr[:])
		return &net.TCPAddr{IP: ip, Port: s.Port}
	case *windows.SockaddrInet4:
		ip := make(net.IP, net.IPv4len)
		copy(ip, s.Addr[:])
		return &net.TCPAddr{IP: ip, Port: s.Port}
	default:
		return nil
	}
}

// acceptTCP accepts one pending connection on the listening handle.
func acceptTCP(l Handle) (Handle, error) {
	fd, _, err := windows.Accept(windows.Handle(l.FD()))
	if err != nil {
		return Empty, err
	}
	_ = windows.SetsockoptInt(fd, windows.IPPROTO_TCP, windows.TCP_NODELAY, 1)
	return NewHandle(int(fd)), nil
}

// closeSocket shuts down both directions of h and releases its socket.
func closeSocket(h Handle) error {
	_ = windows.Shutdown(windows.Handle(h.FD()), windows.SHUT_RDWR)
	return windows.Closesocket(windows.Handle(h.FD()))
}

// peekOne performs a one-byte, non-consuming read to distinguish an
// orderly peer close (n == 0) from data availability (n > 0) or a
// genuine error (err != nil, with n == 0).
func peekOne(h Handle) (n int, err error) {
	var buf [1]byte
	var recvd uint32
	var flags uint32 = windows.MSG_PEEK
	iov := windows.WSABuf{Len: 1, Buf: &buf[0]}
	err = windows.WSARecv(windows.Handle(h.FD()), &iov, uint32(1), &recvd, &flags, nil, nil)
	return int(recvd), err
}

// teardown performs Winsock cleanup at server shutdown.
func teardown() {
	_ = windows.WSACleanup()
}

// dupHandle duplicates fd so the resulting socket outlives the net.Conn
// it came from, the Windows counterpart of listen_unix.go's unix.Dup.
func dupHandle(fd uintptr) (int, error) {
	proc := windows.CurrentProcess()
	var dup windows.Handle
	err := windows.DuplicateHandle(proc, windows.Handle(fd), proc, &dup, 0, false, windows.DUPLICATE_SAME_ACCESS)
	if err != nil {
		return 0, err
	}
	return int(dup), nil
}
