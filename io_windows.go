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
	"io"

	"golang.org/x/sys/windows"
)

// readBytesWaitAll loops calling WSARecv until buf is full, since
// Winsock's MSG_WAITALL flag is unreliable on non-blocking/overlapped
// sockets; netcore's sockets are blocking, but the loop is kept so this
// helper behaves identically regardless of socket mode.
func readBytesWaitAll(h Handle, buf []byte) error {
	total := 0
	for total < len(buf) {
		var recvd uint32
		var flags uint32
		iov := windows.WSABuf{Len: uint32(len(buf) - total), Buf: &buf[total]}
		if err := windows.WSARecv(windows.Handle(h.FD()), &iov, 1, &recvd, &flags, nil, nil); err != nil {
			return fmt.Errorf("recv: %w", err)
		}
		if recvd == 0 {
			return io.EOF
		}
		total += int(recvd)
	}
	return nil
}

func writeBytesAll(h Handle, buf []byte) error {
	total := 0
	for total < len(buf) {
		var sent uint32
		iov := windows.WSABuf{Len: uint32(len(buf) - total), Buf: &buf[total]}
		if err := windows.WSASend(windows.Handle(h.FD()), &iov, 1, &sent, 0, nil, nil); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		total += int(sent)
	}
	return nil
}
