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
	"io"

	"golang.org/x/sys/unix"
)

func readBytesWaitAll(h Handle, buf []byte) error {
	n, _, err := unix.Recvfrom(h.FD(), buf, unix.MSG_WAITALL)
	if err != nil {
		return fmt.Errorf("recv: %w", err)
	}
	if n == 0 {
		return io.EOF
	}
	if n < len(buf) {
		return fmt.Errorf("netcore: short read: got %d of %d bytes", n, len(buf))
	}
	return nil
}

func writeBytesAll(h Handle, buf []byte) error {
	n, err := unix.Write(h.FD(), buf)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if n < len(buf) {
		return fmt.Errorf("netcore: short write: sent %d of %d bytes", n, len(buf))
	}
	return nil
}
