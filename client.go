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

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Dial resolves address (a hostname or literal address) and port,
// connects to the first address that accepts, and hands the resulting
// Handle to connect. Go's own net.Resolver/net.Dialer already try every
// resolved address in order (Happy Eyeballs for dual-stack).
//
// connect owns teardown of the Handle; Dial never closes it itself.
func Dial(ctx context.Context, network, address string, connect func(h Handle)) error {
	if network == "" {
		network = "tcp"
	}
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return errors.Join(ErrDialFailed, err)
	}

	h, err := handleFromConn(conn)
	// handleFromConn duplicates the descriptor before we close the
	// net.Conn below, so the duplicate survives independently of Go's
	// runtime poller.
	_ = conn.Close()
	if err != nil {
		return err
	}

	connect(h)
	return nil
}

// handleFromConn extracts a Handle backed by a duplicated file
// descriptor from c, using syscall.RawConn.Control to hand a net.Conn's
// descriptor to code that manages it outside the Go runtime's netpoller.
func handleFromConn(c net.Conn) (Handle, error) {
	sc, ok := c.(syscall.Conn)
	if !ok {
		return Empty, errors.New("netcore: connection does not expose a raw descriptor")
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return Empty, err
	}
	var dupFD int
	var dupErr error
	ctrlErr := rc.Control(func(fd uintptr) {
		dupFD, dupErr = dupHandle(fd)
	})
	if ctrlErr != nil {
		return Empty, ctrlErr
	}
	if dupErr != nil {
		return Empty, dupErr
	}
	return NewHandle(dupFD), nil
}
