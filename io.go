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
	"bytes"
	"encoding/binary"
	"fmt"
)

// ReadFull reads exactly binary.Size(*v) bytes from h into v. It
// performs no endianness conversion of its own; byte order on the wire
// is whatever T's field layout implies, and is the caller's concern.
func ReadFull[T any](h Handle, v *T) error {
	size := binary.Size(*v)
	if size < 0 {
		return fmt.Errorf("netcore: type is not fixed-size, use ReadBytes")
	}
	buf := make([]byte, size)
	if err := ReadBytes(h, buf); err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(buf), binary.NativeEndian, v)
}

// WriteFull writes binary.Size(*v) bytes of v to h.
func WriteFull[T any](h Handle, v *T) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, *v); err != nil {
		return fmt.Errorf("netcore: encode: %w", err)
	}
	return WriteBytes(h, buf.Bytes())
}

// ReadBytes reads exactly len(buf) bytes from h, blocking until the
// full buffer is filled, the peer closes, or an error occurs. It wraps
// MSG_WAITALL on POSIX and a read-until-full loop on Windows (Winsock's
// MSG_WAITALL is documented as unreliable with overlapped sockets).
func ReadBytes(h Handle, buf []byte) error {
	if !h.Valid() {
		return ErrInvalidHandle
	}
	return readBytesWaitAll(h, buf)
}

// WriteBytes writes exactly len(buf) bytes to h.
func WriteBytes(h Handle, buf []byte) error {
	if !h.Valid() {
		return ErrInvalidHandle
	}
	return writeBytesAll(h, buf)
}
