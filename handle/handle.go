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

// Package handle defines the Handle value type shared by netcore's
// root package and its notifier backends. It lives in its own package
// so that notifier (which the root package imports) never has to
// import the root package back.
package handle

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Handle is an opaque wrapper around an OS-native socket descriptor.
// Identity is by value: two Handles are equal iff they refer to the
// same kernel object at this moment. A Handle does not track ownership
// of the underlying descriptor; the Server owns every live Handle it
// hands to a caller.
type Handle struct {
	fd int
}

// Empty is the sentinel invalid Handle; Valid reports false for it.
var Empty = Handle{fd: -1}

// New wraps a raw OS file descriptor.
func New(fd int) Handle {
	return Handle{fd: fd}
}

// FD returns the raw OS file descriptor.
func (h Handle) FD() int {
	return h.fd
}

// Valid reports whether h refers to a real descriptor.
func (h Handle) Valid() bool {
	return h.fd >= 0
}

// Hash returns a stable hash of h, suitable for use as a map key or in
// an open-addressed set.
func (h Handle) Hash() uint64 {
	var buf [8]byte
	v := uint64(h.fd)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	return xxhash.Sum64(buf[:])
}

// String implements fmt.Stringer for diagnostics.
func (h Handle) String() string {
	return "fd(" + strconv.Itoa(h.fd) + ")"
}
