//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package netcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func socketPair(t *testing.T) (Handle, Handle) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = unix.Close(fds[0])
		_ = unix.Close(fds[1])
	})
	return NewHandle(fds[0]), NewHandle(fds[1])
}

func TestReadWriteBytesRoundTrip(t *testing.T) {
	a, b := socketPair(t)

	payload := []byte("hello netcore")
	done := make(chan error, 1)
	go func() {
		done <- WriteBytes(a, payload)
	}()

	got := make([]byte, len(payload))
	require.NoError(t, ReadBytes(b, got))
	require.NoError(t, <-done)
	assert.Equal(t, payload, got)
}

type fixedHeader struct {
	Kind   uint32
	Length uint32
}

func TestReadWriteFullRoundTrip(t *testing.T) {
	a, b := socketPair(t)

	want := fixedHeader{Kind: 7, Length: 128}
	done := make(chan error, 1)
	go func() {
		done <- WriteFull(a, &want)
	}()

	var got fixedHeader
	require.NoError(t, ReadFull(b, &got))
	require.NoError(t, <-done)
	assert.Equal(t, want, got)
}

func TestReadBytesInvalidHandle(t *testing.T) {
	buf := make([]byte, 1)
	assert.ErrorIs(t, ReadBytes(Empty, buf), ErrInvalidHandle)
}

func TestWriteBytesInvalidHandle(t *testing.T) {
	assert.ErrorIs(t, WriteBytes(Empty, []byte("x")), ErrInvalidHandle)
}
