package netcore

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialEchoRoundTrip(t *testing.T) {
	s, err := Serve(":0", WithHandler(func(h Handle, _ any) {
		var b [1]byte
		require.NoError(t, ReadBytes(h, b[:]))
		require.NoError(t, WriteBytes(h, b[:]))
	}))
	require.NoError(t, err)
	defer shutdownNow(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = Dial(ctx, "tcp", s.Addr().String(), func(h Handle) {
		defer closeSocket(h)
		require.NoError(t, WriteBytes(h, []byte{0x7a}))
		got := make([]byte, 1)
		require.NoError(t, ReadBytes(h, got))
		assert.Equal(t, byte(0x7a), got[0])
	})
	require.NoError(t, err)
}

func TestDialUnreachableReturnsError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	called := false
	err := Dial(ctx, "tcp", "127.0.0.1:1", func(Handle) {
		called = true
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestDialDefaultsNetworkToTCP(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	go func() {
		c, err := l.Accept()
		if err == nil {
			_ = c.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got := false
	err = Dial(ctx, "", l.Addr().String(), func(h Handle) {
		got = true
		_ = closeSocket(h)
	})
	require.NoError(t, err)
	assert.True(t, got)
}
