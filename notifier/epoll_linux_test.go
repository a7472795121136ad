//go:build linux

package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/nel-io/netcore/handle"
)

func TestEpollAddDeliversReadiness(t *testing.T) {
	n, err := Open()
	require.NoError(t, err)
	defer n.Close()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	h := handle.New(fds[1])
	require.NoError(t, n.Add(h, true))

	_, err = unix.Write(fds[0], []byte("x"))
	require.NoError(t, err)

	var got handle.Handle
	require.NoError(t, n.Wait(func(ready handle.Handle) {
		got = ready
	}))
	assert.Equal(t, h, got)
}

func TestEpollWakeInterruptsWait(t *testing.T) {
	n, err := Open()
	require.NoError(t, err)
	defer n.Close()

	done := make(chan error, 1)
	go func() {
		done <- n.Wait(func(handle.Handle) {
			t.Error("wake must not invoke the callback")
		})
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, n.Wake())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Wake")
	}
}

func TestEpollOneshotRequiresRearm(t *testing.T) {
	n, err := Open()
	require.NoError(t, err)
	defer n.Close()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	h := handle.New(fds[1])
	require.NoError(t, n.Add(h, true))
	_, err = unix.Write(fds[0], []byte("x"))
	require.NoError(t, err)

	fired := 0
	require.NoError(t, n.Wait(func(handle.Handle) { fired++ }))
	assert.Equal(t, 1, fired)

	require.NoError(t, n.Update(h, true))
	fired = 0
	require.NoError(t, n.Wait(func(handle.Handle) { fired++ }))
	assert.Equal(t, 1, fired)
}
