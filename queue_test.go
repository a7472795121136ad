package netcore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadyQueuePushPop(t *testing.T) {
	rq := newReadyQueue()
	rq.push(NewHandle(1))
	rq.push(NewHandle(2))
	assert.Equal(t, 2, rq.depth())

	running := func() bool { return true }
	h, ok := rq.pop(running)
	assert.True(t, ok)
	assert.Equal(t, NewHandle(1), h)

	h, ok = rq.pop(running)
	assert.True(t, ok)
	assert.Equal(t, NewHandle(2), h)
}

func TestReadyQueuePopBlocksUntilPush(t *testing.T) {
	rq := newReadyQueue()
	running := func() bool { return true }

	var wg sync.WaitGroup
	wg.Add(1)
	var got Handle
	var ok bool
	go func() {
		defer wg.Done()
		got, ok = rq.pop(running)
	}()

	time.Sleep(20 * time.Millisecond)
	rq.push(NewHandle(9))
	wg.Wait()

	assert.True(t, ok)
	assert.Equal(t, NewHandle(9), got)
}

func TestReadyQueueWakeUnblocksOnShutdown(t *testing.T) {
	rq := newReadyQueue()
	var running uint32 = 1
	runningFn := func() bool { return running == 1 }

	done := make(chan struct{})
	go func() {
		_, ok := rq.pop(runningFn)
		assert.False(t, ok)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	running = 0
	rq.wake()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pop did not unblock after wake")
	}
}
