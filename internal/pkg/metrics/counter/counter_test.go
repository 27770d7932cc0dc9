package counter

import (
	"testing"
	"time"
)

func TestStartFlusherStopsOnChannelClose(t *testing.T) {
	stopCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		StartFlusher(time.Hour, stopCh)
		close(done)
	}()

	close(stopCh)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("flusher did not stop after the channel closed")
	}
}
