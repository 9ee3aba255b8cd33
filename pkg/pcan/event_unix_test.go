//go:build linux || darwin

package pcan

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// pipeEvent returns an rxEvent on the read end of a pipe and the write end.
func pipeEvent(t *testing.T) (*rxEvent, int) {
	t.Helper()
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(p[0])
		unix.Close(p[1])
	})
	return &rxEvent{fd: int32(p[0])}, p[1]
}

func TestReceiveEventWait(t *testing.T) {
	t.Run("readable", func(t *testing.T) {
		ev, w := pipeEvent(t)
		if _, err := unix.Write(w, []byte{1}); err != nil {
			t.Fatal(err)
		}
		if err := ev.Wait(context.Background()); err != nil {
			t.Errorf("Wait() error = %v, want nil", err)
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		ev, _ := pipeEvent(t)
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)
		start := time.Now()
		err := ev.Wait(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() error = %v, want context.Canceled", err)
		}
		if elapsed := time.Since(start); elapsed > 20*time.Millisecond+10*pollSlice*time.Millisecond {
			t.Errorf("Wait() returned after %v", elapsed)
		}
	})

	t.Run("write end closed", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("pipe hangup reporting differs on " + runtime.GOOS)
		}
		ev, w := pipeEvent(t)
		if _, err := unix.Write(w, []byte{1}); err != nil {
			t.Fatal(err)
		}
		unix.Close(w)
		done := make(chan error, 1)
		go func() { done <- ev.Wait(context.Background()) }()
		select {
		case err := <-done:
			if err == nil {
				t.Error("Wait() on a hung up descriptor returned nil")
			}
		case <-time.After(time.Second):
			t.Fatal("Wait() did not return")
		}
	})

	t.Run("not registered", func(t *testing.T) {
		ev := &rxEvent{fd: -1}
		if err := ev.Wait(context.Background()); err == nil {
			t.Error("Wait() without descriptor returned nil")
		}
	})

	t.Run("closed event", func(t *testing.T) {
		ev, _ := pipeEvent(t)
		if err := ev.Close(); err != nil {
			t.Fatal(err)
		}
		if err := ev.Wait(context.Background()); err == nil {
			t.Error("Wait() after Close returned nil")
		}
	})
}
