package pcanbus

import (
	"testing"
)

func TestDeviceQueues(t *testing.T) {
	d := NewDevice()
	if d.HasOutgoingFrames() {
		t.Fatal("new device has outgoing frames")
	}
	if _, ok := d.DequeueOutgoingFrame(); ok {
		t.Fatal("dequeue from an empty queue succeeded")
	}
	d.EnqueueOutgoingFrame(NewFrame(0x1, nil))
	d.EnqueueOutgoingFrame(NewFrame(0x2, nil))
	if d.FramesToWrite() != 2 {
		t.Fatalf("FramesToWrite() = %d, want 2", d.FramesToWrite())
	}
	if f, _ := d.DequeueOutgoingFrame(); f.ID != 0x1 {
		t.Errorf("dequeued 0x%X first, want 0x1", f.ID)
	}

	d.EnqueueReceivedFrames(nil)
	select {
	case evt := <-d.Events():
		t.Fatalf("empty batch produced event %s", evt)
	default:
	}

	d.EnqueueReceivedFrames([]Frame{NewFrame(0x10, nil), NewFrame(0x11, nil)})
	evt := <-d.Events()
	if evt.Type != EventTypeFramesReceived || evt.Count != 2 {
		t.Errorf("event = %+v, want FramesReceived 2", evt)
	}
	if f, ok := d.ReadFrame(); !ok || f.ID != 0x10 {
		t.Errorf("ReadFrame() = %v, %v", f, ok)
	}
	if rest := d.ReadAllFrames(); len(rest) != 1 || rest[0].ID != 0x11 {
		t.Errorf("ReadAllFrames() = %v", rest)
	}
	if d.Stats().FramesReceived != 2 {
		t.Errorf("FramesReceived = %d, want 2", d.Stats().FramesReceived)
	}
}

func TestDeviceConfiguration(t *testing.T) {
	d := NewDevice()
	d.SetConfigurationParameter(BitRateKey, 500000)
	d.SetConfigurationParameter(LoopbackKey, true)
	d.SetConfigurationParameter(BitRateKey, 250000)

	keys := d.ConfigurationKeys()
	if len(keys) != 2 || keys[0] != BitRateKey || keys[1] != LoopbackKey {
		t.Errorf("keys = %v, want [BitRateKey LoopbackKey]", keys)
	}
	if v, _ := d.ConfigurationParameter(BitRateKey); v != 250000 {
		t.Errorf("bitrate = %v, want 250000", v)
	}

	d.SetConfigurationParameter(BitRateKey, nil)
	if _, ok := d.ConfigurationParameter(BitRateKey); ok {
		t.Error("nil value did not remove the key")
	}
	if keys := d.ConfigurationKeys(); len(keys) != 1 || keys[0] != LoopbackKey {
		t.Errorf("keys = %v, want [LoopbackKey]", keys)
	}
}

func TestDeviceErrorsAndState(t *testing.T) {
	d := NewDevice()
	d.SetError("boom", ReadError)
	d.SetError("bang", WriteError)

	if d.ErrorString() != "bang" || d.LastError().Kind != WriteError {
		t.Errorf("last error = %v", d.LastError())
	}
	st := d.Stats()
	if st.Errors != 2 || st.ReadErrors != 1 || st.WriteErrors != 1 {
		t.Errorf("stats = %s", st)
	}
	d.ClearError()
	if d.LastError() != nil {
		t.Error("ClearError() kept the error")
	}

	for len(d.Events()) > 0 {
		<-d.Events()
	}
	d.SetState(ConnectingState)
	d.SetState(ConnectingState)
	if len(d.Events()) != 1 {
		t.Errorf("repeated state produced %d events, want 1", len(d.Events()))
	}
	evt := <-d.Events()
	if evt.Type != EventTypeState || evt.State != ConnectingState {
		t.Errorf("event = %+v", evt)
	}

	d.FramesWritten(1)
	if evt := <-d.Events(); evt.Type != EventTypeFramesWritten || evt.Count != 1 {
		t.Errorf("event = %+v", evt)
	}
}

func TestDeviceDropsEventsWhenFull(t *testing.T) {
	d := NewDevice()
	for i := 0; i < cap(d.evtChan)+5; i++ {
		d.FramesWritten(1)
	}
	if got := d.Stats().DroppedEvents; got != 5 {
		t.Errorf("DroppedEvents = %d, want 5", got)
	}
	if d.Stats().FramesSent != uint64(cap(d.evtChan)+5) {
		t.Errorf("FramesSent = %d", d.Stats().FramesSent)
	}
}
