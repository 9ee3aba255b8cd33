package pcanbus

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"sync"
)

// Stats are running counters kept by a Device.
type Stats struct {
	FramesSent     uint64
	FramesReceived uint64
	ReadErrors     uint64
	WriteErrors    uint64
	Errors         uint64
	DroppedEvents  uint64
}

func (st Stats) String() string {
	return fmt.Sprintf("recv: %d sent: %d errors: %d (read %d, write %d) dropped events: %d",
		st.FramesReceived, st.FramesSent, st.Errors, st.ReadErrors, st.WriteErrors, st.DroppedEvents)
}

// Device is the standard Bus implementation. It is safe for concurrent use:
// the backend drives it from the loop goroutine while the application reads
// frames and events from its own goroutines.
type Device struct {
	mu       sync.Mutex
	outgoing []Frame
	incoming []Frame
	config   map[ConfigKey]interface{}
	keys     []ConfigKey
	state    State
	lastErr  *BusError
	stats    Stats

	evtChan chan Event
}

var _ Bus = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		config:  make(map[ConfigKey]interface{}),
		evtChan: make(chan Event, 100),
	}
}

// Events returns the notification channel. Events are dropped, and
// counted, when the channel is full.
func (d *Device) Events() <-chan Event {
	return d.evtChan
}

func (d *Device) sendEvent(evt Event) {
	select {
	case d.evtChan <- evt:
	default:
		d.mu.Lock()
		d.stats.DroppedEvents++
		d.mu.Unlock()
		_, file, no, ok := runtime.Caller(2)
		if ok {
			log.Printf("%s#%d event channel full: %s\n", filepath.Base(file), no, evt)
		} else {
			log.Printf("event channel full: %s", evt)
		}
	}
}

func (d *Device) HasOutgoingFrames() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.outgoing) > 0
}

func (d *Device) DequeueOutgoingFrame() (Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.outgoing) == 0 {
		return Frame{}, false
	}
	f := d.outgoing[0]
	d.outgoing[0] = Frame{}
	d.outgoing = d.outgoing[1:]
	return f, true
}

func (d *Device) EnqueueOutgoingFrame(f Frame) {
	d.mu.Lock()
	d.outgoing = append(d.outgoing, f)
	d.mu.Unlock()
}

// FramesToWrite returns the number of frames waiting to be sent.
func (d *Device) FramesToWrite() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.outgoing)
}

func (d *Device) EnqueueReceivedFrames(frames []Frame) {
	if len(frames) == 0 {
		return
	}
	d.mu.Lock()
	d.incoming = append(d.incoming, frames...)
	d.stats.FramesReceived += uint64(len(frames))
	d.mu.Unlock()
	d.sendEvent(Event{Type: EventTypeFramesReceived, Details: fmt.Sprintf("%d frames received", len(frames)), Count: len(frames)})
}

// FramesAvailable returns the number of received frames not yet read.
func (d *Device) FramesAvailable() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.incoming)
}

// ReadFrame pops the oldest received frame.
func (d *Device) ReadFrame() (Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.incoming) == 0 {
		return Frame{}, false
	}
	f := d.incoming[0]
	d.incoming[0] = Frame{}
	d.incoming = d.incoming[1:]
	return f, true
}

// ReadAllFrames pops every received frame in arrival order.
func (d *Device) ReadAllFrames() []Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.incoming
	d.incoming = nil
	return out
}

func (d *Device) ConfigurationParameter(key ConfigKey) (interface{}, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.config[key]
	return v, ok
}

// ConfigurationKeys returns the stored keys in the order they were first set.
func (d *Device) ConfigurationKeys() []ConfigKey {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ConfigKey, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *Device) SetConfigurationParameter(key ConfigKey, value interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == nil {
		if _, ok := d.config[key]; ok {
			delete(d.config, key)
			for i, k := range d.keys {
				if k == key {
					d.keys = append(d.keys[:i], d.keys[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := d.config[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.config[key] = value
}

func (d *Device) SetError(message string, kind ErrorKind) {
	d.mu.Lock()
	d.lastErr = &BusError{Kind: kind, Message: message}
	d.stats.Errors++
	switch kind {
	case ReadError:
		d.stats.ReadErrors++
	case WriteError:
		d.stats.WriteErrors++
	}
	d.mu.Unlock()
	d.sendEvent(Event{Type: EventTypeError, Details: message, Kind: kind})
}

// LastError returns the most recent error, or nil.
func (d *Device) LastError() *BusError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// ErrorString returns the message of the most recent error.
func (d *Device) ErrorString() string {
	if err := d.LastError(); err != nil {
		return err.Message
	}
	return ""
}

func (d *Device) ClearError() {
	d.mu.Lock()
	d.lastErr = nil
	d.mu.Unlock()
}

func (d *Device) SetState(s State) {
	d.mu.Lock()
	if d.state == s {
		d.mu.Unlock()
		return
	}
	d.state = s
	d.mu.Unlock()
	d.sendEvent(Event{Type: EventTypeState, Details: s.String(), State: s})
}

func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Device) FramesWritten(count int) {
	d.mu.Lock()
	d.stats.FramesSent += uint64(count)
	d.mu.Unlock()
	d.sendEvent(Event{Type: EventTypeFramesWritten, Details: fmt.Sprintf("%d frames written", count), Count: count})
}

func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}
