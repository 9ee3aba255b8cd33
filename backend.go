package pcanbus

import (
	"fmt"
	"log"
	"strconv"

	"github.com/roffe/pcanbus/pkg/evloop"
	"github.com/roffe/pcanbus/pkg/pcan"
)

// Backend drives one PCAN channel for a Bus. It is not safe for concurrent
// use: every method, and the pumps it schedules, run on the goroutine that
// drives its loop.
type Backend struct {
	bus     Bus
	drv     Driver
	loop    *evloop.Loop
	channel pcan.TPCANHandle
	isOpen  bool
	debug   bool

	rxEvent       pcan.ReceiveEvent
	readNotifier  *evloop.Notifier
	writeNotifier *evloop.Timer
}

type Option func(*Backend)

// WithDebug logs every frame read and written.
func WithDebug(enabled bool) Option {
	return func(b *Backend) {
		b.debug = enabled
	}
}

// NewBackend resolves name to a channel handle and stores the default
// bitrate on bus. Unknown names are accepted here and fail at Open.
func NewBackend(name string, bus Bus, drv Driver, loop *evloop.Loop, opts ...Option) *Backend {
	b := &Backend{
		bus:     bus,
		drv:     drv,
		loop:    loop,
		channel: ResolveChannel(name),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.setupDefaultConfigurations()
	return b
}

// only called while closed
func (b *Backend) setupDefaultConfigurations() {
	if err := b.SetConfigurationParameter(BitRateKey, DefaultBitrate); err != nil {
		log.Printf("default bitrate rejected: %v", err)
	}
}

func (b *Backend) Bus() Bus { return b.bus }

func (b *Backend) Channel() pcan.TPCANHandle { return b.channel }

func (b *Backend) IsOpen() bool { return b.isOpen }

// Open initializes the channel, registers the receive event and starts the
// read pump. Calling Open on an open backend only re-asserts the connected
// state. On failure the backend stays closed and holds no resources.
func (b *Backend) Open() error {
	if !b.isOpen {
		b.bus.SetState(ConnectingState)
		if err := b.open(); err != nil {
			b.bus.SetState(UnconnectedState)
			return err
		}

		// apply every stored parameter except the bitrate, which cannot
		// change once the channel is initialized
		for _, key := range b.bus.ConfigurationKeys() {
			if key == BitRateKey {
				continue
			}
			param, _ := b.bus.ConfigurationParameter(key)
			if err := b.applyConfigurationParameter(key, param); err != nil {
				log.Printf("Cannot apply parameter: %v with value: %v", key, param)
			}
		}
	}

	b.bus.SetState(ConnectedState)
	return nil
}

func (b *Backend) open() error {
	value, _ := b.bus.ConfigurationParameter(BitRateKey)
	bitrate, err := toInt(value)
	if err != nil {
		return b.fail(ConnectionError, fmt.Sprintf("Invalid bitrate value: %v", value))
	}
	code, ok := BitrateCode(bitrate)
	if !ok {
		return b.fail(ConnectionError, "Unsupported bitrate value")
	}

	if err := b.drv.Initialize(b.channel, code); err != nil {
		return b.fail(ConnectionError, b.systemErrorString(err))
	}

	if b.rxEvent == nil {
		ev, err := b.drv.NewReceiveEvent()
		if err != nil {
			b.rollback()
			return b.fail(ConnectionError, err.Error())
		}
		b.rxEvent = ev
	}

	if err := b.drv.SetReceiveEvent(b.channel, b.rxEvent); err != nil {
		msg := b.systemErrorString(err)
		b.rollback()
		return b.fail(ConnectionError, msg)
	}

	b.writeNotifier = b.loop.NewTimer(b.startWrite)
	b.readNotifier = b.loop.NewNotifier(b.rxEvent, b.startRead, b.readinessFailed)
	b.readNotifier.SetEnabled(true)

	b.isOpen = true
	return nil
}

// rollback undoes a partially successful open. Its own failures are only
// logged; the open failure has already been reported.
func (b *Backend) rollback() {
	if err := b.drv.Uninitialize(b.channel); err != nil {
		log.Printf("rollback: uninitialize %s: %v", ChannelName(b.channel), err)
	}
	if b.rxEvent != nil {
		if err := b.rxEvent.Close(); err != nil {
			log.Printf("rollback: close receive event: %v", err)
		}
		b.rxEvent = nil
	}
}

// Close stops both pumps, unregisters the receive event, uninitializes the
// channel and releases the event. Every step runs even if an earlier one
// failed; each failure is reported as a ConnectionError.
func (b *Backend) Close() {
	b.bus.SetState(ClosingState)
	b.close()
	b.bus.SetState(UnconnectedState)
}

func (b *Backend) close() {
	// notifications stop before the handle goes away
	if b.readNotifier != nil {
		b.readNotifier.Close()
		b.readNotifier = nil
	}
	if b.writeNotifier != nil {
		b.writeNotifier.Close()
		b.writeNotifier = nil
	}

	if !b.isOpen {
		return
	}

	if err := b.drv.SetReceiveEvent(b.channel, nil); err != nil {
		b.bus.SetError(b.systemErrorString(err), ConnectionError)
	}

	if err := b.drv.Uninitialize(b.channel); err != nil {
		b.bus.SetError(b.systemErrorString(err), ConnectionError)
	}

	if b.rxEvent != nil {
		if err := b.rxEvent.Close(); err != nil {
			b.bus.SetError(err.Error(), ConnectionError)
		}
		b.rxEvent = nil
	}

	b.isOpen = false
}

// SetConfigurationParameter validates key and value and stores them on the
// bus. Only BitRateKey is understood; the bitrate cannot change while open.
func (b *Backend) SetConfigurationParameter(key ConfigKey, value interface{}) error {
	if err := b.applyConfigurationParameter(key, value); err != nil {
		return err
	}
	b.bus.SetConfigurationParameter(key, value)
	return nil
}

func (b *Backend) applyConfigurationParameter(key ConfigKey, value interface{}) error {
	switch key {
	case BitRateKey:
		return b.verifyBitRate(value)
	default:
		return b.fail(ConfigurationError, fmt.Sprintf("Unsupported configuration key: %v", key))
	}
}

func (b *Backend) verifyBitRate(value interface{}) error {
	if b.isOpen {
		return b.fail(ConfigurationError, "Impossible to reconfigure bitrate for the opened device")
	}
	bitrate, err := toInt(value)
	if err != nil {
		return b.fail(ConfigurationError, "Unsupported bitrate value")
	}
	if _, ok := BitrateCode(bitrate); !ok {
		return b.fail(ConfigurationError, "Unsupported bitrate value")
	}
	return nil
}

// WriteFrame queues f for transmission and arms the write pump. A rejected
// frame leaves the queue untouched.
func (b *Backend) WriteFrame(f Frame) error {
	if b.bus.State() != ConnectedState || b.writeNotifier == nil {
		return ErrNotConnected
	}

	if !f.IsValid() {
		return b.fail(WriteError, "Cannot write invalid frame")
	}

	if f.Kind != DataFrame && f.Kind != RemoteRequestFrame {
		return b.fail(WriteError, "Unable to write a frame with unacceptable type")
	}

	// CAN FD frame format not implemented at this stage
	if len(f.Payload) > MaxClassicPayload {
		return b.fail(WriteError, "CAN FD frame format not supported.")
	}

	b.bus.EnqueueOutgoingFrame(f)

	if !b.writeNotifier.IsActive() {
		b.writeNotifier.Start()
	}
	return nil
}

func (b *Backend) fail(kind ErrorKind, message string) error {
	b.bus.SetError(message, kind)
	return &BusError{Kind: kind, Message: message}
}

// systemErrorString turns a driver failure into the driver's own text.
func (b *Backend) systemErrorString(err error) string {
	code, ok := pcan.StatusOf(err)
	if !ok {
		return err.Error()
	}
	text, terr := b.drv.ErrorText(code)
	if terr != nil {
		return "Unable to retrieve an error string"
	}
	return text
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("bitrate %v is not a whole number", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("unsupported bitrate type %T", value)
	}
}
