package pcanbus

import (
	"log"

	"github.com/roffe/pcanbus/pkg/pcan"
)

// startWrite sends at most one queued frame per scheduling turn. The write
// timer stays armed while frames remain and is stopped once the queue is
// empty. A frame the driver rejects is reported and not retried.
func (b *Backend) startWrite() {
	if !b.bus.HasOutgoingFrames() {
		b.writeNotifier.Stop()
		return
	}

	frame, ok := b.bus.DequeueOutgoingFrame()
	if !ok {
		b.writeNotifier.Stop()
		return
	}

	msg := encodeFrame(frame)
	if err := b.drv.Write(b.channel, &msg); err != nil {
		b.bus.SetError(b.systemErrorString(err), WriteError)
	} else {
		if b.debug {
			log.Printf("%s tx %s", ChannelName(b.channel), frame)
		}
		b.bus.FramesWritten(1)
	}

	if b.bus.HasOutgoingFrames() && !b.writeNotifier.IsActive() {
		b.writeNotifier.Start()
	}
}

// startRead drains the driver receive queue after a readiness signal. The
// signal is edge triggered, so the loop runs until the driver reports an
// empty queue. The batch read so far is delivered even when a read fails.
func (b *Backend) startRead() {
	var frames []Frame

read:
	for {
		msg, ts, err := b.drv.Read(b.channel)
		if err != nil {
			code, _ := pcan.StatusOf(err)
			switch code {
			case pcan.PCAN_ERROR_QRCVEMPTY:
			case pcan.PCAN_ERROR_XMTFULL:
				// Some drivers return XMTFULL from CAN_Read. It ends the
				// pass like an empty queue and is not a read error.
			default:
				b.bus.SetError(b.systemErrorString(err), ReadError)
			}
			break read
		}

		frame := decodeFrame(msg, ts)
		if b.debug {
			log.Printf("%s rx %s", ChannelName(b.channel), frame)
		}
		frames = append(frames, frame)
	}

	b.bus.EnqueueReceivedFrames(frames)
}

func (b *Backend) readinessFailed(err error) {
	b.bus.SetError("receive event: "+err.Error(), ReadError)
}
