package pcanbus

import "github.com/roffe/pcanbus/pkg/pcan"

// encodeFrame builds the driver message for f. Callers have already
// rejected payloads over MaxClassicPayload.
func encodeFrame(f Frame) pcan.TPCANMsg {
	msg := pcan.TPCANMsg{
		ID:      f.ID,
		LEN:     uint8(len(f.Payload)),
		MSGTYPE: pcan.PCAN_MESSAGE_STANDARD,
	}
	if f.Extended {
		msg.MSGTYPE = pcan.PCAN_MESSAGE_EXTENDED
	}
	if f.Kind == RemoteRequestFrame {
		// remote requests carry no data
		msg.MSGTYPE |= pcan.PCAN_MESSAGE_RTR
	} else {
		copy(msg.DATA[:], f.Payload)
	}
	return msg
}

func decodeFrame(msg pcan.TPCANMsg, ts pcan.TPCANTimestamp) Frame {
	n := int(msg.LEN)
	if n > len(msg.DATA) {
		n = len(msg.DATA)
	}
	payload := make([]byte, n)
	copy(payload, msg.DATA[:n])

	f := Frame{
		ID:       msg.ID,
		Payload:  payload,
		Kind:     DataFrame,
		Extended: msg.MSGTYPE&pcan.PCAN_MESSAGE_EXTENDED != 0,
		TimeStamp: TimeStamp{
			Seconds:      int64(ts.Millis / 1000),
			Microseconds: int64(ts.Micros),
		},
	}
	if msg.MSGTYPE&pcan.PCAN_MESSAGE_RTR != 0 {
		f.Kind = RemoteRequestFrame
	}
	return f
}
