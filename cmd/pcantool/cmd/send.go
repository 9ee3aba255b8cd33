package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roffe/pcanbus"
	"github.com/roffe/pcanbus/pkg/bar"
	"github.com/spf13/cobra"
)

const (
	flagExtended = "extended"
	flagRemote   = "rtr"
	flagCount    = "count"
	flagInterval = "interval"
)

var sendCmd = &cobra.Command{
	Use:   "send <id> [data]",
	Short: "Send a frame",
	Long:  `Send a frame, id and data in hex. Example: pcantool send -c usb0 7DF 0201`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		extended, _ := f.GetBool(flagExtended)
		remote, _ := f.GetBool(flagRemote)
		count, _ := f.GetInt(flagCount)
		interval, _ := f.GetDuration(flagInterval)
		retries, err := f.GetUint(flagRetries)
		if err != nil {
			return err
		}

		frame, err := parseFrame(args, extended, remote)
		if err != nil {
			return err
		}
		if count < 1 {
			return fmt.Errorf("invalid count %d", count)
		}

		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		return s.run(cmd.Context(), retries, func(ctx context.Context) error {
			return s.send(ctx, frame, count, interval)
		})
	},
}

func (s *session) send(ctx context.Context, frame pcanbus.Frame, count int, interval time.Duration) error {
	pb := bar.NewFrameBar(count, fmt.Sprintf("sending 0x%X", frame.ID))
	defer pb.Finish()

	for i := 0; i < count; i++ {
		if err := s.loop.Invoke(ctx, func() error {
			return s.backend.WriteFrame(frame)
		}); err != nil {
			return err
		}
		if interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		pb.Set(s.handled())
	}

	// wait for the write pump to drain the queue
	for s.handled() < count {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
		pb.Set(s.handled())
	}
	return nil
}

// handled counts frames the write pump has finished with.
func (s *session) handled() int {
	st := s.device.Stats()
	return int(st.FramesSent + st.WriteErrors)
}

func parseFrame(args []string, extended, remote bool) (pcanbus.Frame, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(args[0]), "0x"), 16, 32)
	if err != nil {
		return pcanbus.Frame{}, fmt.Errorf("invalid id %q: %w", args[0], err)
	}
	if remote {
		return pcanbus.NewRemoteRequest(uint32(id), extended), nil
	}
	var data []byte
	if len(args) > 1 {
		data, err = hex.DecodeString(strings.ReplaceAll(args[1], " ", ""))
		if err != nil {
			return pcanbus.Frame{}, fmt.Errorf("invalid data %q: %w", args[1], err)
		}
	}
	if extended {
		return pcanbus.NewExtendedFrame(uint32(id), data), nil
	}
	return pcanbus.NewFrame(uint32(id), data), nil
}

func init() {
	f := sendCmd.Flags()
	f.BoolP(flagExtended, "e", false, "29-bit identifier")
	f.Bool(flagRemote, false, "send a remote request")
	f.IntP(flagCount, "n", 1, "number of frames to send")
	f.Duration(flagInterval, 0, "delay between frames")
	rootCmd.AddCommand(sendCmd)
}
