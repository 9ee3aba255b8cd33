package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/avast/retry-go"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/roffe/pcanbus"
	"github.com/roffe/pcanbus/pkg/evloop"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	red    = color.New(color.FgRed).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
	green  = color.New(color.FgGreen).SprintfFunc()
)

// session owns one backend and the loop that drives it.
type session struct {
	loop    *evloop.Loop
	device  *pcanbus.Device
	backend *pcanbus.Backend
	debug   bool

	// onFrames, if set, receives every batch of received frames
	onFrames func([]pcanbus.Frame)
}

func newSession(cmd *cobra.Command) (*session, error) {
	f := cmd.Flags()
	channel, err := f.GetString(flagChannel)
	if err != nil {
		return nil, err
	}
	if channel == "" {
		if channel, err = selectChannel(); err != nil {
			return nil, err
		}
	}
	bitrate, err := f.GetInt(flagBitrate)
	if err != nil {
		return nil, err
	}
	debug, err := f.GetBool(flagDebug)
	if err != nil {
		return nil, err
	}

	s := &session{
		loop:   evloop.New(),
		device: pcanbus.NewDevice(),
		debug:  debug,
	}
	s.backend, err = pcanbus.NewAdapter(pcanbus.PCANAdapterName, &pcanbus.AdapterConfig{
		Channel: channel,
		Bitrate: bitrate,
		Debug:   debug,
		Loop:    s.loop,
		Bus:     s.device,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func selectChannel() (string, error) {
	prompt := promptui.Select{
		Label:    "Select channel",
		HideHelp: true,
		Size:     10,
		Items:    pcanbus.ChannelNames(),
	}
	_, result, err := prompt.Run()
	return result, err
}

// run starts the loop, opens the channel and runs fn. The channel is closed
// and the loop stopped when fn returns or ctx is done.
func (s *session) run(ctx context.Context, attempts uint, fn func(context.Context) error) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		s.loop.Run(loopCtx)
	}()
	defer func() {
		if err := s.loop.Invoke(context.Background(), func() error {
			s.backend.Close()
			return nil
		}); err != nil {
			log.Println(err)
		}
		stopLoop()
		<-loopDone
	}()

	err := retry.Do(
		func() error {
			return s.loop.Invoke(ctx, s.backend.Open)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("open attempt %d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		return err
	}
	log.Printf("opened %s", pcanbus.ChannelName(s.backend.Channel()))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return s.watchEvents(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return fn(gctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *session) watchEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-s.device.Events():
			switch evt.Type {
			case pcanbus.EventTypeError:
				log.Println(red("%s: %s", evt.Kind, evt.Details))
			case pcanbus.EventTypeState:
				if s.debug {
					log.Println(yellow("%s", evt))
				}
			case pcanbus.EventTypeFramesReceived:
				frames := s.device.ReadAllFrames()
				if s.onFrames != nil && len(frames) > 0 {
					s.onFrames(frames)
				}
			}
		}
	}
}
