package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/jroimartin/gocui"
	"github.com/roffe/pcanbus"
	"github.com/roffe/pcanbus/cmd/pcantool/pkg/ui"
	"github.com/spf13/cobra"
)

// maxLines caps the packets view; 'c' clears it.
const maxLines = 50000

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor the CANbus for frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		retries, err := cmd.Flags().GetUint(flagRetries)
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		m := newMonitor(s)
		s.onFrames = m.onFrames

		return s.run(cmd.Context(), retries, m.run)
	},
}

type monitor struct {
	s       *session
	filter  idFilter
	input   *ui.Input
	batches chan []pcanbus.Frame

	hidden  uint64 // frames rejected by the filter
	dropped uint64 // batches lost while the view was busy

	// gui goroutine only
	lines int
}

func newMonitor(s *session) *monitor {
	return &monitor{
		s: s,
		input: &ui.Input{
			Name:      "filter",
			Title:     "Filter",
			X:         0,
			Y:         9,
			W:         25,
			MaxLength: 60,
		},
		batches: make(chan []pcanbus.Frame, 64),
	}
}

// onFrames runs on the event watcher goroutine.
func (m *monitor) onFrames(frames []pcanbus.Frame) {
	kept, n := m.filter.Apply(frames)
	atomic.AddUint64(&m.hidden, uint64(n))
	if len(kept) == 0 {
		return
	}
	select {
	case m.batches <- kept:
	default:
		atomic.AddUint64(&m.dropped, 1)
	}
}

func (m *monitor) run(ctx context.Context) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	g.Cursor = true
	g.SetManagerFunc(m.layout)

	if err := m.initKeybindings(g); err != nil {
		return err
	}

	log.SetOutput(&viewWriter{g: g, name: "errors"})
	defer log.SetOutput(os.Stderr)

	go m.frameParser(ctx, g)
	go func() {
		<-ctx.Done()
		g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
	}()

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (m *monitor) frameParser(ctx context.Context, g *gocui.Gui) {
	for {
		select {
		case <-ctx.Done():
			return
		case frames := <-m.batches:
			g.Update(func(g *gocui.Gui) error {
				packets, err := g.View("packets")
				if err != nil {
					return err
				}
				for _, f := range frames {
					if m.lines >= maxLines {
						break
					}
					fmt.Fprintln(packets, " "+f.ColorString())
					m.lines++
				}
				return m.updateInfo(g)
			})
		}
	}
}

func (m *monitor) updateInfo(g *gocui.Gui) error {
	info, err := g.View("info")
	if err != nil {
		return err
	}
	st := m.s.device.Stats()
	info.Clear()
	fmt.Fprintf(info, "channel: %s\n", pcanbus.ChannelName(m.s.backend.Channel()))
	fmt.Fprintf(info, "received: %d\n", st.FramesReceived)
	fmt.Fprintf(info, "sent: %d\n", st.FramesSent)
	fmt.Fprintf(info, "errors: %d (r %d, w %d)\n", st.Errors, st.ReadErrors, st.WriteErrors)
	fmt.Fprintf(info, "filtered: %d\n", atomic.LoadUint64(&m.hidden))
	fmt.Fprintf(info, "in buffer: %d\n", m.lines)
	fmt.Fprintf(info, "dropped: %d\n", atomic.LoadUint64(&m.dropped)+st.DroppedEvents)
	return nil
}

func (m *monitor) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("info", 0, 0, 25, 8); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Info"
		if err := m.updateInfo(g); err != nil {
			return err
		}
	}

	if err := m.input.Layout(g); err != nil {
		return err
	}

	if v, err := g.SetView("help", 0, 12, 25, 19); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Wrap = true
		v.Title = "Help"
		fmt.Fprintln(v, "<Q, Ctrl-C> Quit")
		fmt.Fprintln(v, "<Space> Autoscroll")
		fmt.Fprintln(v, "<Ctrl-F> Set filter")
		fmt.Fprintln(v, "<C> Clear")
		fmt.Fprintln(v, "<Home/End> Top/Bottom")
	}

	if v, err := g.SetView("errors", 0, 20, 25, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Autoscroll = true
		v.Wrap = true
		v.Title = "Errors"
	}

	if v, err := g.SetView("packets", 26, 0, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.SelFgColor = gocui.ColorCyan
		v.Autoscroll = true
		v.Highlight = true
		v.Title = "Frame view"
		if _, err := g.SetCurrentView("packets"); err != nil {
			return err
		}
	}
	return nil
}

func (m *monitor) setFilter(g *gocui.Gui, v *gocui.View) error {
	ids, err := parseFilter(m.input.Value(v))
	if err != nil {
		log.Println(red("%v", err))
		return nil
	}
	m.filter.Set(ids)
	if len(ids) == 0 {
		log.Println("filter cleared")
	} else {
		log.Printf("filter: % X", ids)
	}
	_, err = g.SetCurrentView("packets")
	return err
}

func (m *monitor) clear(g *gocui.Gui, v *gocui.View) error {
	m.lines = 0
	v.Autoscroll = true
	v.Clear()
	v.SetOrigin(0, 0)
	return m.updateInfo(g)
}

func (m *monitor) initKeybindings(g *gocui.Gui) error {
	bindings := []struct {
		view    string
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, quit},
		{"packets", 'q', quit},
		{"packets", gocui.KeyCtrlF, focus("filter")},
		{"filter", gocui.KeyEnter, m.setFilter},
		{"filter", gocui.KeyEsc, focus("packets")},
		{"packets", 'c', m.clear},
		{"packets", gocui.KeySpace, flipAutoscroll},
		{"packets", gocui.KeyHome, top},
		{"packets", gocui.KeyEnd, bottom},
		{"packets", gocui.KeyArrowUp, scroll(-1)},
		{"packets", gocui.KeyArrowDown, scroll(1)},
		{"packets", gocui.KeyPgup, scroll(-10)},
		{"packets", gocui.KeyPgdn, scroll(10)},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func focus(name string) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		_, err := g.SetCurrentView(name)
		return err
	}
}

func flipAutoscroll(g *gocui.Gui, v *gocui.View) error {
	v.Autoscroll = !v.Autoscroll
	return nil
}

func scroll(dy int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		v.Autoscroll = false
		v.MoveCursor(0, dy, false)
		return nil
	}
}

func top(g *gocui.Gui, v *gocui.View) error {
	cx, cy := v.Cursor()
	v.Autoscroll = false
	v.SetOrigin(0, 0)
	v.SetCursor(cx, cy)
	return nil
}

func bottom(g *gocui.Gui, v *gocui.View) error {
	v.Autoscroll = false
	cx, cy := v.Cursor()
	_, y := v.Size()
	if oy := len(v.BufferLines()) - y + 1; oy > 0 {
		v.SetOrigin(0, oy)
	}
	v.SetCursor(cx, cy)
	return nil
}

// viewWriter appends log output to a view from any goroutine.
type viewWriter struct {
	g    *gocui.Gui
	name string
}

func (w *viewWriter) Write(p []byte) (int, error) {
	b := make([]byte, len(p))
	copy(b, p)
	w.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(w.name)
		if err != nil {
			return nil
		}
		_, err = v.Write(b)
		return err
	})
	return len(p), nil
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
