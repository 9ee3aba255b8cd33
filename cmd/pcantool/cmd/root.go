package cmd

import (
	"context"
	"log"

	"github.com/roffe/pcanbus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "pcantool",
	Short:        "PEAK-System CAN adapter tool",
	Long:         `List, monitor and send frames on PCAN-USB and PCAN-PCI channels`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

const (
	flagChannel = "channel"
	flagBitrate = "bitrate"
	flagDebug   = "debug"
	flagRetries = "retries"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagChannel, "c", "", "channel name, e.g. usb0. Empty = select from list")
	pf.IntP(flagBitrate, "b", pcanbus.DefaultBitrate, "CAN bitrate in bit/s")
	pf.BoolP(flagDebug, "d", false, "debug mode")
	pf.UintP(flagRetries, "r", 3, "attempts to open the channel")
}
