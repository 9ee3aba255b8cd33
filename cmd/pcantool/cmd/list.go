package cmd

import (
	"fmt"

	"github.com/roffe/pcanbus"
	"github.com/roffe/pcanbus/pkg/pcan"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List adapters and PCAN channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return err
		}

		for _, a := range pcanbus.ListAdapters() {
			ok, err := a.CanCreate()
			status := green("available")
			if !ok {
				status = red("unavailable: %v", err)
			}
			fmt.Printf("%s (%s)\n", a.String(), status)
		}

		lib, err := pcan.Load()
		if err != nil {
			return err
		}
		ver, err := lib.APIVersion()
		if err != nil {
			return err
		}
		fmt.Printf("%s, API version %s\n", lib.Path(), ver)

		for _, name := range pcanbus.ChannelNames() {
			h := pcanbus.ResolveChannel(name)
			cond, err := lib.ChannelCondition(h)
			if err != nil {
				if all {
					fmt.Printf("  %-6s %s\n", name, red("%v", err))
				}
				continue
			}
			if cond == pcan.PCAN_CHANNEL_UNAVAILABLE && !all {
				continue
			}
			hw, _ := lib.HardwareName(h)
			fmt.Printf("  %-6s %-24s %s\n", name, conditionString(cond), hw)
		}
		return nil
	},
}

func conditionString(c pcan.ChannelCondition) string {
	switch c {
	case pcan.PCAN_CHANNEL_AVAILABLE:
		return green("%s", c)
	case pcan.PCAN_CHANNEL_OCCUPIED, pcan.PCAN_CHANNEL_PCANVIEW:
		return yellow("%s", c)
	default:
		return red("%s", c)
	}
}

func init() {
	listCmd.Flags().BoolP("all", "A", false, "include unavailable channels")
	rootCmd.AddCommand(listCmd)
}
