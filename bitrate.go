package pcanbus

import (
	"sort"

	"github.com/roffe/pcanbus/pkg/pcan"
)

// DefaultBitrate is stored on every new backend.
const DefaultBitrate = 500000

type bitrateItem struct {
	bitrate int
	code    pcan.TPCANBaudrate
}

// sorted by bitrate, strictly increasing
var bitrateTable = []bitrateItem{
	{5000, pcan.PCAN_BAUD_5K},
	{10000, pcan.PCAN_BAUD_10K},
	{20000, pcan.PCAN_BAUD_20K},
	{33000, pcan.PCAN_BAUD_33K},
	{47000, pcan.PCAN_BAUD_47K},
	{50000, pcan.PCAN_BAUD_50K},
	{83000, pcan.PCAN_BAUD_83K},
	{95000, pcan.PCAN_BAUD_95K},
	{100000, pcan.PCAN_BAUD_100K},
	{125000, pcan.PCAN_BAUD_125K},
	{250000, pcan.PCAN_BAUD_250K},
	{500000, pcan.PCAN_BAUD_500K},
	{800000, pcan.PCAN_BAUD_800K},
	{1000000, pcan.PCAN_BAUD_1M},
}

// BitrateCode returns the driver code for bitrate (bits/s). Only exact
// table entries match.
func BitrateCode(bitrate int) (pcan.TPCANBaudrate, bool) {
	i := sort.Search(len(bitrateTable), func(i int) bool {
		return bitrateTable[i].bitrate >= bitrate
	})
	if i < len(bitrateTable) && bitrateTable[i].bitrate == bitrate {
		return bitrateTable[i].code, true
	}
	return 0, false
}

// SupportedBitrates lists the accepted bitrates in increasing order.
func SupportedBitrates() []int {
	out := make([]int, len(bitrateTable))
	for i, item := range bitrateTable {
		out[i] = item.bitrate
	}
	return out
}
