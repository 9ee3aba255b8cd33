package pcanbus

import (
	"testing"

	"github.com/roffe/pcanbus/pkg/pcan"
)

func TestBitrateCode(t *testing.T) {
	tests := []struct {
		bitrate int
		want    pcan.TPCANBaudrate
		ok      bool
	}{
		{5000, pcan.PCAN_BAUD_5K, true},
		{33000, pcan.PCAN_BAUD_33K, true},
		{125000, pcan.PCAN_BAUD_125K, true},
		{500000, pcan.PCAN_BAUD_500K, true},
		{1000000, pcan.PCAN_BAUD_1M, true},
		{0, 0, false},
		{4999, 0, false},
		{33333, 0, false},
		{500001, 0, false},
		{2000000, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := BitrateCode(tt.bitrate)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BitrateCode(%d) = 0x%X, %v; want 0x%X, %v", tt.bitrate, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBitrateTableSorted(t *testing.T) {
	for i := 1; i < len(bitrateTable); i++ {
		if bitrateTable[i-1].bitrate >= bitrateTable[i].bitrate {
			t.Fatalf("table not strictly increasing at %d: %d >= %d", i, bitrateTable[i-1].bitrate, bitrateTable[i].bitrate)
		}
	}
	rates := SupportedBitrates()
	if len(rates) != 14 || rates[0] != 5000 || rates[len(rates)-1] != 1000000 {
		t.Errorf("SupportedBitrates() = %v", rates)
	}
	if _, ok := BitrateCode(DefaultBitrate); !ok {
		t.Error("DefaultBitrate is not in the table")
	}
}
