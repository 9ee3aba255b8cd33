package pcanbus

import (
	"testing"

	"github.com/roffe/pcanbus/pkg/pcan"
)

func TestResolveChannel(t *testing.T) {
	tests := []struct {
		name string
		want pcan.TPCANHandle
	}{
		{"usb0", pcan.PCAN_USBBUS1},
		{"usb3", pcan.PCAN_USBBUS4},
		{"usb7", pcan.PCAN_USBBUS8},
		{"usb15", pcan.PCAN_USBBUS16},
		{"pci0", pcan.PCAN_PCIBUS1},
		{"pci15", pcan.PCAN_PCIBUS16},
		{"usb16", pcan.PCAN_NONEBUS},
		{"bogus", pcan.PCAN_NONEBUS},
		{"USB0", pcan.PCAN_NONEBUS},
		{"", pcan.PCAN_NONEBUS},
		{"none", pcan.PCAN_NONEBUS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveChannel(tt.name); got != tt.want {
				t.Errorf("ResolveChannel(%q) = 0x%X, want 0x%X", tt.name, got, tt.want)
			}
		})
	}
}

func TestChannelNames(t *testing.T) {
	names := ChannelNames()
	if len(names) != 32 {
		t.Fatalf("len(ChannelNames()) = %d, want 32", len(names))
	}
	for _, name := range names {
		if name == "none" {
			t.Fatal("ChannelNames() includes the terminator")
		}
		if back := ChannelName(ResolveChannel(name)); back != name {
			t.Errorf("ChannelName(ResolveChannel(%q)) = %q", name, back)
		}
	}
	if got := ChannelName(0xFFFF); got != "none" {
		t.Errorf("ChannelName(unknown) = %q, want none", got)
	}
}
