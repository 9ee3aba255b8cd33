package pcanbus

import "github.com/roffe/pcanbus/pkg/pcan"

type pcanChannel struct {
	name  string
	index pcan.TPCANHandle
}

// the "none" entry terminates the table
var pcanChannels = []pcanChannel{
	{"usb0", pcan.PCAN_USBBUS1},
	{"usb1", pcan.PCAN_USBBUS2},
	{"usb2", pcan.PCAN_USBBUS3},
	{"usb3", pcan.PCAN_USBBUS4},
	{"usb4", pcan.PCAN_USBBUS5},
	{"usb5", pcan.PCAN_USBBUS6},
	{"usb6", pcan.PCAN_USBBUS7},
	{"usb7", pcan.PCAN_USBBUS8},
	{"usb8", pcan.PCAN_USBBUS9},
	{"usb9", pcan.PCAN_USBBUS10},
	{"usb10", pcan.PCAN_USBBUS11},
	{"usb11", pcan.PCAN_USBBUS12},
	{"usb12", pcan.PCAN_USBBUS13},
	{"usb13", pcan.PCAN_USBBUS14},
	{"usb14", pcan.PCAN_USBBUS15},
	{"usb15", pcan.PCAN_USBBUS16},
	{"pci0", pcan.PCAN_PCIBUS1},
	{"pci1", pcan.PCAN_PCIBUS2},
	{"pci2", pcan.PCAN_PCIBUS3},
	{"pci3", pcan.PCAN_PCIBUS4},
	{"pci4", pcan.PCAN_PCIBUS5},
	{"pci5", pcan.PCAN_PCIBUS6},
	{"pci6", pcan.PCAN_PCIBUS7},
	{"pci7", pcan.PCAN_PCIBUS8},
	{"pci8", pcan.PCAN_PCIBUS9},
	{"pci9", pcan.PCAN_PCIBUS10},
	{"pci10", pcan.PCAN_PCIBUS11},
	{"pci11", pcan.PCAN_PCIBUS12},
	{"pci12", pcan.PCAN_PCIBUS13},
	{"pci13", pcan.PCAN_PCIBUS14},
	{"pci14", pcan.PCAN_PCIBUS15},
	{"pci15", pcan.PCAN_PCIBUS16},
	{"none", pcan.PCAN_NONEBUS},
}

// ResolveChannel maps a channel name such as "usb0" or "pci3" to its
// driver handle. Names are case sensitive; anything else resolves to
// PCAN_NONEBUS, which the driver rejects at initialization.
func ResolveChannel(name string) pcan.TPCANHandle {
	i := 0
	for pcanChannels[i].index != pcan.PCAN_NONEBUS && pcanChannels[i].name != name {
		i++
	}
	return pcanChannels[i].index
}

// ChannelNames lists the connectable channel names in table order.
func ChannelNames() []string {
	out := make([]string, 0, len(pcanChannels)-1)
	for _, ch := range pcanChannels[:len(pcanChannels)-1] {
		out = append(out, ch.name)
	}
	return out
}

// ChannelName is the inverse of ResolveChannel.
func ChannelName(h pcan.TPCANHandle) string {
	for _, ch := range pcanChannels {
		if ch.index == h {
			return ch.name
		}
	}
	return "none"
}
