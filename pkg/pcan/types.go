package pcan

//  PCAN-Basic API
//
//  Copyright (C) 1999-2024  PEAK-System Technik GmbH, Darmstadt
//  more Info at http://www.peak-system.com

// Base type mappings (C → Go)
type BYTE = uint8
type WORD = uint16
type DWORD = uint32

type TPCANHandle uint16      // PCAN hardware channel handle (WORD in C)
type TPCANStatus uint32      // PCAN status/error code (DWORD in C)
type TPCANParameter uint8    // PCAN parameter to be read or set (BYTE in C)
type TPCANMessageType uint8  // Type of a PCAN message (BYTE in C)
type TPCANType uint8         // Type of PCAN hardware to be initialized (BYTE in C)
type TPCANBaudrate uint16    // PCAN baud rate register value (WORD in C)
type ChannelCondition uint32 // Availability status of a channel

// PCAN channel handles
const (
	PCAN_NONEBUS TPCANHandle = 0x00 // Undefined/default value for a PCAN bus

	PCAN_PCIBUS1  TPCANHandle = 0x41  // PCAN-PCI interface, channel 1
	PCAN_PCIBUS2  TPCANHandle = 0x42  // PCAN-PCI interface, channel 2
	PCAN_PCIBUS3  TPCANHandle = 0x43  // PCAN-PCI interface, channel 3
	PCAN_PCIBUS4  TPCANHandle = 0x44  // PCAN-PCI interface, channel 4
	PCAN_PCIBUS5  TPCANHandle = 0x45  // PCAN-PCI interface, channel 5
	PCAN_PCIBUS6  TPCANHandle = 0x46  // PCAN-PCI interface, channel 6
	PCAN_PCIBUS7  TPCANHandle = 0x47  // PCAN-PCI interface, channel 7
	PCAN_PCIBUS8  TPCANHandle = 0x48  // PCAN-PCI interface, channel 8
	PCAN_PCIBUS9  TPCANHandle = 0x409 // PCAN-PCI interface, channel 9
	PCAN_PCIBUS10 TPCANHandle = 0x40A // PCAN-PCI interface, channel 10
	PCAN_PCIBUS11 TPCANHandle = 0x40B // PCAN-PCI interface, channel 11
	PCAN_PCIBUS12 TPCANHandle = 0x40C // PCAN-PCI interface, channel 12
	PCAN_PCIBUS13 TPCANHandle = 0x40D // PCAN-PCI interface, channel 13
	PCAN_PCIBUS14 TPCANHandle = 0x40E // PCAN-PCI interface, channel 14
	PCAN_PCIBUS15 TPCANHandle = 0x40F // PCAN-PCI interface, channel 15
	PCAN_PCIBUS16 TPCANHandle = 0x410 // PCAN-PCI interface, channel 16

	PCAN_USBBUS1  TPCANHandle = 0x51  // PCAN-USB interface, channel 1
	PCAN_USBBUS2  TPCANHandle = 0x52  // PCAN-USB interface, channel 2
	PCAN_USBBUS3  TPCANHandle = 0x53  // PCAN-USB interface, channel 3
	PCAN_USBBUS4  TPCANHandle = 0x54  // PCAN-USB interface, channel 4
	PCAN_USBBUS5  TPCANHandle = 0x55  // PCAN-USB interface, channel 5
	PCAN_USBBUS6  TPCANHandle = 0x56  // PCAN-USB interface, channel 6
	PCAN_USBBUS7  TPCANHandle = 0x57  // PCAN-USB interface, channel 7
	PCAN_USBBUS8  TPCANHandle = 0x58  // PCAN-USB interface, channel 8
	PCAN_USBBUS9  TPCANHandle = 0x509 // PCAN-USB interface, channel 9
	PCAN_USBBUS10 TPCANHandle = 0x50A // PCAN-USB interface, channel 10
	PCAN_USBBUS11 TPCANHandle = 0x50B // PCAN-USB interface, channel 11
	PCAN_USBBUS12 TPCANHandle = 0x50C // PCAN-USB interface, channel 12
	PCAN_USBBUS13 TPCANHandle = 0x50D // PCAN-USB interface, channel 13
	PCAN_USBBUS14 TPCANHandle = 0x50E // PCAN-USB interface, channel 14
	PCAN_USBBUS15 TPCANHandle = 0x50F // PCAN-USB interface, channel 15
	PCAN_USBBUS16 TPCANHandle = 0x510 // PCAN-USB interface, channel 16
)

// PCAN error and status codes
const (
	PCAN_ERROR_OK           TPCANStatus = 0x00000   // No error
	PCAN_ERROR_XMTFULL      TPCANStatus = 0x00001   // Transmit buffer in CAN controller is full
	PCAN_ERROR_OVERRUN      TPCANStatus = 0x00002   // CAN controller was read too late
	PCAN_ERROR_BUSLIGHT     TPCANStatus = 0x00004   // Bus error: an error counter reached the 'light' limit
	PCAN_ERROR_BUSHEAVY     TPCANStatus = 0x00008   // Bus error: an error counter reached the 'heavy' limit
	PCAN_ERROR_BUSOFF       TPCANStatus = 0x00010   // Bus error: controller is bus-off
	PCAN_ERROR_QRCVEMPTY    TPCANStatus = 0x00020   // Receive queue empty
	PCAN_ERROR_QOVERRUN     TPCANStatus = 0x00040   // Receive queue read too late
	PCAN_ERROR_QXMTFULL     TPCANStatus = 0x00080   // Transmit queue full
	PCAN_ERROR_REGTEST      TPCANStatus = 0x00100   // Controller register test failed
	PCAN_ERROR_NODRIVER     TPCANStatus = 0x00200   // Driver not loaded
	PCAN_ERROR_HWINUSE      TPCANStatus = 0x00400   // Hardware already in use by a Net
	PCAN_ERROR_NETINUSE     TPCANStatus = 0x00800   // A Client is already connected to the Net
	PCAN_ERROR_ILLHW        TPCANStatus = 0x01400   // Invalid hardware handle
	PCAN_ERROR_ILLNET       TPCANStatus = 0x01800   // Invalid Net handle
	PCAN_ERROR_ILLCLIENT    TPCANStatus = 0x01C00   // Invalid Client handle
	PCAN_ERROR_RESOURCE     TPCANStatus = 0x02000   // Cannot create resource (FIFO, timeout, etc.)
	PCAN_ERROR_ILLPARAMTYPE TPCANStatus = 0x04000   // Invalid parameter
	PCAN_ERROR_ILLPARAMVAL  TPCANStatus = 0x08000   // Invalid parameter value
	PCAN_ERROR_UNKNOWN      TPCANStatus = 0x10000   // Unknown error
	PCAN_ERROR_ILLDATA      TPCANStatus = 0x20000   // Invalid data / function / action
	PCAN_ERROR_BUSPASSIVE   TPCANStatus = 0x40000   // Bus error: controller is error passive
	PCAN_ERROR_ILLMODE      TPCANStatus = 0x80000   // Driver object wrong state for operation
	PCAN_ERROR_CAUTION      TPCANStatus = 0x2000000 // Operation ok but irregularities logged
	PCAN_ERROR_INITIALIZE   TPCANStatus = 0x4000000 // Channel not initialized
	PCAN_ERROR_ILLOPERATION TPCANStatus = 0x8000000 // Invalid operation
)

// PCAN parameters (for CAN_GetValue / CAN_SetValue)
const (
	PCAN_RECEIVE_EVENT     TPCANParameter = 0x03 // Receive event handler parameter
	PCAN_API_VERSION       TPCANParameter = 0x05 // PCAN-Basic API version
	PCAN_CHANNEL_CONDITION TPCANParameter = 0x0D // Availability status of a channel
	PCAN_HARDWARE_NAME     TPCANParameter = 0x0E // Hardware name
)

// Channel conditions
const (
	PCAN_CHANNEL_UNAVAILABLE ChannelCondition = 0x00                                             // Channel handle invalid/not available
	PCAN_CHANNEL_AVAILABLE   ChannelCondition = 0x01                                             // Channel handle is available
	PCAN_CHANNEL_OCCUPIED    ChannelCondition = 0x02                                             // Channel already in use
	PCAN_CHANNEL_PCANVIEW    ChannelCondition = (PCAN_CHANNEL_AVAILABLE | PCAN_CHANNEL_OCCUPIED) // In use by PCAN-View but still connectable
)

const (
	MAX_LENGTH_HARDWARE_NAME  = 33  // 32 chars + terminator
	MAX_LENGTH_VERSION_STRING = 256 // 255 chars + terminator
	MAX_LENGTH_ERROR_TEXT     = 256 // CAN_GetErrorText buffer, 255 chars + terminator
)

// PCAN message types
const (
	PCAN_MESSAGE_STANDARD TPCANMessageType = 0x00 // 11-bit CAN frame
	PCAN_MESSAGE_RTR      TPCANMessageType = 0x01 // Remote-Transfer-Request
	PCAN_MESSAGE_EXTENDED TPCANMessageType = 0x02 // 29-bit CAN frame
	PCAN_MESSAGE_FD       TPCANMessageType = 0x04 // CAN FD frame
	PCAN_MESSAGE_ERRFRAME TPCANMessageType = 0x40 // Error frame
	PCAN_MESSAGE_STATUS   TPCANMessageType = 0x80 // PCAN status message
)

// Baud rate codes = BTR0/BTR1 register values for the CAN controller.
const (
	PCAN_BAUD_1M   TPCANBaudrate = 0x0014 //   1 MBit/s
	PCAN_BAUD_800K TPCANBaudrate = 0x0016 // 800 kBit/s
	PCAN_BAUD_500K TPCANBaudrate = 0x001C // 500 kBit/s
	PCAN_BAUD_250K TPCANBaudrate = 0x011C // 250 kBit/s
	PCAN_BAUD_125K TPCANBaudrate = 0x031C // 125 kBit/s
	PCAN_BAUD_100K TPCANBaudrate = 0x432F // 100 kBit/s
	PCAN_BAUD_95K  TPCANBaudrate = 0xC34E //  95.238 kBit/s
	PCAN_BAUD_83K  TPCANBaudrate = 0x852B //  83.333 kBit/s
	PCAN_BAUD_50K  TPCANBaudrate = 0x472F //  50 kBit/s
	PCAN_BAUD_47K  TPCANBaudrate = 0x1414 //  47.619 kBit/s
	PCAN_BAUD_33K  TPCANBaudrate = 0x8B2F //  33.333 kBit/s
	PCAN_BAUD_20K  TPCANBaudrate = 0x532F //  20 kBit/s
	PCAN_BAUD_10K  TPCANBaudrate = 0x672F //  10 kBit/s
	PCAN_BAUD_5K   TPCANBaudrate = 0x7F7F //   5 kBit/s
)

// TPCANMsg represents a classical CAN frame.
type TPCANMsg struct {
	ID      DWORD            // 11/29-bit message identifier
	MSGTYPE TPCANMessageType // Message type flags
	LEN     BYTE             // DLC (0..8)
	DATA    [8]BYTE          // Data bytes
}

// TPCANTimestamp represents the timestamp of a received classical CAN frame.
// TotalMicroseconds = micros + (1000 * millis) + (0x100000000 * 1000 * millis_overflow)
type TPCANTimestamp struct {
	Millis         DWORD // ms: 0 .. 2^32-1
	MillisOverflow WORD  // rollovers of Millis
	Micros         WORD  // µs: 0..999
}

func (c ChannelCondition) String() string {
	switch c {
	case PCAN_CHANNEL_UNAVAILABLE:
		return "UNAVAILABLE"
	case PCAN_CHANNEL_AVAILABLE:
		return "AVAILABLE"
	case PCAN_CHANNEL_OCCUPIED:
		return "OCCUPIED"
	case PCAN_CHANNEL_PCANVIEW:
		return "PCANVIEW"
	default:
		return "UNKNOWN"
	}
}
