package irprotocol

import "time"

// NEC protocol references
// https://www.sbprojects.net/knowledge/ir/nec.php
// https://techdocs.altium.com/display/FPGA/NEC+Infrared+Transmission+Protocol

const (
	// NEC Consumer IR is modulated at 38 kHz
	NEC_modulation_frequency = Freq38kHz

	NEC_unit          = time.Nanosecond * 562_500 // 562.5 us
	NEC_lead_mark     = NEC_unit * 16             // 9 ms
	NEC_lead_space    = NEC_unit * 8              // 4.5 ms
	NEC_repeat_space  = NEC_unit * 4              // 2.25 ms
	NEC_bit_mark      = NEC_unit                  // 562.5 us
	NEC_bit_0_space   = NEC_unit                  // 562.5 us
	NEC_bit_1_space   = NEC_unit * 3              // 1.687 ms
	NEC_repeat_period = NEC_unit * 192            // 108 ms

	// Silence after a full frame before the next one may start
	NEC_frame_pause = 40 * time.Millisecond
)

// SplitRawNECData breaks a raw NEC code into its address and command,
// reporting whether the inverted command byte matches.
func SplitRawNECData(data uint32) (valid bool, address uint16, command byte) {
	addrLow := byte(data)
	addrHigh := byte(data >> 8)
	command = byte(data >> 16)
	invCmd := byte(data >> 24)
	address = MakeNECAddress(addrLow, addrHigh)
	return command == ^invCmd, address, command
}

// MakeRawNECData assembles a raw NEC code, LSB first:
// { address (Low), address (High), cmd, ^cmd }
func MakeRawNECData(address uint16, command byte) uint32 {
	addrLow, addrHigh := SplitNECAddress(address)
	return (uint32(^command) << 24) | (uint32(command) << 16) | (uint32(addrHigh) << 8) | uint32(addrLow)
}

// SplitNECAddress splits an NEC address into low & high bytes
func SplitNECAddress(address uint16) (addrLow, addrHigh byte) {
	addrLow = byte(address)
	addrHigh = byte(address >> 8)
	if addrHigh == 0 {
		// NEC addresses in 8-bit range use inverse validation as addrHigh
		addrHigh = ^addrLow
	}
	return addrLow, addrHigh
}

// MakeNECAddress assembles an NEC address from low & high bytes
func MakeNECAddress(addrLow, addrHigh byte) uint16 {
	if addrHigh == ^addrLow {
		// Indistinguishable from an 8-bit address with inverse validation
		return uint16(addrLow)
	}
	return (uint16(addrHigh) << 8) | uint16(addrLow)
}

// NECWireAddress returns the 16-bit address as transmitted, with the
// inverse byte filled in for 8-bit addresses.
func NECWireAddress(address uint16) uint16 {
	addrLow, addrHigh := SplitNECAddress(address)
	return uint16(addrHigh)<<8 | uint16(addrLow)
}
