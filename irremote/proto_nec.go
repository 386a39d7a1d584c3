package irremote

import (
	irp "github.com/neildavis/irblaster/irremote/irprotocol"
)

// NEC protocol references
// https://www.sbprojects.net/knowledge/ir/nec.php
// https://techdocs.altium.com/display/FPGA/NEC+Infrared+Transmission+Protocol

// NECCommand returns the Command sending command to an NEC device.
// Addresses in the 8-bit range are sent with their inverse as high byte.
func NECCommand(address uint16, command byte) Command {
	return Command{
		Protocol: irp.NEC,
		Address:  irp.NECWireAddress(address),
		Command:  uint16(command),
	}
}

// NECRawCommand converts a raw 32-bit NEC code, LSB first
// { address (Low), address (High), cmd, ^cmd }, into a Command.
// It reports false if the command byte fails its inverse check.
func NECRawCommand(data uint32) (Command, bool) {
	valid, address, cmd := irp.SplitRawNECData(data)
	if !valid {
		return Command{}, false
	}
	return NECCommand(address, cmd), true
}

// NECRepeatCommand returns the Command sending a lone NEC repetition frame,
// which a receiver reads as a held key.
func NECRepeatCommand() Command {
	return Command{Protocol: irp.NEC, Flags: FlagRawRepetition}
}
