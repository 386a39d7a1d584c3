package irprotocol

// Reverse mirrors the low n bits of v. Bits above n are dropped.
//
// Most protocols transmit fields LSB first while the logical buffer is sent
// MSB first, so fields are reversed before packing.
func Reverse(v uint16, n int) uint16 {
	var r uint16
	for i := 0; i < n; i++ {
		r <<= 1
		r |= v & 1
		v >>= 1
	}
	return r
}
