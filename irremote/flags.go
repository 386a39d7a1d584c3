package irremote

// Flags qualify a Command. The low nibble is the number of user repeat
// frames, RepeatEndless repeats until Stop. Kaseikyo reads its genre-2
// nibble from the high nibble.
type Flags uint8

const (
	RepeatMask    Flags = 0x0F
	MaxRepeats          = 14
	RepeatEndless Flags = 0x0F

	// FlagRawRepetition sends only an NEC repetition frame.
	FlagRawRepetition Flags = 0x10
)

// Repeat returns flags requesting n repeat frames. Values above MaxRepeats
// repeat until stopped.
func Repeat(n int) Flags {
	if n < 0 {
		n = 0
	}
	if n > MaxRepeats {
		return RepeatEndless
	}
	return Flags(n)
}

// Repeats returns the requested repeat frame count.
func (f Flags) Repeats() (n int, endless bool) {
	r := f & RepeatMask
	if r == RepeatEndless {
		return 0, true
	}
	return int(r), false
}

// Raw reports whether only a repetition frame was requested.
func (f Flags) Raw() bool {
	return f&FlagRawRepetition != 0
}

// Genre2 returns the Kaseikyo genre-2 nibble.
func (f Flags) Genre2() uint16 {
	return uint16(f&^RepeatMask) >> 4
}
