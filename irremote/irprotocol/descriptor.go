package irprotocol

import (
	"errors"
	"time"
)

// ErrUnknown is returned by Lookup for protocols without a descriptor.
var ErrUnknown = errors.New("irprotocol: no descriptor for protocol")

// Shape selects how logical bits are turned into marks and spaces.
type Shape uint8

const (
	// PulseDistance emits one (mark, space) pair per bit, the pair chosen
	// by the bit value. Pulse width coded protocols fit here too.
	PulseDistance Shape = iota
	// Biphase emits (mark, space) or (space, mark) per bit cell.
	Biphase
)

func (s Shape) String() string {
	if s == Biphase {
		return "biphase"
	}
	return "pulse-distance"
}

// Pair is a mark followed by a space.
type Pair struct {
	Mark  time.Duration
	Space time.Duration
}

// IsZero reports whether p is unused.
func (p Pair) IsZero() bool {
	return p.Mark == 0 && p.Space == 0
}

// Sync is a synchronisation bit inserted at a fixed bit index. It is not
// read from the logical buffer, every later bit shifts down by one.
type Sync struct {
	Index int
	Pair  Pair
}

// Layout describes the part of the logical buffer sent by one frame.
type Layout struct {
	Start  Pair // zero: no start bit
	Cursor int  // first logical bit
	Bits   int  // logical bit count, cursor included
	Frames int  // auto-repetition frames for this layout
}

// HasStart reports whether the layout begins with a start bit.
func (l Layout) HasStart() bool {
	return !l.Start.IsZero()
}

// Descriptor holds the timing and framing constants of one protocol.
type Descriptor struct {
	Protocol  ID
	Shape     Shape
	Frequency uint32 // carrier, Hz

	Start   Pair
	One     Pair // biphase protocols use One as the bit cell
	Zero    Pair
	Bits    int
	StopBit bool

	Frames          int
	AutoRepeatPause time.Duration
	RepeatPause     time.Duration

	// Repeat replaces the first frame layout on user repeat frames.
	Repeat *Layout
	// SubFrame is the layout of auto-repetition frames after the first.
	SubFrame *Layout
	// LastFrameFull sends the last auto-repetition with the first frame
	// layout instead of SubFrame.
	LastFrameFull bool
	// InlineRepeats folds user repeats into extra sub-frames separated by
	// RepeatPause instead of restarting the command.
	InlineRepeats bool

	Sync *Sync
	// Slots override the pair of fixed bit positions.
	Slots map[int]Pair
	// RepeatedBitSpace, when set, is the space used for a bit equal to the
	// previous data bit.
	RepeatedBitSpace time.Duration

	// Inverted biphase: a one bit is a space followed by a mark.
	Inverted bool
	// Cells widens biphase cells at fixed bit positions.
	Cells map[int]Pair
	// StartAt lists biphase bit positions replaced by the start pair.
	StartAt []int
}

// First returns the layout of the first frame of a command.
func (d *Descriptor) First() Layout {
	return Layout{Start: d.Start, Bits: d.Bits, Frames: d.Frames}
}

// RepeatLayout returns the layout of a user repeat frame.
func (d *Descriptor) RepeatLayout() Layout {
	if d.Repeat != nil {
		return *d.Repeat
	}
	return d.First()
}

// Edges returns the OTA element count of a frame sent with l.
func (d *Descriptor) Edges(l Layout) int {
	n := l.Bits - l.Cursor
	if l.HasStart() {
		n++
	}
	if d.StopBit && d.Shape == PulseDistance {
		n++
	}
	return 2 * n
}

// MaxEdges returns the largest OTA element count any frame of d needs.
func (d *Descriptor) MaxEdges() int {
	n := d.Edges(d.First())
	for _, l := range []*Layout{d.Repeat, d.SubFrame} {
		if l != nil && d.Edges(*l) > n {
			n = d.Edges(*l)
		}
	}
	return n
}

// Lookup returns the descriptor of id.
func Lookup(id ID) (*Descriptor, error) {
	d, ok := table[id]
	if !ok {
		return nil, ErrUnknown
	}
	return d, nil
}
