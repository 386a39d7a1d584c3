package irremote // import "github.com/neildavis/irblaster/irremote"

import (
	"fmt"
	"time"
)

// Edge is one element of an OTA frame: the most significant bit tags a mark
// (carrier on), the low 15 bits hold the duration in microseconds.
type Edge uint16

const (
	markBit      = 0x8000
	durationMask = 0x7FFF

	// MaxEdgeDuration is the longest interval a single Edge can carry.
	MaxEdgeDuration = durationMask * time.Microsecond

	// EndOfFrame is the space closing the last frame of a session.
	EndOfFrame Edge = durationMask
)

// MaxEdges is the capacity of the OTA buffer, enough for the longest
// protocol frame (Mitsubishi Heavy, 88 data bits plus start and stop).
const MaxEdges = 180

// MarkEdge returns a carrier-on interval of d, clamped to MaxEdgeDuration.
func MarkEdge(d time.Duration) Edge {
	return markBit | edgeMicros(d)
}

// SpaceEdge returns a carrier-off interval of d, clamped to MaxEdgeDuration.
func SpaceEdge(d time.Duration) Edge {
	return edgeMicros(d)
}

func edgeMicros(d time.Duration) Edge {
	v := (d + time.Microsecond/2) / time.Microsecond
	if v > durationMask {
		v = durationMask
	}
	if v < 0 {
		v = 0
	}
	return Edge(v)
}

// IsMark reports whether e turns the carrier on.
func (e Edge) IsMark() bool {
	return e&markBit != 0
}

// Duration returns the length of e.
func (e Edge) Duration() time.Duration {
	return time.Duration(e&durationMask) * time.Microsecond
}

func (e Edge) String() string {
	if e.IsMark() {
		return fmt.Sprintf("+%d", e&durationMask)
	}
	return fmt.Sprintf("-%d", e&durationMask)
}
