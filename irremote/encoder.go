package irremote

import (
	"fmt"
	"time"

	"github.com/neildavis/irblaster/irremote/irprotocol"
)

// Config is used to configure an Encoder
type Config struct {
	// EdgeLimit caps the OTA elements of one frame. Zero or values above
	// MaxEdges mean MaxEdges. Odd values are rounded down.
	EdgeLimit int
	// Strict rejects commands whose frames exceed EdgeLimit with
	// ErrTruncated instead of truncating them.
	Strict bool
	// OnFrame is called once per frame, after the frame has been sent.
	OnFrame func(Frame)
}

// Frame is one OTA frame ready for transmission.
type Frame struct {
	Protocol  irprotocol.ID
	Frequency uint32 // carrier, Hz
	// Edges is only valid until the next call to Next.
	Edges     []Edge
	Truncated bool
	// Index counts frames within the session, starting at zero.
	Index int
}

// Duration returns the time taken to transmit f.
func (f Frame) Duration() time.Duration {
	var d time.Duration
	for _, e := range f.Edges {
		d += e.Duration()
	}
	return d
}

// Encoder turns commands into OTA frames. It owns a single transmission
// session at a time and never blocks. It is not safe for concurrent use.
type Encoder struct {
	cfg   Config
	limit int

	toggles toggles
	data    data

	edges     [MaxEdges]Edge
	n         int
	ready     bool
	truncated bool

	s session
}

// session is the state of the transmission in progress.
type session struct {
	active   bool
	state    State
	protocol irprotocol.ID
	desc     *irprotocol.Descriptor

	base      irprotocol.Layout // layout of the current command or repeat frame
	layout    irprotocol.Layout // layout of the frame being built
	extraBits int
	cursor    int
	hasStart  bool
	lastBit   byte

	repeats     int
	endless     bool
	repeatCount int
	stopped     bool

	autoFrames int
	autoCount  int
	autoPause  time.Duration

	frames int
}

// NewEncoder returns a new idle Encoder
func NewEncoder(cfg Config) *Encoder {
	limit := cfg.EdgeLimit
	if limit <= 0 || limit > MaxEdges {
		limit = MaxEdges
	}
	limit &^= 1
	if limit < 4 {
		limit = 4
	}
	return &Encoder{cfg: cfg, limit: limit}
}

// Generate accepts a new command. It fails with ErrBusy while a session is
// active, leaving all state untouched.
func (e *Encoder) Generate(cmd Command) error {
	if e.s.active {
		return ErrBusy
	}
	if err := cmd.Validate(); err != nil {
		return err
	}
	pack := packers[cmd.Protocol]

	var b data
	t := e.toggles
	p := pack(&b, cmd, &t)
	desc, err := irprotocol.Lookup(p.protocol)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedProtocol, p.protocol)
	}
	if e.cfg.Strict && desc.MaxEdges()+2*p.extraBits > e.limit {
		return fmt.Errorf("%w: %s needs %d edges, limit %d",
			ErrTruncated, p.protocol, desc.MaxEdges()+2*p.extraBits, e.limit)
	}

	repeats, endless := cmd.Flags.Repeats()
	e.data = b
	e.toggles = t
	e.release()
	e.s = session{
		active:    true,
		state:     Encoding,
		protocol:  p.protocol,
		desc:      desc,
		extraBits: p.extraBits,
		repeats:   repeats,
		endless:   endless,
	}
	e.load()
	return nil
}

// IsBusy reports whether a session is in progress.
func (e *Encoder) IsBusy() bool {
	return e.s.active
}

// Stop cancels any pending repeat frames. The frame in flight and the
// protocol's own auto-repetitions still complete.
func (e *Encoder) Stop() {
	if !e.s.active {
		return
	}
	e.s.stopped = true
	e.s.repeats = 0
	e.s.endless = false
}

// Abort ends the session at once, dropping the frame in flight and every
// frame still owed.
func (e *Encoder) Abort() {
	if e.s.active {
		e.reset()
	}
}

// State returns the sequencer state.
func (e *Encoder) State() State {
	return e.s.state
}

// Protocol returns the protocol of the current or last session.
func (e *Encoder) Protocol() irprotocol.ID {
	return e.s.protocol
}

// Frame returns the frame built by the last call to Next, if any.
func (e *Encoder) Frame() (Frame, bool) {
	if !e.ready {
		return Frame{}, false
	}
	return e.frame(), true
}

func (e *Encoder) frame() Frame {
	return Frame{
		Protocol:  e.s.protocol,
		Frequency: e.s.desc.Frequency,
		Edges:     e.edges[:e.n],
		Truncated: e.truncated,
		Index:     e.s.frames - 1,
	}
}

func (e *Encoder) release() {
	e.n = 0
	e.ready = false
	e.truncated = false
}

// reset ends the session, keeping the toggle bits.
func (e *Encoder) reset() {
	e.release()
	e.s.active = false
	e.s.state = Done
}

// load sets up the first frame of a command or of a repeat frame.
func (e *Encoder) load() {
	s := &e.s
	l := s.desc.First()
	if s.repeatCount > 0 {
		l = s.desc.RepeatLayout()
	}
	if l.Bits > 0 {
		l.Bits += s.extraBits
	}
	s.base = l
	s.autoFrames = l.Frames
	s.autoCount = 0
	s.autoPause = s.desc.AutoRepeatPause
	e.arm(l)
}

// loadSubFrame sets up the next auto-repetition frame.
func (e *Encoder) loadSubFrame() {
	s := &e.s
	d := s.desc
	l := s.base
	if d.SubFrame != nil && !(d.LastFrameFull && s.autoCount+1 >= s.autoFrames) {
		l = *d.SubFrame
	}
	e.arm(l)
}

func (e *Encoder) arm(l irprotocol.Layout) {
	s := &e.s
	s.layout = l
	s.cursor = l.Cursor
	s.hasStart = l.HasStart()
	s.lastBit = 0
}

// bit returns logical bit i, MSB of the first byte first.
func (e *Encoder) bit(i int) byte {
	if i < 0 || i>>3 >= len(e.data) {
		return 0
	}
	return e.data[i>>3] >> (7 - uint(i&7)) & 1
}
