package irremote

import (
	"time"

	"github.com/neildavis/irblaster/irremote/irprotocol"
)

// State is the position of the multiframe sequencer.
type State uint8

const (
	Idle State = iota
	Encoding
	AutoRepeatPause
	RepeatFramePause
	Trailer
	Done
)

var stateNames = [...]string{"idle", "encoding", "auto-repeat-pause", "repeat-frame-pause", "trailer", "done"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// StepKind tells the caller of Next what to do.
type StepKind uint8

const (
	// StepFrame: a frame is ready, read it with Frame and send it.
	StepFrame StepKind = iota
	// StepPause: keep the carrier off for Step.Pause, then call Next.
	StepPause
	// StepTrailer: final silence of Step.Pause. The session has ended.
	StepTrailer
	// StepDone: nothing left to send.
	StepDone
)

func (k StepKind) String() string {
	switch k {
	case StepFrame:
		return "frame"
	case StepPause:
		return "pause"
	case StepTrailer:
		return "trailer"
	}
	return "done"
}

// Step is the result of one sequencer re-entry.
type Step struct {
	Kind  StepKind
	Pause time.Duration
}

// Next advances the session by one frame boundary. Call it once after
// Generate and then each time the previous frame or pause has elapsed.
// It never blocks. An error aborts the session.
func (e *Encoder) Next() (Step, error) {
	s := &e.s
	if !s.active {
		return Step{Kind: StepDone}, nil
	}
	if e.ready {
		return e.frameDone(), nil
	}

	switch s.state {
	case AutoRepeatPause:
		e.loadSubFrame()
	case RepeatFramePause:
		if s.stopped {
			return e.trailer(), nil
		}
		e.load()
		if s.protocol == irprotocol.FDC {
			e.data[2] |= 0x0F // repeat marker
		}
	}
	s.state = Encoding
	if err := e.encodeFrame(); err != nil {
		e.reset()
		return Step{Kind: StepDone}, err
	}
	return Step{Kind: StepFrame}, nil
}

// frameDone releases the frame that has just been sent and decides what
// follows it.
func (e *Encoder) frameDone() Step {
	s := &e.s
	d := s.desc
	if e.cfg.OnFrame != nil {
		e.cfg.OnFrame(e.frame())
	}
	e.release()

	s.autoCount++
	if d.InlineRepeats {
		if s.repeatCount > 0 {
			s.autoPause = d.RepeatPause
		}
		if e.repeatsOwed() {
			s.autoFrames++
			s.repeatCount++
		}
	}
	if s.autoCount < s.autoFrames {
		s.state = AutoRepeatPause
		return Step{Kind: StepPause, Pause: s.autoPause}
	}

	s.autoCount = 0
	if !d.InlineRepeats && e.repeatsOwed() {
		s.repeatCount++
		s.state = RepeatFramePause
		return Step{Kind: StepPause, Pause: d.RepeatPause}
	}
	return e.trailer()
}

func (e *Encoder) trailer() Step {
	pause := e.s.desc.RepeatPause
	e.s.state = Trailer
	e.reset()
	return Step{Kind: StepTrailer, Pause: pause}
}

func (e *Encoder) repeatsOwed() bool {
	s := &e.s
	if s.stopped {
		return false
	}
	return s.endless || s.repeatCount < s.repeats
}

// lastFrame reports whether the frame being built ends the session.
func (e *Encoder) lastFrame() bool {
	return e.s.autoCount+1 >= e.s.autoFrames && !e.repeatsOwed()
}
