package irremote

import "time"

// Carrier is the modulated IR output
type Carrier interface {
	// SetFrequency programs the carrier frequency in Hz
	SetFrequency(hz uint32) error
	// Enable turns the modulated output on or off
	Enable(on bool)
}

// Driver feeds frames to a Carrier from a periodic timer callback. Each
// Tick emits one edge and returns the delay until the next Tick.
type Driver struct {
	enc     *Encoder
	carrier Carrier
	freq    uint32

	frame Frame
	pos   int
}

// NewDriver returns a Driver for the sessions of enc
func NewDriver(enc *Encoder, carrier Carrier) *Driver {
	return &Driver{enc: enc, carrier: carrier}
}

// Tick emits the next edge. When the current frame is exhausted it asks the
// encoder for the next frame or pause. A zero delay means the session is
// over and the carrier is off.
func (d *Driver) Tick() (time.Duration, error) {
	if d.pos < len(d.frame.Edges) {
		e := d.frame.Edges[d.pos]
		d.pos++
		d.carrier.Enable(e.IsMark())
		return e.Duration(), nil
	}

	d.carrier.Enable(false)
	d.frame, d.pos = Frame{}, 0
	for {
		step, err := d.enc.Next()
		if err != nil {
			return 0, err
		}
		switch step.Kind {
		case StepFrame:
			f, _ := d.enc.Frame()
			if f.Frequency != d.freq {
				if err := d.carrier.SetFrequency(f.Frequency); err != nil {
					d.enc.Abort()
					return 0, err
				}
				d.freq = f.Frequency
			}
			d.frame = f
			return d.Tick()
		case StepPause, StepTrailer:
			if step.Pause > 0 {
				return step.Pause, nil
			}
		default:
			return 0, nil
		}
	}
}
