package irremote

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/neildavis/irblaster/irremote/irprotocol"
)

// Sink transmits whole frames, returning once the frame has been sent.
type Sink interface {
	Emit(ctx context.Context, f Frame) error
}

// Transmitter drives an Encoder on the host, sending frames to a Sink and
// sleeping through pauses. It is safe for concurrent use.
type Transmitter struct {
	// Sleep waits between frames. It defaults to a context aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex // guards enc
	enc  *Encoder
	tx   sync.Mutex // held while draining a session
	sink Sink
	wake chan struct{}
}

// NewTransmitter returns a Transmitter sending the frames of enc to sink
func NewTransmitter(enc *Encoder, sink Sink) *Transmitter {
	return &Transmitter{
		Sleep: sleepContext,
		enc:   enc,
		sink:  sink,
		wake:  make(chan struct{}, 1),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start accepts cmd and hands it to Run. It returns ErrBusy while a
// previous command is still being sent.
func (t *Transmitter) Start(cmd Command) error {
	t.mu.Lock()
	err := t.enc.Generate(cmd)
	t.mu.Unlock()
	if err != nil {
		return err
	}
	select {
	case t.wake <- struct{}{}:
	default:
	}
	return nil
}

// Send transmits cmd and waits until its session is over. Cancelling ctx
// stops repeat frames; frames already owed by the protocol still go out.
func (t *Transmitter) Send(ctx context.Context, cmd Command) error {
	t.mu.Lock()
	err := t.enc.Generate(cmd)
	t.mu.Unlock()
	if err != nil {
		return err
	}
	return t.drain(ctx)
}

// Run sends the commands accepted by Start until ctx is done.
func (t *Transmitter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.wake:
			if err := t.drain(ctx); err != nil && ctx.Err() == nil {
				log.Println("irremote: transmit:", err)
			}
		}
	}
}

// Stop cancels pending repeat frames of the current session.
func (t *Transmitter) Stop() {
	t.mu.Lock()
	t.enc.Stop()
	t.mu.Unlock()
}

// IsBusy reports whether a session is in progress.
func (t *Transmitter) IsBusy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.IsBusy()
}

// State returns the sequencer state.
func (t *Transmitter) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.State()
}

// Protocol returns the protocol of the current or last session.
func (t *Transmitter) Protocol() irprotocol.ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.Protocol()
}

func (t *Transmitter) drain(ctx context.Context) error {
	t.tx.Lock()
	defer t.tx.Unlock()

	stopped := false
	for {
		if !stopped && ctx.Err() != nil {
			// let owed frames finish, without the cancelled context
			t.Stop()
			ctx = context.WithoutCancel(ctx)
			stopped = true
		}

		t.mu.Lock()
		step, err := t.enc.Next()
		f, _ := t.enc.Frame()
		t.mu.Unlock()
		if err != nil {
			return err
		}

		switch step.Kind {
		case StepFrame:
			if err := t.sink.Emit(ctx, f); err != nil {
				t.mu.Lock()
				t.enc.Abort()
				t.mu.Unlock()
				return err
			}
		case StepPause, StepTrailer:
			var cut bool
			ctx, cut = t.pause(ctx, step.Pause)
			stopped = stopped || cut
			if step.Kind == StepTrailer {
				return nil
			}
		default:
			return nil
		}
	}
}

// pause waits d. When ctx is cancelled meanwhile, the session is stopped
// and the rest of d is waited out on the returned uncancelled context.
func (t *Transmitter) pause(ctx context.Context, d time.Duration) (context.Context, bool) {
	t0 := time.Now()
	if err := t.Sleep(ctx, d); err == nil || ctx.Err() == nil {
		return ctx, false
	}
	t.Stop()
	ctx = context.WithoutCancel(ctx)
	if rest := d - time.Since(t0); rest > 0 {
		_ = t.Sleep(ctx, rest)
	}
	return ctx, true
}

// CarrierSink plays frames on a Carrier, sleeping through every edge.
type CarrierSink struct {
	Carrier Carrier
	// Sleep defaults to time.Sleep
	Sleep func(time.Duration)

	freq uint32
}

// Emit sends f edge by edge and leaves the carrier off.
func (c *CarrierSink) Emit(ctx context.Context, f Frame) error {
	sleep := c.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	if f.Frequency != c.freq {
		if err := c.Carrier.SetFrequency(f.Frequency); err != nil {
			return err
		}
		c.freq = f.Frequency
	}
	for _, e := range f.Edges {
		c.Carrier.Enable(e.IsMark())
		sleep(e.Duration())
	}
	c.Carrier.Enable(false)
	return nil
}
