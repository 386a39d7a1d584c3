package irremote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	irp "github.com/neildavis/irblaster/irremote/irprotocol"
)

type fakeCarrier struct {
	freqs []uint32
	on    []bool
	err   error
}

func (f *fakeCarrier) SetFrequency(hz uint32) error {
	f.freqs = append(f.freqs, hz)
	return f.err
}

func (f *fakeCarrier) Enable(on bool) {
	f.on = append(f.on, on)
}

type fakeSink struct {
	mu     sync.Mutex
	frames []Frame
	emit   func(n int) error
	sent   chan Frame
}

func (s *fakeSink) Emit(ctx context.Context, f Frame) error {
	s.mu.Lock()
	f.Edges = append([]Edge(nil), f.Edges...)
	s.frames = append(s.frames, f)
	n := len(s.frames)
	s.mu.Unlock()
	if s.sent != nil {
		s.sent <- f
	}
	if s.emit != nil {
		return s.emit(n)
	}
	return nil
}

func newTestTransmitter(sink Sink) (*Transmitter, *[]time.Duration) {
	var slept []time.Duration
	tx := NewTransmitter(NewEncoder(Config{}), sink)
	tx.Sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return tx, &slept
}

func TestDriverTick(t *testing.T) {
	c := qt.New(t)

	enc := NewEncoder(Config{})
	carrier := &fakeCarrier{}
	d := NewDriver(enc, carrier)

	c.Assert(enc.Generate(NECCommand(0x04, 0x08)), qt.IsNil)
	var edges []time.Duration
	for i := 0; i < 1000; i++ {
		delay, err := d.Tick()
		c.Assert(err, qt.IsNil)
		if delay == 0 {
			break
		}
		edges = append(edges, delay)
	}
	c.Assert(edges, qt.HasLen, 68+1)
	c.Assert(edges[0], qt.Equals, 9*time.Millisecond)
	c.Assert(edges[68], qt.Equals, irp.NEC_frame_pause)
	c.Assert(carrier.freqs, qt.DeepEquals, []uint32{38_000})
	c.Assert(carrier.on[len(carrier.on)-1], qt.IsFalse)
	c.Assert(enc.IsBusy(), qt.IsFalse)

	// idle ticks keep the carrier off
	delay, err := d.Tick()
	c.Assert(err, qt.IsNil)
	c.Assert(delay, qt.Equals, time.Duration(0))
}

func TestDriverCarrierError(t *testing.T) {
	c := qt.New(t)

	enc := NewEncoder(Config{})
	carrier := &fakeCarrier{err: errors.New("no timer")}
	d := NewDriver(enc, carrier)
	c.Assert(enc.Generate(NECCommand(1, 2)), qt.IsNil)
	_, err := d.Tick()
	c.Assert(err, qt.ErrorMatches, "no timer")
	c.Assert(enc.IsBusy(), qt.IsFalse)
}

func TestTransmitterSend(t *testing.T) {
	c := qt.New(t)

	sink := &fakeSink{}
	tx, slept := newTestTransmitter(sink)
	cmd := NECCommand(0x04, 0x08)
	cmd.Flags = Repeat(2)
	c.Assert(tx.Send(context.Background(), cmd), qt.IsNil)

	c.Assert(sink.frames, qt.HasLen, 3)
	c.Assert(sink.frames[0].Edges, qt.HasLen, 68)
	c.Assert(sink.frames[1].Edges, qt.HasLen, 4)
	c.Assert(*slept, qt.DeepEquals, []time.Duration{irp.NEC_frame_pause, irp.NEC_frame_pause, irp.NEC_frame_pause})
	c.Assert(tx.IsBusy(), qt.IsFalse)
	c.Assert(tx.State(), qt.Equals, Done)
}

func TestTransmitterCancel(t *testing.T) {
	c := qt.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &fakeSink{emit: func(n int) error {
		if n == 3 {
			cancel()
		}
		return nil
	}}
	tx, _ := newTestTransmitter(sink)
	cmd := NECCommand(0x04, 0x08)
	cmd.Flags = RepeatEndless
	c.Assert(tx.Send(ctx, cmd), qt.IsNil)
	c.Assert(sink.frames, qt.HasLen, 3)
	c.Assert(tx.IsBusy(), qt.IsFalse)
}

func TestTransmitterCancelDuringPause(t *testing.T) {
	c := qt.New(t)

	type sleep struct {
		D         time.Duration
		Cancelled bool
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &fakeSink{}
	tx := NewTransmitter(NewEncoder(Config{}), sink)
	var slept []sleep
	tx.Sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, sleep{d, ctx.Err() != nil})
		if len(slept) == 1 {
			cancel()
			return ctx.Err()
		}
		return nil
	}

	c.Assert(tx.Send(ctx, Command{Protocol: irp.SIRCS, Command: 0x15, Flags: RepeatEndless}), qt.IsNil)

	// the auto-repetitions are owed and keep their 25ms spacing
	c.Assert(sink.frames, qt.HasLen, 3)
	c.Assert(slept, qt.HasLen, 4)
	c.Assert(slept[0], qt.Equals, sleep{25 * time.Millisecond, false})
	c.Assert(slept[1].Cancelled, qt.IsFalse)
	c.Assert(slept[1].D > 20*time.Millisecond, qt.IsTrue, qt.Commentf("rest of pause %v", slept[1].D))
	c.Assert(slept[1].D <= 25*time.Millisecond, qt.IsTrue)
	c.Assert(slept[2:], qt.DeepEquals, []sleep{
		{25 * time.Millisecond, false},
		{25 * time.Millisecond, false},
	})
	c.Assert(tx.IsBusy(), qt.IsFalse)
}

func TestTransmitterSinkError(t *testing.T) {
	c := qt.New(t)

	sink := &fakeSink{emit: func(int) error { return errors.New("port closed") }}
	tx, _ := newTestTransmitter(sink)
	err := tx.Send(context.Background(), Command{Protocol: irp.Roomba, Command: 1})
	c.Assert(err, qt.ErrorMatches, "port closed")
	c.Assert(sink.frames, qt.HasLen, 1)
	c.Assert(tx.IsBusy(), qt.IsFalse)
}

func TestTransmitterRun(t *testing.T) {
	c := qt.New(t)

	sink := &fakeSink{sent: make(chan Frame, 8)}
	tx, _ := newTestTransmitter(sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- tx.Run(ctx)
	}()

	c.Assert(tx.Start(Command{Protocol: irp.RC5, Address: 5, Command: 0x35}), qt.IsNil)
	select {
	case f := <-sink.sent:
		c.Assert(f.Protocol, qt.Equals, irp.RC5)
		c.Assert(f.Edges, qt.HasLen, 28)
	case <-time.After(5 * time.Second):
		c.Fatalf("no frame sent")
	}
	cancel()
	c.Assert(<-done, qt.Equals, context.Canceled)
}

func TestCarrierSink(t *testing.T) {
	c := qt.New(t)

	carrier := &fakeCarrier{}
	var slept time.Duration
	sink := &CarrierSink{Carrier: carrier, Sleep: func(d time.Duration) { slept += d }}
	f := Frame{
		Frequency: 36_000,
		Edges:     []Edge{MarkEdge(889 * time.Microsecond), SpaceEdge(889 * time.Microsecond)},
	}
	c.Assert(sink.Emit(context.Background(), f), qt.IsNil)
	c.Assert(sink.Emit(context.Background(), f), qt.IsNil)
	c.Assert(carrier.freqs, qt.DeepEquals, []uint32{36_000})
	c.Assert(carrier.on, qt.DeepEquals, []bool{true, false, false, true, false, false})
	c.Assert(slept, qt.Equals, 2*f.Duration())
}
