package irremote

import (
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	irp "github.com/neildavis/irblaster/irremote/irprotocol"
)

// run drives the session to its end, collecting copies of every frame.
func run(c *qt.C, e *Encoder) (frames []Frame, steps []Step) {
	for i := 0; i < 1000; i++ {
		step, err := e.Next()
		c.Assert(err, qt.IsNil)
		steps = append(steps, step)
		switch step.Kind {
		case StepFrame:
			f, ok := e.Frame()
			c.Assert(ok, qt.IsTrue)
			f.Edges = append([]Edge(nil), f.Edges...)
			frames = append(frames, f)
		case StepTrailer, StepDone:
			return frames, steps
		}
	}
	c.Fatalf("session did not end")
	return nil, nil
}

func pauses(steps []Step) (d []time.Duration) {
	for _, s := range steps {
		if s.Kind == StepPause {
			d = append(d, s.Pause)
		}
	}
	return d
}

// necFrame builds the expected edges of a full NEC frame, bytes sent LSB first.
func necFrame(last bool, bytes ...byte) []Edge {
	edges := []Edge{MarkEdge(irp.NEC_lead_mark), SpaceEdge(irp.NEC_lead_space)}
	for _, b := range bytes {
		for i := 0; i < 8; i++ {
			space := irp.NEC_bit_0_space
			if b&(1<<i) != 0 {
				space = irp.NEC_bit_1_space
			}
			edges = append(edges, MarkEdge(irp.NEC_bit_mark), SpaceEdge(space))
		}
	}
	stop := SpaceEdge(irp.NEC_bit_0_space)
	if last {
		stop = EndOfFrame
	}
	return append(edges, MarkEdge(irp.NEC_bit_mark), stop)
}

func TestNECEndToEnd(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.IsBusy(), qt.IsFalse)
	c.Assert(e.Generate(NECCommand(0x04, 0x08)), qt.IsNil)
	c.Assert(e.IsBusy(), qt.IsTrue)
	c.Assert(e.State(), qt.Equals, Encoding)

	frames, steps := run(c, e)
	c.Assert(frames, qt.HasLen, 1)
	c.Assert(steps, qt.HasLen, 2)
	c.Assert(steps[1], qt.Equals, Step{Kind: StepTrailer, Pause: irp.NEC_frame_pause})

	f := frames[0]
	c.Assert(f.Protocol, qt.Equals, irp.NEC)
	c.Assert(f.Frequency, qt.Equals, uint32(38_000))
	c.Assert(f.Truncated, qt.IsFalse)
	c.Assert(f.Index, qt.Equals, 0)
	c.Assert(f.Edges, qt.HasLen, 68)
	c.Assert(f.Edges, qt.DeepEquals, necFrame(true, 0x04, 0xFB, 0x08, 0xF7))

	c.Assert(e.IsBusy(), qt.IsFalse)
	c.Assert(e.State(), qt.Equals, Done)
	step, err := e.Next()
	c.Assert(err, qt.IsNil)
	c.Assert(step.Kind, qt.Equals, StepDone)
	_, ok := e.Frame()
	c.Assert(ok, qt.IsFalse)
}

func TestGenerateBusy(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.RC5, Address: 5, Command: 0x35, Flags: Repeat(2)}), qt.IsNil)
	_, err := e.Next()
	c.Assert(err, qt.IsNil)

	session, buf, tog := e.s, e.data, e.toggles
	edges, n, ready := e.edges, e.n, e.ready

	for _, cmd := range []Command{
		NECCommand(1, 2),
		{Protocol: irp.RC5, Address: 5, Command: 0x35},
		{Protocol: irp.ID(200)},
	} {
		c.Assert(e.Generate(cmd), qt.Equals, ErrBusy)
	}
	c.Assert(e.s, qt.Equals, session)
	c.Assert(e.data, qt.Equals, buf)
	c.Assert(e.toggles, qt.Equals, tog)
	c.Assert(e.edges, qt.Equals, edges)
	c.Assert(e.n, qt.Equals, n)
	c.Assert(e.ready, qt.Equals, ready)
}

func TestGenerateUnsupported(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	err := e.Generate(Command{Protocol: irp.ID(200)})
	c.Assert(err, qt.ErrorIs, ErrUnsupportedProtocol)
	c.Assert(e.IsBusy(), qt.IsFalse)
}

func TestEdgeLimit(t *testing.T) {
	c := qt.New(t)

	const limit = 100
	truncated := map[irp.ID]bool{
		irp.Panasonic:  true,
		irp.MitsuHeavy: true,
		irp.ACP24:      true,
	}
	for _, id := range irp.IDs() {
		c.Run(id.String(), func(c *qt.C) {
			e := NewEncoder(Config{EdgeLimit: limit})
			c.Assert(e.Generate(Command{Protocol: id, Address: 0x12, Command: 0x34}), qt.IsNil)
			frames, _ := run(c, e)
			c.Assert(len(frames) > 0, qt.IsTrue)
			for _, f := range frames {
				c.Assert(len(f.Edges) <= limit, qt.IsTrue)
				c.Assert(len(f.Edges)%2, qt.Equals, 0)
				c.Assert(f.Truncated, qt.Equals, truncated[id])
				if f.Truncated {
					c.Assert(f.Edges, qt.HasLen, limit)
				}
			}
			// a final space carries the end of frame marker
			last := frames[len(frames)-1].Edges
			if edge := last[len(last)-1]; !edge.IsMark() {
				c.Assert(edge, qt.Equals, EndOfFrame)
			}
		})
	}
}

func TestEdgeLimitStrict(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{EdgeLimit: 100, Strict: true})
	err := e.Generate(Command{Protocol: irp.Panasonic, Address: 1, Command: 2})
	c.Assert(err, qt.ErrorIs, ErrTruncated)
	c.Assert(e.IsBusy(), qt.IsFalse)

	c.Assert(e.Generate(NECCommand(1, 2)), qt.IsNil)
	frames, _ := run(c, e)
	c.Assert(frames[0].Edges, qt.HasLen, 68)
}

func TestEdgeLimitRounding(t *testing.T) {
	c := qt.New(t)

	c.Assert(NewEncoder(Config{}).limit, qt.Equals, MaxEdges)
	c.Assert(NewEncoder(Config{EdgeLimit: 1000}).limit, qt.Equals, MaxEdges)
	c.Assert(NewEncoder(Config{EdgeLimit: 67}).limit, qt.Equals, 66)
	c.Assert(NewEncoder(Config{EdgeLimit: 1}).limit, qt.Equals, 4)
}

func TestTogglePersistence(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	cmd := Command{Protocol: irp.RC5, Address: 0x05, Command: 0x35}

	var bufs []data
	for i := 0; i < 3; i++ {
		c.Assert(e.Generate(cmd), qt.IsNil)
		bufs = append(bufs, e.data)
		run(c, e)
	}
	c.Assert(bufs[0][0], qt.Equals, byte(0xCB))
	c.Assert(bufs[0][1], qt.Equals, byte(0xA8))
	c.Assert(bufs[0][0]^bufs[1][0], qt.Equals, byte(0x40))
	c.Assert(bufs[0][1:], qt.DeepEquals, bufs[1][1:])
	c.Assert(bufs[2], qt.Equals, bufs[0])
}

func TestToggleSharedByRC6(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.RC6}), qt.IsNil)
	c.Assert(e.data[0]&0x08, qt.Equals, byte(0x08))
	run(c, e)
	c.Assert(e.Generate(Command{Protocol: irp.RC6A}), qt.IsNil)
	c.Assert(e.data[0]&0x08, qt.Equals, byte(0))
}

func TestFrameCount(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name    string
		cmd     Command
		frames  int
		pauses  []time.Duration
		trailer time.Duration
	}{{
		name:    "denon",
		cmd:     Command{Protocol: irp.Denon, Address: 3, Command: 0x1C, Flags: Repeat(2)},
		frames:  6,
		pauses:  []time.Duration{65 * time.Millisecond, 65 * time.Millisecond, 65 * time.Millisecond, 65 * time.Millisecond, 65 * time.Millisecond},
		trailer: 65 * time.Millisecond,
	}, {
		name:    "roomba",
		cmd:     Command{Protocol: irp.Roomba, Command: 0x88},
		frames:  8,
		trailer: 18 * time.Millisecond,
	}, {
		name:    "sircs",
		cmd:     Command{Protocol: irp.SIRCS, Command: 0x15, Flags: Repeat(1)},
		frames:  4,
		trailer: 25 * time.Millisecond,
	}, {
		name:    "grundig",
		cmd:     Command{Protocol: irp.Grundig, Command: 0x21, Flags: Repeat(1)},
		frames:  3,
		pauses:  []time.Duration{20 * time.Millisecond, 117 * time.Millisecond},
		trailer: 117 * time.Millisecond,
	}, {
		name:    "nec",
		cmd:     Command{Protocol: irp.NEC, Command: 0x21, Flags: Repeat(3)},
		frames:  4,
		pauses:  []time.Duration{40 * time.Millisecond, 40 * time.Millisecond, 40 * time.Millisecond},
		trailer: 40 * time.Millisecond,
	}}
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			e := NewEncoder(Config{})
			c.Assert(e.Generate(test.cmd), qt.IsNil)
			frames, steps := run(c, e)
			c.Assert(frames, qt.HasLen, test.frames)
			if test.pauses != nil {
				c.Assert(pauses(steps), qt.DeepEquals, test.pauses)
			} else {
				c.Assert(pauses(steps), qt.HasLen, test.frames-1)
			}
			c.Assert(steps[len(steps)-1], qt.Equals, Step{Kind: StepTrailer, Pause: test.trailer})
			for i, f := range frames {
				c.Assert(f.Index, qt.Equals, i)
				last := f.Edges[len(f.Edges)-1]
				if i < len(frames)-1 {
					c.Assert(last, qt.Not(qt.Equals), EndOfFrame)
				} else if !last.IsMark() {
					c.Assert(last, qt.Equals, EndOfFrame)
				}
			}
			c.Assert(e.IsBusy(), qt.IsFalse)
		})
	}
}

func TestDenonComplementFrame(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.Denon, Address: 0x03, Command: 0x1C}), qt.IsNil)
	frames, _ := run(c, e)
	c.Assert(frames, qt.HasLen, 2)
	c.Assert(frames[0].Edges, qt.HasLen, 32)
	c.Assert(frames[1].Edges, qt.HasLen, 32)
	// address bits repeat, command bits are inverted
	for i := 0; i < 15; i++ {
		a, b := frames[0].Edges[2*i+1], frames[1].Edges[2*i+1]
		c.Assert(a == b, qt.Equals, i < 5, qt.Commentf("bit %d", i))
	}
}

func TestNokiaLastFrameFull(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.Nokia, Address: 0x12, Command: 0x34}), qt.IsNil)
	frames, _ := run(c, e)
	c.Assert(frames, qt.HasLen, 3)
	start := []Edge{MarkEdge(528 * time.Microsecond), SpaceEdge(2628 * time.Microsecond)}
	for _, f := range frames {
		c.Assert(f.Edges, qt.HasLen, 34)
		c.Assert(f.Edges[:2], qt.DeepEquals, start)
	}
	// the stop frame repeats the start frame
	c.Assert(frames[2].Edges[:33], qt.DeepEquals, frames[0].Edges[:33])
	c.Assert(frames[0].Edges[33], qt.Equals, SpaceEdge(528*time.Microsecond))
	c.Assert(frames[2].Edges[33], qt.Equals, EndOfFrame)
	c.Assert(frames[1].Edges, qt.Not(qt.DeepEquals), frames[0].Edges)
}

func TestCancelEndless(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.NEC, Address: 0x04, Command: 0x08, Flags: RepeatEndless}), qt.IsNil)

	repeat := []Edge{
		MarkEdge(irp.NEC_lead_mark), SpaceEdge(irp.NEC_repeat_space),
		MarkEdge(irp.NEC_bit_mark), SpaceEdge(irp.NEC_bit_0_space),
	}
	for i := 0; i < 5; i++ {
		step, err := e.Next()
		c.Assert(err, qt.IsNil)
		c.Assert(step.Kind, qt.Equals, StepFrame)
		f, _ := e.Frame()
		if i == 0 {
			c.Assert(f.Edges, qt.HasLen, 68)
		} else {
			c.Assert(f.Edges, qt.DeepEquals, repeat)
		}
		step, err = e.Next()
		c.Assert(err, qt.IsNil)
		c.Assert(step, qt.Equals, Step{Kind: StepPause, Pause: irp.NEC_frame_pause})
		c.Assert(e.State(), qt.Equals, RepeatFramePause)
	}

	// a repeat frame is in flight when Stop arrives
	step, err := e.Next()
	c.Assert(err, qt.IsNil)
	c.Assert(step.Kind, qt.Equals, StepFrame)
	e.Stop()
	c.Assert(e.IsBusy(), qt.IsTrue)

	step, err = e.Next()
	c.Assert(err, qt.IsNil)
	c.Assert(step.Kind, qt.Equals, StepTrailer)
	c.Assert(e.IsBusy(), qt.IsFalse)
}

func TestStopDuringPause(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.Samsung32, Command: 0x08, Flags: RepeatEndless}), qt.IsNil)
	step, _ := e.Next()
	c.Assert(step.Kind, qt.Equals, StepFrame)
	step, _ = e.Next()
	c.Assert(step.Kind, qt.Equals, StepPause)

	e.Stop()
	step, err := e.Next()
	c.Assert(err, qt.IsNil)
	c.Assert(step.Kind, qt.Equals, StepTrailer)
	c.Assert(e.IsBusy(), qt.IsFalse)

	// Stop and Abort are no-ops without a session
	e.Stop()
	e.Abort()
	c.Assert(e.State(), qt.Equals, Done)
}

func TestAbort(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.Roomba, Command: 1}), qt.IsNil)
	_, err := e.Next()
	c.Assert(err, qt.IsNil)
	e.Abort()
	c.Assert(e.IsBusy(), qt.IsFalse)
	_, ok := e.Frame()
	c.Assert(ok, qt.IsFalse)
	c.Assert(e.Generate(NECCommand(1, 1)), qt.IsNil)
}

func TestNECRepetition(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(NECRepeatCommand()), qt.IsNil)
	c.Assert(e.Protocol(), qt.Equals, irp.NECRepetition)
	frames, _ := run(c, e)
	c.Assert(frames, qt.HasLen, 1)
	c.Assert(frames[0].Edges, qt.DeepEquals, []Edge{
		MarkEdge(irp.NEC_lead_mark), SpaceEdge(irp.NEC_repeat_space),
		MarkEdge(irp.NEC_bit_mark), EndOfFrame,
	})
}

func TestAppleSentAsNEC(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.Apple, Address: 0x20, Command: 0x05}), qt.IsNil)
	c.Assert(e.Protocol(), qt.Equals, irp.NEC)
	frames, _ := run(c, e)
	c.Assert(frames[0].Protocol, qt.Equals, irp.NEC)
	c.Assert(frames[0].Edges, qt.HasLen, 68)
}

func TestSIRCSExtraBits(t *testing.T) {
	c := qt.New(t)

	start := irp.Pair{Mark: 2400 * us, Space: 600 * us}
	one := irp.Pair{Mark: 1200 * us, Space: 600 * us}
	zero := irp.Pair{Mark: 600 * us, Space: 600 * us}
	for _, test := range []struct {
		about   string
		address uint16
		bits    string
	}{{
		about: "12 bits",
		bits:  "100000000000",
	}, {
		about:   "15 bits",
		address: 3 << 8,
		bits:    "100000000000000",
	}, {
		about:   "20 bits",
		address: 8<<8 | 0x01,
		bits:    "10000000000000010000",
	}} {
		c.Run(test.about, func(c *qt.C) {
			e := NewEncoder(Config{})
			c.Assert(e.Generate(Command{Protocol: irp.SIRCS, Address: test.address, Command: 1}), qt.IsNil)
			frames, _ := run(c, e)
			c.Assert(frames, qt.HasLen, 3)
			want := append(markSpace(start), pairs(one, zero, test.bits)...)
			c.Assert(frames[0].Edges, qt.DeepEquals, want)
			c.Assert(frames[1].Edges, qt.DeepEquals, want)
		})
	}

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.SIRCS, Address: 8<<8 | 0x1A, Command: 0x15}), qt.IsNil)
	frames, _ := run(c, e)
	for _, f := range frames {
		c.Assert(f.Edges, qt.HasLen, 2*(1+20))
	}
}

func TestSIRCSExtraBitsOutOfRange(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	for _, address := range []uint16{9 << 8, 77 << 8, 0xFF00} {
		err := e.Generate(Command{Protocol: irp.SIRCS, Address: address, Command: 1})
		c.Assert(err, qt.ErrorIs, ErrInvalidCommand)
		c.Assert(e.IsBusy(), qt.IsFalse)
		step, err := e.Next()
		c.Assert(err, qt.IsNil)
		c.Assert(step.Kind, qt.Equals, StepDone)
	}
	c.Assert(e.bit(-1), qt.Equals, byte(0))
	c.Assert(e.bit(dataLen*8), qt.Equals, byte(0))
}

func TestFDCRepeatMarker(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.FDC, Address: 1, Command: 0x23, Flags: Repeat(1)}), qt.IsNil)
	c.Assert(e.data[2], qt.Equals, byte(0))
	frames, _ := run(c, e)
	c.Assert(frames, qt.HasLen, 2)
	c.Assert(e.data[2], qt.Equals, byte(0x0F))
	c.Assert(frames[0].Edges, qt.Not(qt.DeepEquals), frames[1].Edges)
}

func TestOnFrame(t *testing.T) {
	c := qt.New(t)

	var got []int
	e := NewEncoder(Config{OnFrame: func(f Frame) {
		got = append(got, len(f.Edges))
	}})
	c.Assert(e.Generate(Command{Protocol: irp.NEC, Command: 1, Flags: Repeat(1)}), qt.IsNil)
	run(c, e)
	c.Assert(got, qt.DeepEquals, []int{68, 4})
}

const us = time.Microsecond

func markSpace(p irp.Pair) []Edge {
	return []Edge{MarkEdge(p.Mark), SpaceEdge(p.Space)}
}

// pairs expands a string of bits into pulse distance pairs.
func pairs(one, zero irp.Pair, bits string) []Edge {
	var edges []Edge
	for _, b := range bits {
		if b == '1' {
			edges = append(edges, markSpace(one)...)
		} else {
			edges = append(edges, markSpace(zero)...)
		}
	}
	return edges
}

// cells expands space separated "MS" and "SM" tokens into biphase halves of p.
func cells(p irp.Pair, tokens string) []Edge {
	var edges []Edge
	for _, tok := range strings.Fields(tokens) {
		if tok == "MS" {
			edges = append(edges, MarkEdge(p.Mark), SpaceEdge(p.Space))
		} else {
			edges = append(edges, SpaceEdge(p.Space), MarkEdge(p.Mark))
		}
	}
	return edges
}

func concat(parts ...[]Edge) []Edge {
	var edges []Edge
	for _, p := range parts {
		edges = append(edges, p...)
	}
	return edges
}

func TestFrameEdges(t *testing.T) {
	rc5 := irp.Pair{Mark: 889 * us, Space: 889 * us}
	rc6 := irp.Pair{Mark: 444 * us, Space: 444 * us}
	samsungOne := irp.Pair{Mark: 550 * us, Space: 1650 * us}
	samsungZero := irp.Pair{Mark: 550 * us, Space: 550 * us}
	boOne := irp.Pair{Mark: 200 * us, Space: 9375 * us}
	boZero := irp.Pair{Mark: 200 * us, Space: 3125 * us}
	boRepeated := irp.Pair{Mark: 200 * us, Space: 6250 * us}

	for _, test := range []struct {
		about string
		cmd   Command
		want  []Edge
	}{{
		// start bit, then 1 toggle 00101 110101, a one is space then mark
		about: "rc5",
		cmd:   Command{Protocol: irp.RC5, Address: 5, Command: 0x35},
		want:  cells(rc5, "SM SM SM MS MS SM MS SM SM SM MS SM MS SM"),
	}, {
		// leader, start 1, mode 000, double width toggle, address 4, command 8
		about: "rc6",
		cmd:   Command{Protocol: irp.RC6, Address: 4, Command: 8},
		want: concat(
			markSpace(irp.Pair{Mark: 2666 * us, Space: 889 * us}),
			cells(rc6, "MS SM SM SM"),
			cells(irp.Pair{Mark: 889 * us, Space: 889 * us}, "MS"),
			cells(rc6, "SM SM SM SM SM MS SM SM SM SM SM SM MS SM SM SM"),
		),
	}, {
		// 16 address bits, sync, 20 command bits, stop
		about: "samsung",
		cmd:   Command{Protocol: irp.Samsung, Address: 1, Command: 2},
		want: concat(
			markSpace(irp.Pair{Mark: 4500 * us, Space: 4500 * us}),
			pairs(samsungOne, samsungZero, "1000000000000000"),
			markSpace(irp.Pair{Mark: 550 * us, Space: 4500 * us}),
			pairs(samsungOne, samsungZero, "00000100000010111111"),
			[]Edge{MarkEdge(550 * us), EndOfFrame},
		),
	}, {
		// four start bits, then a repeated bit uses the R space, trailer bit, stop
		about: "bang & olufsen",
		cmd:   Command{Protocol: irp.BangOlufsen, Command: 0x8001},
		want: concat(
			markSpace(irp.Pair{Mark: 200 * us, Space: 3125 * us}),
			markSpace(irp.Pair{Mark: 200 * us, Space: 3125 * us}),
			markSpace(irp.Pair{Mark: 200 * us, Space: 15625 * us}),
			markSpace(irp.Pair{Mark: 200 * us, Space: 3125 * us}),
			markSpace(boOne),
			markSpace(boZero),
			pairs(boRepeated, boRepeated, "0000000000000"),
			markSpace(boOne),
			markSpace(irp.Pair{Mark: 200 * us, Space: 12500 * us}),
			[]Edge{MarkEdge(200 * us), EndOfFrame},
		),
	}} {
		t.Run(test.about, func(t *testing.T) {
			c := qt.New(t)
			e := NewEncoder(Config{})
			c.Assert(e.Generate(test.cmd), qt.IsNil)
			frames, _ := run(c, e)
			c.Assert(frames, qt.HasLen, 1)
			c.Assert(frames[0].Edges, qt.DeepEquals, test.want)
		})
	}
}

func TestRC5ToggleCell(t *testing.T) {
	c := qt.New(t)

	e := NewEncoder(Config{})
	cmd := Command{Protocol: irp.RC5, Address: 5, Command: 0x35}
	c.Assert(e.Generate(cmd), qt.IsNil)
	first, _ := run(c, e)
	c.Assert(e.Generate(cmd), qt.IsNil)
	second, _ := run(c, e)

	// only the toggle cell changes, from a one to a zero
	c.Assert(first[0].Edges[4:6], qt.DeepEquals, cells(irp.Pair{Mark: 889 * us, Space: 889 * us}, "SM"))
	c.Assert(second[0].Edges[4:6], qt.DeepEquals, cells(irp.Pair{Mark: 889 * us, Space: 889 * us}, "MS"))
	c.Assert(second[0].Edges[:4], qt.DeepEquals, first[0].Edges[:4])
	c.Assert(second[0].Edges[6:], qt.DeepEquals, first[0].Edges[6:])
}

func TestGrundigStartPair(t *testing.T) {
	c := qt.New(t)

	start := irp.Pair{Mark: 528 * us, Space: 2628 * us}
	cell := irp.Pair{Mark: 528 * us, Space: 528 * us}

	e := NewEncoder(Config{})
	c.Assert(e.Generate(Command{Protocol: irp.Grundig}), qt.IsNil)
	frames, steps := run(c, e)
	c.Assert(frames, qt.HasLen, 2)
	c.Assert(pauses(steps), qt.DeepEquals, []time.Duration{20 * time.Millisecond})
	c.Assert(steps[len(steps)-1], qt.Equals, Step{Kind: StepTrailer, Pause: 117 * time.Millisecond})

	// start frame: start bit then ten ones
	c.Assert(frames[0].Edges, qt.DeepEquals, concat(
		markSpace(start),
		cells(cell, "MS MS MS MS MS MS MS MS MS MS"),
	))
	// info frame: the start pair sits at its bit position
	c.Assert(frames[1].Edges, qt.DeepEquals, concat(
		markSpace(start),
		cells(cell, "MS SM SM SM SM SM SM SM SM SM"),
	))
}
