package irremote

import (
	"github.com/neildavis/irblaster/irremote/irprotocol"
)

// edgeWriter appends mark/space pairs to a fixed slice, dropping pairs
// that no longer fit.
type edgeWriter struct {
	buf []Edge
	n   int
}

func (w *edgeWriter) full() bool {
	return w.n+2 > len(w.buf)
}

func (w *edgeWriter) put(a, b Edge) {
	if w.full() {
		return
	}
	w.buf[w.n], w.buf[w.n+1] = a, b
	w.n += 2
}

func (w *edgeWriter) markSpace(p irprotocol.Pair) {
	w.put(MarkEdge(p.Mark), SpaceEdge(p.Space))
}

// cell writes a biphase cell, mark first or space first.
func (w *edgeWriter) cell(markFirst bool, p irprotocol.Pair) {
	if markFirst {
		w.markSpace(p)
		return
	}
	w.put(SpaceEdge(p.Space), MarkEdge(p.Mark))
}

// encodeFrame builds the next OTA frame of the session in place.
func (e *Encoder) encodeFrame() error {
	s := &e.s
	d := s.desc

	l := s.layout
	l.Cursor = s.cursor
	if !s.hasStart {
		l.Start = irprotocol.Pair{}
	}
	n := d.Edges(l)
	truncated := false
	if n > e.limit {
		if e.cfg.Strict {
			return ErrTruncated
		}
		n = e.limit
		truncated = true
	}

	stop := 0
	if d.StopBit && d.Shape == irprotocol.PulseDistance {
		stop = 2
	}
	w := edgeWriter{buf: e.edges[:n-stop]}
	switch d.Shape {
	case irprotocol.Biphase:
		e.biphase(&w)
	default:
		e.pulseDistance(&w)
	}
	if stop > 0 {
		e.edges[n-2] = MarkEdge(d.Zero.Mark)
		e.edges[n-1] = SpaceEdge(d.Zero.Space)
	}
	n = w.n + stop

	if n > 0 && !e.edges[n-1].IsMark() && e.lastFrame() {
		e.edges[n-1] = EndOfFrame
	}

	s.cursor = s.layout.Bits
	s.hasStart = false
	s.frames++
	e.n = n
	e.truncated = truncated
	e.ready = true
	return nil
}

func (e *Encoder) pulseDistance(w *edgeWriter) {
	s := &e.s
	d := s.desc
	if s.hasStart {
		w.markSpace(s.layout.Start)
	}
	for i := s.cursor; i < s.layout.Bits && !w.full(); i++ {
		if p, ok := d.Slots[i]; ok {
			w.markSpace(p)
			continue
		}
		pos := i
		if d.Sync != nil && i >= d.Sync.Index {
			if i == d.Sync.Index {
				w.markSpace(d.Sync.Pair)
				continue
			}
			pos--
		}
		bit := e.bit(pos)
		p := d.Zero
		if bit == 1 {
			p = d.One
		}
		if d.RepeatedBitSpace > 0 {
			if bit == s.lastBit {
				p.Space = d.RepeatedBitSpace
			}
			s.lastBit = bit
		}
		w.markSpace(p)
	}
}

func (e *Encoder) biphase(w *edgeWriter) {
	s := &e.s
	d := s.desc
	if s.hasStart {
		// the start bit is a one
		w.cell(!d.Inverted, s.layout.Start)
	}
	for i := s.cursor; i < s.layout.Bits && !w.full(); i++ {
		if startAt(d, i) {
			w.markSpace(d.Start)
			continue
		}
		cell := d.One
		if p, ok := d.Cells[i]; ok {
			cell = p
		}
		w.cell((e.bit(i) == 1) != d.Inverted, cell)
	}
}

func startAt(d *irprotocol.Descriptor, i int) bool {
	for _, v := range d.StartAt {
		if v == i {
			return true
		}
	}
	return false
}
